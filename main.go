package main

import (
	"net/http"
	"os"
	"strings"

	"writesync/config/database"
	"writesync/pkg/logger"
	"writesync/pkg/token"
	"writesync/router"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// No .env file, rely on environment variables from the OS.
	}
	logger.Init()
	defer logger.Log.Sync()

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		logger.Sugar.Fatal("JWT_SECRET environment variable not set")
	}
	tokens := token.NewManager(secret)

	db := database.Connect()
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Sugar.Fatalf("Failed to apply schema: %v", err)
	}

	handler := router.Setup(db, tokens, os.Getenv("CORS_ORIGIN"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Sugar.Infof("WriteSync backend listening on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.Sugar.Fatalf("Server stopped: %v", err)
	}
}

package router

import (
	"database/sql"
	"net/http"

	docHandler "writesync/internal/document"
	docRepository "writesync/internal/document/repository"
	docService "writesync/internal/document/service"
	userHandler "writesync/internal/user"
	userRepository "writesync/internal/user/repository"
	userService "writesync/internal/user/service"
	"writesync/middleware"
	"writesync/pkg/token"

	"github.com/gorilla/mux"
)

// Setup wires the repositories, services and handlers onto the REST routes.
func Setup(db *sql.DB, tokens *token.Manager, corsOrigin string) http.Handler {
	r := mux.NewRouter()
	auth := middleware.Auth(tokens)

	users := userHandler.NewUserHandler(userService.NewUserService(userRepository.NewUserRepository(db), tokens))
	documents := docHandler.NewDocumentHandler(docService.NewDocumentService(docRepository.NewDocumentRepository(db)))

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users/register", users.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", users.Login).Methods(http.MethodPost)
	api.Handle("/users/me", auth(http.HandlerFunc(users.Me))).Methods(http.MethodGet)

	docs := api.PathPrefix("/documents").Subrouter()
	docs.Use(auth)
	docs.HandleFunc("", documents.List).Methods(http.MethodGet)
	docs.HandleFunc("", documents.Create).Methods(http.MethodPost)
	docs.HandleFunc("/{id}", documents.Get).Methods(http.MethodGet)
	docs.HandleFunc("/{id}", documents.Update).Methods(http.MethodPut)
	docs.HandleFunc("/{id}", documents.Delete).Methods(http.MethodDelete)

	return middleware.CORS(corsOrigin)(r)
}

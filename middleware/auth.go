package middleware

import (
	"context"
	"net/http"
	"strings"

	"writesync/pkg/apperror"
	"writesync/pkg/token"
)

type contextKey string

const UserIDKey contextKey = "userID"

// AuthHeader is the custom header the client attaches to every request once
// a session token exists.
const AuthHeader = "x-auth-token"

// Auth validates the bearer token on every protected request and stores the
// bound user id in the request context.
func Auth(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(AuthHeader)

			// Fallback for tooling that only speaks Authorization: Bearer.
			if tokenString == "" {
				authHeader := r.Header.Get("Authorization")
				tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			}

			if tokenString == "" {
				apperror.WriteJSON(w, apperror.New(apperror.Unauthenticated, "No token provided"))
				return
			}

			userID, err := tokens.Parse(tokenString)
			if err != nil {
				apperror.WriteJSON(w, apperror.New(apperror.Unauthenticated, "Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package app

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pixeltruth/mis-backend/pkg/auth"
	"github.com/pixeltruth/mis-backend/pkg/user"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Resolve X-Session-Token header into the current user for downstream
	// services. Requests without a token pass through unauthenticated and
	// are rejected by the handlers that need a user.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			token := req.Header.Get("X-Session-Token")
			ctx := req.Context()

			if token != "" {
				u, err := deps.AuthService.UserForToken(ctx, token)
				if err != nil {
					if errors.Is(err, auth.ErrSessionNotFound) || errors.Is(err, auth.ErrSessionExpired) || errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("rejected session token: %v", err)
						http.Error(w, "invalid session", http.StatusUnauthorized)
						return
					}
					log.Errorf("failed to resolve session: %v", err)
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}

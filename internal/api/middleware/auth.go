package middleware

import (
	"context"
	"net/http"

	"github.com/Rrens/code-search-web/internal/backend"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/session"
	"github.com/rs/zerolog/log"
)

// LoginPath is where unauthenticated browsers are sent
const LoginPath = "/login"

// Authenticator decides whether a browser's storage area holds usable credentials
type Authenticator interface {
	IsAuthenticated(ctx context.Context, ls domain.LocalStorage) bool
	Token(ctx context.Context, ls domain.LocalStorage) string
}

// AuthMiddleware guards pages that need a signed-in browser
type AuthMiddleware struct {
	auth Authenticator
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Guard lets authenticated browsers through and redirects everyone else to
// the login page. It never calls the backend.
func (m *AuthMiddleware) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ls, ok := session.FromContext(r.Context())
		if !ok || !m.auth.IsAuthenticated(r.Context(), ls) {
			log.Debug().Str("path", r.URL.Path).Msg("Redirecting unauthenticated browser to login")
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AttachToken puts the browser's stored token into the request context so
// backend calls made for this request carry it.
func (m *AuthMiddleware) AttachToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ls, ok := session.FromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if token := m.auth.Token(r.Context(), ls); token != "" {
			r = r.WithContext(backend.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

package api

import (
	"net/http"

	"github.com/Rrens/code-search-web/internal/api/handler"
	customMiddleware "github.com/Rrens/code-search-web/internal/api/middleware"
	"github.com/Rrens/code-search-web/internal/api/view"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/service"
	"github.com/Rrens/code-search-web/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Dependencies are the collaborators the router wires into pages
type Dependencies struct {
	Storage  domain.Storage
	Sessions *session.Manager
	Auth     *service.AuthService
	Chats    *service.ChatService
	Search   *service.SearchService
	Renderer *view.Renderer
	// LoginLimiter throttles login attempts per client; nil disables throttling
	LoginLimiter customMiddleware.Limiter
	// TrustProxy takes the client address from proxy headers
	TrustProxy bool
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	if deps.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	h := handler.NewHandler(deps.Auth, deps.Chats, deps.Search, deps.Renderer)
	authMiddleware := customMiddleware.NewAuthMiddleware(deps.Auth)

	// Operational routes
	r.Get("/health", handler.HealthCheck)
	r.Get("/ready", handler.ReadyCheck(deps.Storage))
	r.Handle("/static/*", http.StripPrefix("/static/", view.Static()))

	r.Group(func(r chi.Router) {
		r.Use(deps.Sessions.Middleware)
		r.Use(authMiddleware.AttachToken)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, customMiddleware.LoginPath, http.StatusFound)
		})

		// Public routes
		r.Get("/login", h.LoginPage)
		if deps.LoginLimiter != nil {
			rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(deps.LoginLimiter, http.HandlerFunc(h.LoginThrottled))
			r.With(rateLimitMiddleware.Limit).Post("/login", h.Login)
		} else {
			r.Post("/login", h.Login)
		}
		r.Get("/register", h.RegisterPage)
		r.Post("/register", h.Register)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Guard)

			r.Post("/logout", h.Logout)

			r.Route("/chats", func(r chi.Router) {
				r.Get("/", h.Chats)
				r.Post("/", h.CreateChat)
				r.Post("/{id}/delete", h.DeleteChat)
				r.Post("/{id}/rename", h.RenameChat)
			})

			r.Route("/chat/{id}", func(r chi.Router) {
				r.Get("/", h.ChatDetail)
				r.Post("/messages", h.SendMessage)
			})

			r.Get("/search", h.SearchPage)
		})
	})

	return r
}

package handler

import (
	"context"
	"net/http"

	"github.com/Rrens/code-search-web/internal/api/view"
	"github.com/Rrens/code-search-web/internal/component"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/session"
	"github.com/rs/zerolog/log"
)

// Handler renders the pages of the frontend
type Handler struct {
	auth   component.AuthAPI
	chats  component.ChatAPI
	search component.SearchAPI
	view   *view.Renderer
}

// NewHandler creates a new page handler
func NewHandler(auth component.AuthAPI, chats component.ChatAPI, search component.SearchAPI, renderer *view.Renderer) *Handler {
	return &Handler{
		auth:   auth,
		chats:  chats,
		search: search,
		view:   renderer,
	}
}

// local returns the browser's storage area placed by the session middleware
func (h *Handler) local(w http.ResponseWriter, r *http.Request) (domain.LocalStorage, bool) {
	ls, ok := session.FromContext(r.Context())
	if !ok {
		log.Error().Str("path", r.URL.Path).Msg("Request reached a page without a browser session")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, false
	}
	return ls, true
}

func (h *Handler) navbar(ctx context.Context, ls domain.LocalStorage) *component.Navbar {
	nav := component.NewNavbar(h.auth, ls)
	nav.Load(ctx)
	return nav
}

// seeOther redirects after a successful form post
func seeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

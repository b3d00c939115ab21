package handler

import (
	"net/http"
	"strconv"

	"github.com/Rrens/code-search-web/internal/api/view"
	"github.com/Rrens/code-search-web/internal/component"
)

// SearchPage renders the code search form and, when a query is given, its results
func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	ls, ok := h.local(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page := component.NewSearch(h.search)
	page.Query = q.Get("query")
	page.Language = q.Get("language")
	if topK, err := strconv.Atoi(q.Get("top_k")); err == nil {
		page.TopK = topK
	}

	page.LoadLanguages(r.Context())
	page.Run(r.Context())

	h.view.Render(w, page.Status(), view.PageSearch, view.Page{
		Title:   "Search",
		Nav:     h.navbar(r.Context(), ls),
		Notices: page.Items,
		Data:    page,
	})
}

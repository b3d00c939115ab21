package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/Rrens/code-search-web/internal/component"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names
const (
	PageLogin    = "login"
	PageRegister = "register"
	PageChats    = "chats"
	PageChat     = "chat"
	PageSearch   = "search"
)

var pages = []string{PageLogin, PageRegister, PageChats, PageChat, PageSearch}

// Page is what every template receives
type Page struct {
	Title   string
	Nav     *component.Navbar
	Notices []component.Notice
	Data    any
}

// Renderer renders the embedded page templates
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"highlight": Highlight,
		"datetime":  formatTimestamp,
		"percent":   func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
		"score":     func(f float64) string { return fmt.Sprintf("%.4f", f) },
	}

	base, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout: %w", err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render writes page name with the given status. The page is rendered into a
// buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	t, ok := r.templates[name]
	if !ok {
		log.Error().Str("page", name).Msg("Unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		log.Error().Err(err).Str("page", name).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Static serves the embedded stylesheet and assets
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func formatTimestamp(ts domain.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format(time.DateTime)
}

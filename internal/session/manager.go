package session

import (
	"net/http"
	"time"

	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/security"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Manager identifies browsers with a signed cookie and hands each request
// its browser's storage area.
type Manager struct {
	storage    domain.Storage
	signer     *security.CookieSigner
	cookieName string
	ttl        time.Duration
	secure     bool
}

// ManagerOptions configures the browser cookie
type ManagerOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// NewManager creates a new session manager
func NewManager(storage domain.Storage, signer *security.CookieSigner, opts ManagerOptions) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "codesearch_sid"
	}
	return &Manager{
		storage:    storage,
		signer:     signer,
		cookieName: opts.CookieName,
		ttl:        opts.TTL,
		secure:     opts.Secure,
	}
}

// Middleware resolves the browser id, issuing a fresh one when the cookie is
// missing or its signature does not match.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		browserID := m.browserID(r)
		if browserID == "" {
			browserID = uuid.NewString()
		}
		m.setCookie(w, browserID)

		ctx := WithLocal(r.Context(), NewLocal(m.storage, browserID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) browserID(r *http.Request) string {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}

	id, err := m.signer.Verify(cookie.Value)
	if err != nil {
		log.Debug().Str("path", r.URL.Path).Msg("Discarding browser cookie with bad signature")
		return ""
	}
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

func (m *Manager) setCookie(w http.ResponseWriter, browserID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    m.signer.Sign(browserID),
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

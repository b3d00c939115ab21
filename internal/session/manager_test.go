package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/repository/memory"
	"github.com/Rrens/code-search-web/internal/security"
	"github.com/Rrens/code-search-web/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*session.Manager, *memory.Storage) {
	t.Helper()
	storage := memory.NewStorage(time.Hour, 0)
	t.Cleanup(func() { storage.Close() })

	signer, err := security.NewCookieSigner("test-secret")
	require.NoError(t, err)

	return session.NewManager(storage, signer, session.ManagerOptions{TTL: time.Hour}), storage
}

func TestManager_IssuesAndReusesBrowserID(t *testing.T) {
	m, _ := newManager(t)

	var seen []string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		local, ok := session.FromContext(r.Context())
		require.True(t, ok)
		seen = append(seen, local.BrowserID())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, seen, 2)
	assert.NotEmpty(t, seen[0])
	assert.Equal(t, seen[0], seen[1])
}

func TestManager_RejectsForgedCookie(t *testing.T) {
	m, _ := newManager(t)

	var got string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		local, _ := session.FromContext(r.Context())
		got = local.BrowserID()
	}))

	forged := "0b7c8f5e-3d6a-4a4e-9d7e-2f1c9c7b5a10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "codesearch_sid", Value: forged + ".bogus"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.NotEmpty(t, got)
	assert.NotEqual(t, forged, got)
}

func TestLocal_ScopedToBrowser(t *testing.T) {
	_, storage := newManager(t)
	ctx := context.Background()

	a := session.NewLocal(storage, "a")
	b := session.NewLocal(storage, "b")

	require.NoError(t, a.SetItem(ctx, domain.StorageKeyToken, "token-a"))

	got, err := a.GetItem(ctx, domain.StorageKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "token-a", got)

	_, err = b.GetItem(ctx, domain.StorageKeyToken)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

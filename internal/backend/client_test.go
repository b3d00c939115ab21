package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/Rrens/code-search-web/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AttachesToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer srv.Close()

	c := backend.NewClient(srv.URL+"/", 0)
	ctx := backend.WithToken(context.Background(), "abc")

	var out map[string]string
	require.NoError(t, c.Get(ctx, "/auth/me", &out))
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "yes", out["ok"])
}

func TestClient_NoTokenWithoutContext(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := backend.NewClient(srv.URL, 0)
	require.NoError(t, c.Delete(context.Background(), "/chat/1"))
	assert.Empty(t, gotAuth)
}

func TestClient_PostForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "alice", r.PostForm.Get("username"))
		assert.Equal(t, "s3cret", r.PostForm.Get("password"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": "t", "token_type": "bearer"})
	}))
	defer srv.Close()

	c := backend.NewClient(srv.URL, 0)
	var out map[string]string
	form := url.Values{"username": {"alice"}, "password": {"s3cret"}}
	require.NoError(t, c.PostForm(context.Background(), "/auth/token", form, &out))
	assert.Equal(t, "t", out["access_token"])
}

func TestClient_APIErrorPassthrough(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"string detail", http.StatusUnauthorized, `{"detail":"Incorrect username or password"}`, "Incorrect username or password"},
		{"structured detail", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"}]}`, `[{"msg":"field required"}]`},
		{"plain body", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"empty body", http.StatusNotFound, ``, "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := backend.NewClient(srv.URL, 0)
			err := c.Get(context.Background(), "/x", nil)
			require.Error(t, err)

			var apiErr *backend.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message())
			assert.Equal(t, tt.status, backend.StatusCode(err))
		})
	}
}

func TestStatusCode_NonAPIError(t *testing.T) {
	assert.Equal(t, 0, backend.StatusCode(errors.New("boom")))
}

func TestClient_BaseURLTrimsSlash(t *testing.T) {
	client := backend.NewClient("http://backend:8000/api/", 0)
	assert.Equal(t, "http://backend:8000/api", client.BaseURL())
}

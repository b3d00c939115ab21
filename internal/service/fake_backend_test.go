package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

const (
	testToken  = "header.payload.signature"
	testUserID = "65f1a2b3c4d5e6f708091a2c"
)

// fakeBackend mimics the code search API closely enough for service tests
type fakeBackend struct {
	mu       sync.Mutex
	requests []string
	chats    map[string]map[string]any
	server   *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{chats: make(map[string]map[string]any)}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fb.mu.Lock()
			fb.requests = append(fb.requests, r.Method+" "+r.URL.Path)
			fb.mu.Unlock()
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("username") != "alice" || r.PostForm.Get("password") != "wonderland" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Incorrect username or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"access_token": testToken, "token_type": "bearer"})
	})

	r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] == "taken" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Username or email already registered"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"_id": testUserID, "username": body["username"], "email": body["email"], "full_name": body["full_name"],
		})
	})

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
				return
			}
			next(w, r)
		}
	}

	r.Get("/auth/me", authed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"_id": testUserID, "username": "alice", "email": "alice@example.com", "full_name": "Alice Liddell",
		})
	}))

	r.Get("/search/languages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"languages": []string{"go", "java", "python"}})
	})

	r.Post("/search", authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["language"] == "cobol" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "Language cobol not supported"})
			return
		}
		n := int(body["top_k"].(float64))
		results := make([]map[string]any, 0, n)
		for i := 0; i < n; i++ {
			results = append(results, map[string]any{"code": "def f(): pass", "similarity": 0.5, "distance": 1.0})
		}
		writeJSON(w, http.StatusOK, results)
	}))

	r.Get("/chat", authed(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		list := make([]map[string]any, 0, len(fb.chats))
		for _, c := range fb.chats {
			list = append(list, c)
		}
		writeJSON(w, http.StatusOK, list)
	}))

	r.Post("/chat", authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		chat := newChatDoc("65f1a2b3c4d5e6f708091a2b", body["title"].(string))
		fb.mu.Lock()
		fb.chats[chat["_id"].(string)] = chat
		fb.mu.Unlock()
		writeJSON(w, http.StatusOK, chat)
	}))

	r.Route("/chat/{id}", func(r chi.Router) {
		r.Get("/", authed(fb.withChat(func(w http.ResponseWriter, r *http.Request, chat map[string]any) {
			writeJSON(w, http.StatusOK, chat)
		})))
		r.Patch("/", authed(fb.withChat(func(w http.ResponseWriter, r *http.Request, chat map[string]any) {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			chat["title"] = body["title"]
			writeJSON(w, http.StatusOK, chat)
		})))
		r.Delete("/", authed(fb.withChat(func(w http.ResponseWriter, r *http.Request, chat map[string]any) {
			delete(fb.chats, chat["_id"].(string))
			w.WriteHeader(http.StatusNoContent)
		})))
		r.Post("/messages", authed(fb.withChat(func(w http.ResponseWriter, r *http.Request, chat map[string]any) {
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			body["results"] = []map[string]any{{"code": "print('hi')", "similarity": 0.9, "distance": 0.1}}
			chat["messages"] = append(chat["messages"].([]any), body)
			writeJSON(w, http.StatusOK, chat)
		})))
	})

	fb.server = httptest.NewServer(r)
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) withChat(next func(http.ResponseWriter, *http.Request, map[string]any)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		defer fb.mu.Unlock()
		chat, ok := fb.chats[chi.URLParam(r, "id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Chat session not found"})
			return
		}
		next(w, r, chat)
	}
}

func (fb *fakeBackend) URL() string {
	return fb.server.URL
}

func (fb *fakeBackend) calls(prefix string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	n := 0
	for _, req := range fb.requests {
		if strings.HasPrefix(req, prefix) {
			n++
		}
	}
	return n
}

func newChatDoc(id, title string) map[string]any {
	return map[string]any{
		"_id":        id,
		"user_id":    testUserID,
		"title":      title,
		"messages":   []any{},
		"created_at": "2024-05-01T09:00:00",
		"updated_at": "2024-05-01T09:00:00",
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Rrens/code-search-web/internal/api/view"
	"github.com/Rrens/code-search-web/internal/component"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/rs/zerolog/log"
)

// LoginPage renders the sign-in form
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	form := &component.LoginForm{}
	if username := r.URL.Query().Get("registered"); username != "" {
		form.Registered(username)
	}
	h.renderLogin(w, http.StatusOK, form)
}

// Login signs the browser in and opens the chat list
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ls, ok := h.local(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := &component.LoginForm{}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	if !form.Submit(r.Context(), h.auth, ls, username, r.PostForm.Get("password")) {
		h.renderLogin(w, form.Status(), form)
		return
	}

	log.Info().Str("username", username).Msg("User logged in")
	seeOther(w, r, "/chats")
}

// LoginThrottled answers login attempts refused by the rate limiter
func (h *Handler) LoginThrottled(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, http.StatusTooManyRequests, view.PageLogin, view.Page{
		Title: "Login",
		Notices: []component.Notice{{
			Level:   component.NoticeError,
			Message: "Too many login attempts. Try again in a minute.",
			Status:  http.StatusTooManyRequests,
		}},
		Data: &component.LoginForm{Username: r.PostFormValue("username")},
	})
}

func (h *Handler) renderLogin(w http.ResponseWriter, status int, form *component.LoginForm) {
	h.view.Render(w, status, view.PageLogin, view.Page{
		Title:   "Login",
		Notices: form.Items,
		Data:    form,
	})
}

// RegisterPage renders the registration form
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, http.StatusOK, &component.RegisterForm{})
}

// Register creates an account and sends the browser to the login page
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	input := domain.RegisterRequest{
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
		FullName: strings.TrimSpace(r.PostForm.Get("full_name")),
	}

	form := &component.RegisterForm{}
	if !form.Submit(r.Context(), h.auth, input) {
		h.renderRegister(w, form.Status(), form)
		return
	}

	log.Info().Str("username", input.Username).Msg("User registered")
	seeOther(w, r, "/login?registered="+url.QueryEscape(input.Username))
}

func (h *Handler) renderRegister(w http.ResponseWriter, status int, form *component.RegisterForm) {
	h.view.Render(w, status, view.PageRegister, view.Page{
		Title:   "Register",
		Notices: form.Items,
		Data:    form,
	})
}

// Logout forgets the browser's credentials
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ls, ok := h.local(w, r)
	if !ok {
		return
	}

	if err := component.NewNavbar(h.auth, ls).Logout(r.Context()); err != nil {
		log.Error().Err(err).Msg("Failed to clear credentials")
	}
	seeOther(w, r, "/login")
}

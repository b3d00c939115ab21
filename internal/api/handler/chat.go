package handler

import (
	"net/http"
	"net/url"

	"github.com/Rrens/code-search-web/internal/api/view"
	"github.com/Rrens/code-search-web/internal/component"
	"github.com/go-chi/chi/v5"
)

// Chats renders the chat list
func (h *Handler) Chats(w http.ResponseWriter, r *http.Request) {
	list := component.NewChatList(h.chats)
	list.Load(r.Context())
	h.renderChats(w, r, list)
}

// CreateChat starts a new chat session
func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	list := component.NewChatList(h.chats)
	list.Create(r.Context(), r.PostFormValue("title"))
	h.afterListChange(w, r, list)
}

// DeleteChat deletes a chat session
func (h *Handler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	list := component.NewChatList(h.chats)
	list.Delete(r.Context(), chi.URLParam(r, "id"))
	h.afterListChange(w, r, list)
}

// RenameChat changes a chat session's title
func (h *Handler) RenameChat(w http.ResponseWriter, r *http.Request) {
	list := component.NewChatList(h.chats)
	list.Rename(r.Context(), chi.URLParam(r, "id"), r.PostFormValue("title"))
	h.afterListChange(w, r, list)
}

// afterListChange redirects back to the list, or renders it with the
// failure when the change did not go through.
func (h *Handler) afterListChange(w http.ResponseWriter, r *http.Request, list *component.ChatList) {
	if !list.HasErrors() {
		seeOther(w, r, "/chats")
		return
	}
	list.Load(r.Context())
	h.renderChats(w, r, list)
}

func (h *Handler) renderChats(w http.ResponseWriter, r *http.Request, list *component.ChatList) {
	ls, ok := h.local(w, r)
	if !ok {
		return
	}
	h.view.Render(w, list.Status(), view.PageChats, view.Page{
		Title:   "Chats",
		Nav:     h.navbar(r.Context(), ls),
		Notices: list.Items,
		Data:    list,
	})
}

// ChatDetail renders one chat session. The language query parameter
// preselects the language for the next message.
func (h *Handler) ChatDetail(w http.ResponseWriter, r *http.Request) {
	page := component.NewChatSession(h.chats, h.search)
	page.Language = r.URL.Query().Get("language")
	page.Load(r.Context(), chi.URLParam(r, "id"))
	h.renderChat(w, r, page)
}

// SendMessage appends a message to a chat session
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	page := component.NewChatSession(h.chats, h.search)
	page.Language = r.PostFormValue("language")
	page.Load(r.Context(), id)
	page.Text = r.PostFormValue("message")

	if page.SendMessage(r.Context()) {
		seeOther(w, r, "/chat/"+url.PathEscape(id)+"?language="+url.QueryEscape(page.Language))
		return
	}
	h.renderChat(w, r, page)
}

func (h *Handler) renderChat(w http.ResponseWriter, r *http.Request, page *component.ChatSession) {
	ls, ok := h.local(w, r)
	if !ok {
		return
	}

	title := "Chat"
	if page.Chat != nil {
		title = page.Chat.Title
	}
	h.view.Render(w, page.Status(), view.PageChat, view.Page{
		Title:   title,
		Nav:     h.navbar(r.Context(), ls),
		Notices: page.Items,
		Data:    page,
	})
}

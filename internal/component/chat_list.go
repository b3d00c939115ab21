package component

import (
	"context"
	"strings"

	"github.com/Rrens/code-search-web/internal/domain"
)

// ChatList is the state behind the chat list page
type ChatList struct {
	Notices

	Chats    []domain.ChatSession
	NewTitle string

	api ChatAPI
}

// NewChatList creates an empty chat list
func NewChatList(api ChatAPI) *ChatList {
	return &ChatList{api: api}
}

// Load replaces the list with the sessions the backend returns
func (c *ChatList) Load(ctx context.Context) {
	chats, err := c.api.List(ctx)
	if err != nil {
		c.fail("Could not load chats", err)
		return
	}
	c.Chats = chats
}

// Create starts a new session. A blank title is ignored.
func (c *ChatList) Create(ctx context.Context, title string) *domain.ChatSession {
	c.NewTitle = title
	title = strings.TrimSpace(title)
	if title == "" {
		return nil
	}

	chat, err := c.api.Create(ctx, title)
	if err != nil {
		c.fail("Could not create chat", err)
		return nil
	}

	c.Chats = append(c.Chats, *chat)
	c.NewTitle = ""
	return chat
}

// Delete removes the session with rawID once the backend confirms
func (c *ChatList) Delete(ctx context.Context, rawID string) bool {
	id, err := domain.ParseID(rawID)
	if err != nil {
		c.fail("Could not delete chat", err)
		return false
	}

	if err := c.api.Delete(ctx, id); err != nil {
		c.fail("Could not delete chat", err)
		return false
	}

	kept := c.Chats[:0]
	for _, chat := range c.Chats {
		if chat.ID != id {
			kept = append(kept, chat)
		}
	}
	c.Chats = kept
	return true
}

// Rename changes a session's title. A blank title is ignored.
func (c *ChatList) Rename(ctx context.Context, rawID, title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}

	id, err := domain.ParseID(rawID)
	if err != nil {
		c.fail("Could not rename chat", err)
		return false
	}

	chat, err := c.api.Rename(ctx, id, title)
	if err != nil {
		c.fail("Could not rename chat", err)
		return false
	}

	for i := range c.Chats {
		if c.Chats[i].ID == id {
			c.Chats[i] = *chat
		}
	}
	return true
}

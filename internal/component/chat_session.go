package component

import (
	"context"
	"strings"

	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/sourcegraph/conc"
)

// ChatSession is the state behind a single chat page
type ChatSession struct {
	Notices

	Chat      *domain.ChatSession
	Languages []string
	// Language is the selection for the next message
	Language string
	// Text is the pending message input
	Text string

	chats  ChatAPI
	search SearchAPI
	now    func() domain.Timestamp
}

// NewChatSession creates an empty chat page
func NewChatSession(chats ChatAPI, search SearchAPI) *ChatSession {
	return &ChatSession{
		chats:  chats,
		search: search,
		now:    domain.Now,
	}
}

// Load fetches the session and the language list side by side. An invalid id
// leaves the page without a session. A preselected Language survives the
// load; otherwise the first listed language becomes the default.
func (c *ChatSession) Load(ctx context.Context, rawID string) {
	var (
		chat      *domain.ChatSession
		chatErr   error
		languages []string
		langErr   error
	)

	var wg conc.WaitGroup
	if id, err := domain.ParseID(rawID); err == nil {
		wg.Go(func() {
			chat, chatErr = c.chats.Get(ctx, id)
		})
	}
	wg.Go(func() {
		languages, langErr = c.search.Languages(ctx)
	})
	wg.Wait()

	if chatErr != nil {
		c.fail("Could not load chat", chatErr)
	}
	c.Chat = chat

	if langErr != nil {
		c.fail("Could not load languages", langErr)
	}
	c.Languages = languages

	if c.Language == "" {
		c.Language = domain.DefaultLanguage
		if len(languages) > 0 {
			c.Language = languages[0]
		}
	}
}

// SendMessage posts Text in the chosen language. Nothing is sent without a
// loaded session or with blank text. On success the session is replaced by
// the backend's copy and the input cleared; the language stays selected.
func (c *ChatSession) SendMessage(ctx context.Context) bool {
	if c.Chat == nil || strings.TrimSpace(c.Text) == "" {
		return false
	}

	chat, err := c.chats.AddMessage(ctx, c.Chat.ID, domain.MessageCreate{
		Message:   c.Text,
		Language:  c.Language,
		Timestamp: c.now(),
	})
	if err != nil {
		c.fail("Could not send message", err)
		return false
	}

	c.Chat = chat
	c.Text = ""
	return true
}

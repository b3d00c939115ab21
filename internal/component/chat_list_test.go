package component

import (
	"context"
	"errors"
	"testing"

	"github.com/Rrens/code-search-web/internal/backend"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func chat(title string) domain.ChatSession {
	return domain.ChatSession{ID: primitive.NewObjectID(), Title: title, Messages: []domain.ChatMessage{}}
}

func TestChatList_Load(t *testing.T) {
	ctx := context.Background()
	api := new(MockChatAPI)
	existing := []domain.ChatSession{chat("one"), chat("two")}
	api.On("List", ctx).Return(existing, nil)

	list := NewChatList(api)
	list.Load(ctx)

	assert.Equal(t, existing, list.Chats)
	assert.False(t, list.HasErrors())
}

func TestChatList_LoadFailureIsShown(t *testing.T) {
	ctx := context.Background()
	api := new(MockChatAPI)
	api.On("List", ctx).Return(nil, &backend.APIError{Status: 401, Detail: []byte(`"Could not validate credentials"`)})

	list := NewChatList(api)
	list.Load(ctx)

	require.True(t, list.HasErrors())
	assert.Equal(t, "Could not load chats: Could not validate credentials", list.Items[0].Message)
}

func TestChatList_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("blank title makes no call", func(t *testing.T) {
		api := new(MockChatAPI)
		list := NewChatList(api)
		list.Chats = []domain.ChatSession{chat("one")}
		before := append([]domain.ChatSession(nil), list.Chats...)

		assert.Nil(t, list.Create(ctx, "   \t "))

		assert.Equal(t, before, list.Chats)
		api.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("appends the created session", func(t *testing.T) {
		api := new(MockChatAPI)
		created := chat("Demo")
		api.On("Create", ctx, "Demo").Return(&created, nil)

		list := NewChatList(api)
		list.Chats = []domain.ChatSession{chat("one")}

		got := list.Create(ctx, "  Demo ")
		require.NotNil(t, got)

		require.Len(t, list.Chats, 2)
		demos := 0
		for _, c := range list.Chats {
			if c.Title == "Demo" {
				demos++
			}
		}
		assert.Equal(t, 1, demos)
		assert.Empty(t, list.NewTitle)
		api.AssertExpectations(t)
	})

	t.Run("failure keeps the title", func(t *testing.T) {
		api := new(MockChatAPI)
		api.On("Create", ctx, "Demo").Return(nil, errors.New("connection refused"))

		list := NewChatList(api)
		assert.Nil(t, list.Create(ctx, "Demo"))

		assert.Empty(t, list.Chats)
		assert.Equal(t, "Demo", list.NewTitle)
		assert.True(t, list.HasErrors())
	})
}

func TestChatList_Delete(t *testing.T) {
	ctx := context.Background()
	a, b, c := chat("a"), chat("b"), chat("c")

	t.Run("removes exactly the matching entry", func(t *testing.T) {
		api := new(MockChatAPI)
		api.On("Delete", ctx, b.ID).Return(nil)

		list := NewChatList(api)
		list.Chats = []domain.ChatSession{a, b, c}

		assert.True(t, list.Delete(ctx, b.ID.Hex()))
		assert.Equal(t, []domain.ChatSession{a, c}, list.Chats)
	})

	t.Run("backend failure keeps the list", func(t *testing.T) {
		api := new(MockChatAPI)
		api.On("Delete", ctx, b.ID).Return(&backend.APIError{Status: 404, Detail: []byte(`"Chat session not found"`)})

		list := NewChatList(api)
		list.Chats = []domain.ChatSession{a, b, c}

		assert.False(t, list.Delete(ctx, b.ID.Hex()))
		assert.Len(t, list.Chats, 3)
		assert.True(t, list.HasErrors())
	})

	t.Run("invalid id makes no call", func(t *testing.T) {
		api := new(MockChatAPI)
		list := NewChatList(api)

		assert.False(t, list.Delete(ctx, "not-an-id"))
		api.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestChatList_Rename(t *testing.T) {
	ctx := context.Background()
	a, b := chat("a"), chat("b")

	api := new(MockChatAPI)
	renamed := b
	renamed.Title = "renamed"
	api.On("Rename", ctx, b.ID, "renamed").Return(&renamed, nil)

	list := NewChatList(api)
	list.Chats = []domain.ChatSession{a, b}

	assert.False(t, list.Rename(ctx, b.ID.Hex(), "  "))
	assert.True(t, list.Rename(ctx, b.ID.Hex(), " renamed "))

	assert.Equal(t, "a", list.Chats[0].Title)
	assert.Equal(t, "renamed", list.Chats[1].Title)
	api.AssertNumberOfCalls(t, "Rename", 1)
}

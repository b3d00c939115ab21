package service

import (
	"context"

	"github.com/Rrens/code-search-web/internal/backend"
	"github.com/Rrens/code-search-web/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatService maps chat operations 1:1 onto backend endpoints
type ChatService struct {
	client *backend.Client
}

// NewChatService creates a new chat service
func NewChatService(client *backend.Client) *ChatService {
	return &ChatService{client: client}
}

func chatPath(id primitive.ObjectID) string {
	return "/chat/" + id.Hex()
}

// Create creates a new chat session
func (s *ChatService) Create(ctx context.Context, title string) (*domain.ChatSession, error) {
	input := domain.ChatSessionCreate{Title: title}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var chat domain.ChatSession
	if err := s.client.Post(ctx, "/chat", input, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// List returns the current user's sessions in backend order
func (s *ChatService) List(ctx context.Context) ([]domain.ChatSession, error) {
	var chats []domain.ChatSession
	if err := s.client.Get(ctx, "/chat", &chats); err != nil {
		return nil, err
	}
	if chats == nil {
		chats = []domain.ChatSession{}
	}
	return chats, nil
}

// Get returns one session with its transcript
func (s *ChatService) Get(ctx context.Context, id primitive.ObjectID) (*domain.ChatSession, error) {
	var chat domain.ChatSession
	if err := s.client.Get(ctx, chatPath(id), &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Rename patches a session's title
func (s *ChatService) Rename(ctx context.Context, id primitive.ObjectID, title string) (*domain.ChatSession, error) {
	input := domain.ChatSessionUpdate{Title: &title}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var chat domain.ChatSession
	if err := s.client.Patch(ctx, chatPath(id), input, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// Delete deletes a session
func (s *ChatService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.client.Delete(ctx, chatPath(id))
}

// AddMessage appends a message and returns the session as the backend now
// stores it, search results included.
func (s *ChatService) AddMessage(ctx context.Context, id primitive.ObjectID, msg domain.MessageCreate) (*domain.ChatSession, error) {
	if err := validate.Struct(msg); err != nil {
		return nil, err
	}

	var chat domain.ChatSession
	if err := s.client.Post(ctx, chatPath(id)+"/messages", msg, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

package component

import (
	"context"

	"github.com/Rrens/code-search-web/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatAPI is the chat backend as the pages use it
type ChatAPI interface {
	Create(ctx context.Context, title string) (*domain.ChatSession, error)
	List(ctx context.Context) ([]domain.ChatSession, error)
	Get(ctx context.Context, id primitive.ObjectID) (*domain.ChatSession, error)
	Rename(ctx context.Context, id primitive.ObjectID, title string) (*domain.ChatSession, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddMessage(ctx context.Context, id primitive.ObjectID, msg domain.MessageCreate) (*domain.ChatSession, error)
}

// SearchAPI is the code search backend as the pages use it
type SearchAPI interface {
	Search(ctx context.Context, query domain.SearchQuery) ([]domain.CodeSearchResult, error)
	Languages(ctx context.Context) ([]string, error)
}

// AuthAPI is the part of the auth service the pages need
type AuthAPI interface {
	Login(ctx context.Context, ls domain.LocalStorage, username, password string) (*domain.Token, error)
	Register(ctx context.Context, input domain.RegisterRequest) (*domain.User, error)
	CurrentUser(ctx context.Context, ls domain.LocalStorage) (*domain.User, error)
	Logout(ctx context.Context, ls domain.LocalStorage) error
}

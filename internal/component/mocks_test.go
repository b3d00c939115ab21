package component

import (
	"context"

	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockChatAPI struct {
	mock.Mock
}

func (m *MockChatAPI) Create(ctx context.Context, title string) (*domain.ChatSession, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatSession), args.Error(1)
}

func (m *MockChatAPI) List(ctx context.Context) ([]domain.ChatSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatSession), args.Error(1)
}

func (m *MockChatAPI) Get(ctx context.Context, id primitive.ObjectID) (*domain.ChatSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatSession), args.Error(1)
}

func (m *MockChatAPI) Rename(ctx context.Context, id primitive.ObjectID, title string) (*domain.ChatSession, error) {
	args := m.Called(ctx, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatSession), args.Error(1)
}

func (m *MockChatAPI) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChatAPI) AddMessage(ctx context.Context, id primitive.ObjectID, msg domain.MessageCreate) (*domain.ChatSession, error) {
	args := m.Called(ctx, id, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatSession), args.Error(1)
}

type MockSearchAPI struct {
	mock.Mock
}

func (m *MockSearchAPI) Search(ctx context.Context, query domain.SearchQuery) ([]domain.CodeSearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CodeSearchResult), args.Error(1)
}

func (m *MockSearchAPI) Languages(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, ls domain.LocalStorage, username, password string) (*domain.Token, error) {
	args := m.Called(ctx, ls, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Token), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, input domain.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthAPI) CurrentUser(ctx context.Context, ls domain.LocalStorage) (*domain.User, error) {
	args := m.Called(ctx, ls)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthAPI) Logout(ctx context.Context, ls domain.LocalStorage) error {
	args := m.Called(ctx, ls)
	return args.Error(0)
}

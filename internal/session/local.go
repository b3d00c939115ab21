package session

import (
	"context"

	"github.com/Rrens/code-search-web/internal/domain"
)

// Local binds a Storage to one browser, giving it the browser's
// localStorage semantics.
type Local struct {
	storage   domain.Storage
	browserID string
}

// NewLocal returns the storage area of browserID
func NewLocal(storage domain.Storage, browserID string) *Local {
	return &Local{storage: storage, browserID: browserID}
}

// BrowserID returns the identifier of the bound browser
func (l *Local) BrowserID() string {
	return l.browserID
}

func (l *Local) GetItem(ctx context.Context, key string) (string, error) {
	return l.storage.Get(ctx, l.browserID, key)
}

func (l *Local) SetItem(ctx context.Context, key, value string) error {
	return l.storage.Set(ctx, l.browserID, key, value)
}

func (l *Local) RemoveItem(ctx context.Context, key string) error {
	return l.storage.Remove(ctx, l.browserID, key)
}

type localKey struct{}

// WithLocal stores the browser's storage area in ctx
func WithLocal(ctx context.Context, l *Local) context.Context {
	return context.WithValue(ctx, localKey{}, l)
}

// FromContext returns the storage area placed by the session middleware
func FromContext(ctx context.Context) (*Local, bool) {
	l, ok := ctx.Value(localKey{}).(*Local)
	return l, ok
}

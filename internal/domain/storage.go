package domain

import "context"

// Keys kept in a browser's storage area
const (
	StorageKeyToken       = "token"
	StorageKeyCurrentUser = "currentUser"
)

// Storage persists small string values per browser. Values survive until they
// are removed or the browser's area expires. Get returns ErrNotFound for a
// missing key.
type Storage interface {
	Get(ctx context.Context, browserID, key string) (string, error)
	Set(ctx context.Context, browserID, key, value string) error
	Remove(ctx context.Context, browserID, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// LocalStorage is one browser's view of Storage
type LocalStorage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

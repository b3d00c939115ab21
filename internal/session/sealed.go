package session

import (
	"context"

	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/security"
	"github.com/rs/zerolog/log"
)

// SealedStorage encrypts values before they reach the wrapped storage. Each
// value is bound to its browser and key, so a value copied to another slot
// does not decrypt.
type SealedStorage struct {
	domain.Storage
	sealer *security.Sealer
}

// NewSealedStorage wraps storage with value encryption
func NewSealedStorage(storage domain.Storage, sealer *security.Sealer) *SealedStorage {
	return &SealedStorage{Storage: storage, sealer: sealer}
}

func slot(browserID, key string) string {
	return browserID + "/" + key
}

// Get returns the decrypted value. Values that no longer decrypt, for example
// after the secret changed, read as missing.
func (s *SealedStorage) Get(ctx context.Context, browserID, key string) (string, error) {
	sealed, err := s.Storage.Get(ctx, browserID, key)
	if err != nil {
		return "", err
	}

	value, err := s.sealer.Open(sealed, slot(browserID, key))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding stored value that does not decrypt")
		return "", domain.ErrNotFound
	}
	return value, nil
}

func (s *SealedStorage) Set(ctx context.Context, browserID, key, value string) error {
	sealed, err := s.sealer.Seal(value, slot(browserID, key))
	if err != nil {
		return err
	}
	return s.Storage.Set(ctx, browserID, key, sealed)
}

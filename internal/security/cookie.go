package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

var ErrInvalidSignature = errors.New("invalid cookie signature")

const cookieKeyInfo = "code-search-web browser cookie v1"

// CookieSigner signs and verifies cookie values with HMAC-SHA256
type CookieSigner struct {
	key []byte
}

// NewCookieSigner derives the signing key from secret with HKDF
func NewCookieSigner(secret string) (*CookieSigner, error) {
	if secret == "" {
		return nil, errors.New("cookie secret is empty")
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(cookieKeyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive cookie key: %w", err)
	}
	return &CookieSigner{key: key}, nil
}

// Sign returns value with its signature appended
func (s *CookieSigner) Sign(value string) string {
	return value + "." + s.mac(value)
}

// Verify returns the original value of a signed string
func (s *CookieSigner) Verify(signed string) (string, error) {
	idx := strings.LastIndexByte(signed, '.')
	if idx <= 0 {
		return "", ErrInvalidSignature
	}

	value, sig := signed[:idx], signed[idx+1:]
	if !hmac.Equal([]byte(sig), []byte(s.mac(value))) {
		return "", ErrInvalidSignature
	}
	return value, nil
}

func (s *CookieSigner) mac(value string) string {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

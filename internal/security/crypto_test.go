package security_test

import (
	"testing"

	"github.com/Rrens/code-search-web/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_SealOpen(t *testing.T) {
	sealer, err := security.NewSealer("test-secret")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
	}{
		{"empty", ""},
		{"token", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJhbGljZSJ9.sig"},
		{"json", `{"_id":"65f1a2b3c4d5e6f708091a2c","username":"alice"}`},
		{"unicode", "unicode: 日本語 中文 한국어 🎉"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := sealer.Seal(tt.plaintext, "browser-1/token")
			require.NoError(t, err)
			if tt.plaintext != "" {
				assert.NotContains(t, sealed, tt.plaintext)
			}

			opened, err := sealer.Open(sealed, "browser-1/token")
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, opened)
		})
	}
}

func TestSealer_RandomNonce(t *testing.T) {
	sealer, err := security.NewSealer("test-secret")
	require.NoError(t, err)

	a, err := sealer.Seal("same", "ctx")
	require.NoError(t, err)
	b, err := sealer.Seal("same", "ctx")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSealer_Rejects(t *testing.T) {
	sealer, err := security.NewSealer("test-secret")
	require.NoError(t, err)
	other, err := security.NewSealer("other-secret")
	require.NoError(t, err)

	sealed, err := sealer.Seal("token", "browser-1/token")
	require.NoError(t, err)

	_, err = sealer.Open(sealed, "browser-2/token")
	assert.Error(t, err, "value moved to another browser")

	_, err = other.Open(sealed, "browser-1/token")
	assert.Error(t, err, "different secret")

	_, err = sealer.Open("!!", "browser-1/token")
	assert.Error(t, err)

	_, err = sealer.Open("AAAA", "browser-1/token")
	assert.Error(t, err)

	_, err = security.NewSealer("")
	assert.Error(t, err)
}

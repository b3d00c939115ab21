package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInspector reads claims from backend-issued access tokens. The frontend
// does not hold the signing key, so signatures are never verified here.
type TokenInspector struct {
	parser *jwt.Parser
	now    func() time.Time
	leeway time.Duration
}

// NewTokenInspector creates a new token inspector
func NewTokenInspector(leeway time.Duration) *TokenInspector {
	return &TokenInspector{
		parser: jwt.NewParser(),
		now:    time.Now,
		leeway: leeway,
	}
}

// Claims returns the unverified registered claims of a token
func (i *TokenInspector) Claims(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

// Expired reports whether the token's exp claim lies in the past. Tokens that
// cannot be parsed count as expired; tokens without exp never expire.
func (i *TokenInspector) Expired(tokenString string) bool {
	claims, err := i.Claims(tokenString)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return i.now().After(claims.ExpiresAt.Add(i.leeway))
}

package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account as returned by the backend
type User struct {
	ID        primitive.ObjectID `json:"_id"`
	Username  string             `json:"username"`
	Email     string             `json:"email"`
	FullName  string             `json:"full_name,omitempty"`
	Disabled  bool               `json:"disabled,omitempty"`
	CreatedAt *Timestamp         `json:"created_at,omitempty"`
}

// DisplayName returns the full name when known, otherwise the username
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name,omitempty" validate:"omitempty,max=128"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Token represents the access token issued at login
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

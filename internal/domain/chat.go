package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultLanguage is used until the backend reports its supported languages
const DefaultLanguage = "python"

// ChatSession represents a titled conversation owned by the backend
type ChatSession struct {
	ID        primitive.ObjectID  `json:"_id"`
	Title     string              `json:"title"`
	Messages  []ChatMessage       `json:"messages"`
	CreatedAt Timestamp           `json:"created_at"`
	UpdatedAt Timestamp           `json:"updated_at"`
	UserID    *primitive.ObjectID `json:"user_id,omitempty"`
}

// ChatMessage is a single entry of a session transcript. Results are attached
// by the backend when it answers the message with a code search.
type ChatMessage struct {
	Message   string             `json:"message"`
	Language  string             `json:"language"`
	Timestamp Timestamp          `json:"timestamp"`
	Results   []CodeSearchResult `json:"results,omitempty"`
}

// ChatSessionCreate represents chat creation data
type ChatSessionCreate struct {
	Title string `json:"title" validate:"required,max=255"`
}

// ChatSessionUpdate represents chat update data
type ChatSessionUpdate struct {
	Title *string `json:"title,omitempty" validate:"omitempty,max=255"`
}

// MessageCreate is the payload appended to a session
type MessageCreate struct {
	Message   string    `json:"message" validate:"required,max=4000"`
	Language  string    `json:"language" validate:"required"`
	Timestamp Timestamp `json:"timestamp"`
}

// ParseID parses a hex chat identifier
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

package domain

import "errors"

var (
	ErrInvalidID = errors.New("invalid identifier")
	ErrNotFound  = errors.New("not found")
)

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBody = 64 << 10

// APIError carries a non-2xx backend response as-is
type APIError struct {
	Status int
	// Detail is the backend's "detail" field when present, otherwise the raw body
	Detail json.RawMessage
	Body   string
}

func newAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	apiErr := &APIError{
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(raw)),
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Detail) > 0 {
		apiErr.Detail = envelope.Detail
	}
	return apiErr
}

// Message returns the backend's explanation in readable form
func (e *APIError) Message() string {
	if len(e.Detail) > 0 {
		var s string
		if err := json.Unmarshal(e.Detail, &s); err == nil {
			return s
		}
		return string(e.Detail)
	}
	if e.Body != "" {
		return e.Body
	}
	return http.StatusText(e.Status)
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message())
}

// StatusCode returns the HTTP status of err when it is an APIError, else 0
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

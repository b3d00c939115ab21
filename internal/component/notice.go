package component

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/Rrens/code-search-web/internal/backend"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/service"
)

// NoticeLevel selects how a notice is styled
type NoticeLevel string

const (
	NoticeError   NoticeLevel = "error"
	NoticeSuccess NoticeLevel = "success"
)

// Notice is a message shown to the user above the page content
type Notice struct {
	Level   NoticeLevel
	Message string
	// Status is the HTTP status the failure maps to, zero for success notices
	Status int
}

// Notices collects the outcome messages of one request
type Notices struct {
	Items []Notice
}

func (n *Notices) fail(action string, err error) {
	n.Items = append(n.Items, Notice{
		Level:   NoticeError,
		Message: action + ": " + describe(err),
		Status:  statusOf(err),
	})
}

func (n *Notices) succeed(msg string) {
	n.Items = append(n.Items, Notice{Level: NoticeSuccess, Message: msg})
}

// HasErrors reports whether any error notice was recorded
func (n *Notices) HasErrors() bool {
	for _, item := range n.Items {
		if item.Level == NoticeError {
			return true
		}
	}
	return false
}

// Status returns the status of the first failure, or 200 when nothing failed
func (n *Notices) Status() int {
	for _, item := range n.Items {
		if item.Level == NoticeError {
			return item.Status
		}
	}
	return http.StatusOK
}

// statusOf keeps backend statuses as they are. Local validation failures are
// 422 and anything else means the backend could not be reached.
func statusOf(err error) int {
	if status := backend.StatusCode(err); status != 0 {
		return status
	}
	if service.FieldErrors(err) != nil || errors.Is(err, domain.ErrInvalidID) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

// describe turns err into text fit for the page. Backend errors keep the
// backend's own wording.
func describe(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}

	if fields := service.FieldErrors(err); fields != nil {
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)

		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s %s", name, fields[name]))
		}
		return strings.Join(parts, ", ")
	}

	return err.Error()
}

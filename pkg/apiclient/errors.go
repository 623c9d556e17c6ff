package apiclient

import (
	"fmt"
	"net/http"
)

// APIError is an RFC 7807 problem document returned by the master.
type APIError struct {
	Type   string            `json:"type,omitempty"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return e.Title
}

// IsNotFound returns true if the master answered 404.
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsConflict returns true if the master answered 409 (duplicate request id).
func (e *APIError) IsConflict() bool {
	return e.Status == http.StatusConflict
}

// IsValidationError returns true if the master rejected the body with 422.
func (e *APIError) IsValidationError() bool {
	return e.Status == http.StatusUnprocessableEntity
}

// IsBadRequest returns true if a precondition failed (reassignment).
func (e *APIError) IsBadRequest() bool {
	return e.Status == http.StatusBadRequest
}

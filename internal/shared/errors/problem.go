// Package errors provides RFC 7807 Problem Details for the reminders HTTP API.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Fields names each invalid input field with its reason.
	Fields map[string]string `json:"fields,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithField returns a copy that reports one more invalid field.
func (p ProblemDetail) WithField(field, reason string) ProblemDetail {
	fields := make(map[string]string, len(p.Fields)+1)
	for k, v := range p.Fields {
		fields[k] = v
	}
	fields[field] = reason
	p.Fields = fields
	return p
}

const (
	TypeValidation         = "/problems/validation-error"
	TypeBadRequest         = "/problems/bad-request"
	TypeNotFound           = "/problems/not-found"
	TypeStorageUnavailable = "/problems/storage-unavailable"
	TypeInternal           = "/problems/internal-error"
)

var (
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	// ErrBadRequest covers bodies and parameters that could not be decoded at all.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	// ErrStorageUnavailable reports that the reminder collection could not be read or written.
	ErrStorageUnavailable = ProblemDetail{
		Type:   TypeStorageUnavailable,
		Title:  "Storage Unavailable",
		Status: http.StatusServiceUnavailable,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewValidationProblem creates a validation error naming a single field.
func NewValidationProblem(field, reason string) ProblemDetail {
	return ErrValidation.
		WithDetail(fmt.Sprintf("%s %s", field, reason)).
		WithField(field, reason)
}

// NewNotFoundProblem creates a not found error for a specific resource.
func NewNotFoundProblem(resourceType, identifier string) ProblemDetail {
	return ErrNotFound.WithDetail(fmt.Sprintf("%s with identifier '%s' not found", resourceType, identifier))
}

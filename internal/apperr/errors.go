// Package apperr defines the sentinel errors shared across the service,
// API, and MCP layers. Handlers map them to status codes with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrCollaborator = errors.New("collaborator failure")
)

package services

import "errors"

// Failure kinds surfaced to handlers. Text-generation failures are never
// surfaced: they are recovered locally with fallback content.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
	ErrUpstream       = errors.New("upstream generation failed")
)

package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors. ErrRequestFailed wraps a normalized API failure message.
	ErrRequestFailed = errors.New("request failed")
	ErrUnauthorized  = errors.New("unauthorized")

	// Input validation errors raised by the terminal front end.
	ErrValidation = errors.New("validation error")
)

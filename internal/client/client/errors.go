package client

import "errors"

var (
	// ErrMalformedResponse prefixes failures caused by a 2xx body that does
	// not match the expected envelope or payload.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNoRefreshToken is reported by RefreshToken when nothing is stored.
	ErrNoRefreshToken = errors.New("no refresh token stored")
)

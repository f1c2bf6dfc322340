// Package common contains shared constants, sentinel errors and small helpers
// used across the portal client, its services and the development backend.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the raw token in the Authorization header.
	BearerPrefix = "Bearer "

	// AuthTokenKey is the storage key of the persisted access token.
	AuthTokenKey = "auth_token"

	// RefreshTokenKey is the storage key of the persisted refresh token.
	RefreshTokenKey = "refresh_token"
)

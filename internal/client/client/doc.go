// Package client talks to the portal backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (AuthClient, PortalClient, Client).
//  2. HTTPClient, a JSON-over-HTTP implementation built on one generic
//     request primitive. It owns the bearer token: the token is attached to
//     every request while held, persisted through a TokenStore on successful
//     login/registration/refresh and removed on logout.
//  3. TokenStore, which keeps the access and refresh tokens in a
//     metadata.Repository under the keys "auth_token" and "refresh_token".
//
// # Error Handling
//
// Nothing in this package returns a Go error for a failed call. Transport
// failures, non-2xx statuses, success:false bodies and malformed bodies are
// all normalized into models.Result with Success=false and a message in
// Error; the HTTP status, when there was one, is kept in StatusCode.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every request runs under the
// caller's context plus the configured per-request timeout.
package client

package models

// Result is the normalized outcome of one API call. Success is true only for
// a 2xx response whose body reported success; otherwise Error carries a
// human-readable message.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int `json:"-"`
}

// Empty is the data type of calls that return no payload.
type Empty struct{}

// Fail builds a failed Result with the given message.
func Fail[T any](status int, msg string) Result[T] {
	return Result[T]{Success: false, Error: msg, StatusCode: status}
}

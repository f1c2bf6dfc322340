// Package metadata implements the client's durable key/value store. The API
// client keeps its bearer and refresh tokens here under fixed keys.
package metadata

import (
	"context"
)

// Repository is a string key/value store.
//
// Get returns common.ErrNotFound for an absent key. Removing an absent key is
// not an error. Update applies all of its writes and removals or none.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Update(ctx context.Context, values map[string]string, remove ...string) error
	Delete(ctx context.Context, keys ...string) error
}

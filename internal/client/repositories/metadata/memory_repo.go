package metadata

import (
	"context"
	"maps"
	"sync"

	"github.com/uni-jay/ican-portal/internal/common"
)

// MemoryRepository keeps values for the lifetime of the process only.
type MemoryRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: make(map[string]string)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return "", common.ErrNotFound
	}
	return v, nil
}

func (r *MemoryRepository) Update(_ context.Context, values map[string]string, remove ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	maps.Copy(r.values, values)
	for _, k := range remove {
		delete(r.values, k)
	}
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, keys ...string) error {
	return r.Update(ctx, nil, keys...)
}

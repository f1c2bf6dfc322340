package metadata

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uni-jay/ican-portal/internal/common"
)

func TestMemoryRepository(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_, err := r.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrNotFound)

	values := map[string]string{"k": "v", "a": "1", "b": "2"}
	require.NoError(t, r.Update(ctx, values))
	values["k"] = "mutated"
	requireValue(t, r, "k", "v")

	require.NoError(t, r.Update(ctx, map[string]string{"a": "3"}, "b"))
	requireValue(t, r, "a", "3")
	requireAbsent(t, r, "b")

	require.NoError(t, r.Delete(ctx, "a", "missing"))
	requireAbsent(t, r, "a")
	requireValue(t, r, "k", "v")
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	repo, closer, err := Open(ctx, DriverMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryRepository{}, repo)
	require.NoError(t, closer.Close())

	repo, closer, err = Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, map[string]string{common.AuthTokenKey: "tok"}))
	v, err := repo.Get(ctx, common.AuthTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok", v)
	require.NoError(t, closer.Close())

	_, _, err = Open(ctx, "etcd", "")
	require.ErrorContains(t, err, `unknown storage driver "etcd"`)
}

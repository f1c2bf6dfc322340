package metadata

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uni-jay/ican-portal/internal/common"
)

func setupRedis(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return NewRedisRepository(client, ""), mr
}

func TestRedis_UpdateGetDelete(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Update(ctx, map[string]string{common.AuthTokenKey: "tok123"}))
	got, err := mr.Get(DefaultRedisPrefix + common.AuthTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok123", got)

	v, err := r.Get(ctx, common.AuthTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok123", v)

	require.NoError(t, r.Delete(ctx, common.AuthTokenKey))
	_, err = r.Get(ctx, common.AuthTokenKey)
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, r.Delete(ctx))
}

func TestRedis_UpdateWritesAndRemovesInOneTransaction(t *testing.T) {
	r, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("unrelated", "keep"))
	require.NoError(t, r.Update(ctx, map[string]string{"a": "1", "b": "2"}))
	require.NoError(t, r.Update(ctx, map[string]string{"a": "3"}, "b", "missing"))

	requireValue(t, r, "a", "3")
	requireAbsent(t, r, "b")
	assert.True(t, mr.Exists(DefaultRedisPrefix+"a"))
	assert.True(t, mr.Exists("unrelated"), "only prefixed keys are touched")

	require.NoError(t, r.Update(ctx, nil))
}

func TestRedis_ServerDown_ErrorsWrapped(t *testing.T) {
	r, mr := setupRedis(t)
	mr.Close()
	ctx := context.Background()

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.ErrorContains(t, r.Update(ctx, map[string]string{"k": "v"}), "failed to update metadata batch")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
}

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()

	_, err := NewRedisClient(ctx, "")
	require.Error(t, err)

	_, err = NewRedisClient(ctx, "not a url")
	require.ErrorContains(t, err, "parse redis url")

	mr := miniredis.RunT(t)
	c, err := NewRedisClient(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	require.NoError(t, c.Close())
}

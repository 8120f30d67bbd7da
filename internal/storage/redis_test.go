package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedis(client, "bondkeeper:")
}

func TestRedis_RoundTrip(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "contacts_u1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "contacts_u1", []byte(`[{"id":"c1"}]`)))

	raw, err := mr.Get("bondkeeper:contacts_u1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"c1"}]`, raw)
	assert.Zero(t, mr.TTL("bondkeeper:contacts_u1"))

	v, err := store.Get(ctx, "contacts_u1")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"c1"}]`, string(v))

	require.NoError(t, store.Remove(ctx, "contacts_u1"))
	assert.False(t, mr.Exists("bondkeeper:contacts_u1"))
}

func TestRedis_Ping(t *testing.T) {
	_, store := setupTestRedis(t)
	require.NoError(t, store.Ping(context.Background()))
}

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "user")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "user", []byte(`{"id":"1"}`)))
	v, err := m.Get(ctx, "user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(v))

	require.NoError(t, m.Remove(ctx, "user"))
	_, err = m.Get(ctx, "user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", []byte("abc")))

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	v[0] = 'z'

	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

package identity

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ada = Identity{ID: "google-123", Name: "Ada", Email: "ada@example.com", Picture: "https://example.com/ada.png"}

func TestHolder_RestoreEmpty(t *testing.T) {
	h := NewHolder(storage.NewMemory())
	assert.True(t, h.IsLoading())

	id, err := h.Restore(context.Background())
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.False(t, h.IsLoading())
	assert.False(t, h.IsAuthenticated())
}

func TestHolder_SignInPersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	h := NewHolder(mem)
	require.NoError(t, h.SignIn(ctx, ada))
	assert.Equal(t, &ada, h.Current())

	raw, err := mem.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"google-123","name":"Ada","email":"ada@example.com","picture":"https://example.com/ada.png"}`, string(raw))

	restarted := NewHolder(mem)
	id, err := restarted.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, &ada, id)
	assert.True(t, restarted.IsAuthenticated())
}

func TestHolder_SignOutClearsMemoryAndStorage(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	h := NewHolder(mem)
	require.NoError(t, h.SignIn(ctx, ada))

	require.NoError(t, h.SignOut(ctx))
	assert.Nil(t, h.Current())

	_, err := mem.Get(ctx, StorageKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestHolder_ListenersSignalled(t *testing.T) {
	ctx := context.Background()
	h := NewHolder(storage.NewMemory())

	var events []Event
	var ids []*Identity
	h.Subscribe(func(ev Event, id *Identity) {
		events = append(events, ev)
		ids = append(ids, id)
	})

	require.NoError(t, h.SignIn(ctx, ada))
	require.NoError(t, h.SignOut(ctx))

	assert.Equal(t, []Event{EventSignedIn, EventSignedOut}, events)
	require.Len(t, ids, 2)
	assert.Equal(t, "google-123", ids[0].ID)
	assert.Nil(t, ids[1])
}

func TestHolder_CurrentIsCopy(t *testing.T) {
	h := NewHolder(storage.NewMemory())
	require.NoError(t, h.SignIn(context.Background(), ada))

	cur := h.Current()
	cur.Name = "changed"
	assert.Equal(t, "Ada", h.Current().Name)
}

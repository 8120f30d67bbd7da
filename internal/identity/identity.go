// Package identity holds the signed-in user's profile and mirrors it to
// durable storage under a fixed key so it survives restarts.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/storage"
)

// StorageKey is where the identity is persisted.
const StorageKey = "user"

// Identity is issued by the external sign-in provider and trusted verbatim.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

type Event int

const (
	EventSignedIn Event = iota + 1
	EventSignedOut
)

func (e Event) String() string {
	switch e {
	case EventSignedIn:
		return "signed_in"
	case EventSignedOut:
		return "signed_out"
	default:
		return "unknown"
	}
}

// Listener is called after the holder's state changed. The identity is nil
// on sign-out.
type Listener func(ev Event, id *Identity)

type Holder struct {
	store storage.Storage

	mu        sync.RWMutex
	current   *Identity
	loading   bool
	listeners []Listener
}

func NewHolder(store storage.Storage) *Holder {
	return &Holder{store: store, loading: true}
}

// Restore reads the previously stored identity. No stored identity yields
// nil without error.
func (h *Holder) Restore(ctx context.Context) (*Identity, error) {
	defer func() {
		h.mu.Lock()
		h.loading = false
		h.mu.Unlock()
	}()

	raw, err := h.store.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restore identity: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, fmt.Errorf("decode stored identity: %w", err)
	}

	h.mu.Lock()
	h.current = &id
	h.mu.Unlock()

	out := id
	return &out, nil
}

func (h *Holder) SignIn(ctx context.Context, id Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := h.store.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("persist identity: %w", err)
	}

	h.mu.Lock()
	h.current = &id
	listeners := append([]Listener(nil), h.listeners...)
	h.mu.Unlock()

	out := id
	for _, l := range listeners {
		l(EventSignedIn, &out)
	}
	return nil
}

func (h *Holder) SignOut(ctx context.Context) error {
	h.mu.Lock()
	h.current = nil
	listeners := append([]Listener(nil), h.listeners...)
	h.mu.Unlock()

	if err := h.store.Remove(ctx, StorageKey); err != nil {
		return fmt.Errorf("remove identity: %w", err)
	}

	for _, l := range listeners {
		l(EventSignedOut, nil)
	}
	return nil
}

// Current returns a copy of the active identity, or nil.
func (h *Holder) Current() *Identity {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return nil
	}
	out := *h.current
	return &out
}

func (h *Holder) IsAuthenticated() bool {
	return h.Current() != nil
}

// IsLoading is true until the first Restore returns.
func (h *Holder) IsLoading() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loading
}

func (h *Holder) Subscribe(l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, l)
}

// Package session ties the identity holder to the relationship store so that
// the store always reflects exactly the signed-in identity.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/identity"
	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
)

type Session struct {
	holder *identity.Holder
	store  *relationship.Store
}

func New(holder *identity.Holder, store *relationship.Store) *Session {
	return &Session{holder: holder, store: store}
}

// Start restores the previous identity, if any, and loads its collections.
func (s *Session) Start(ctx context.Context) error {
	id, err := s.holder.Restore(ctx)
	if err != nil {
		return err
	}
	if id == nil {
		slog.Info("no stored identity")
		return nil
	}
	if err := s.store.SwitchIdentity(ctx, id.ID); err != nil {
		return fmt.Errorf("load collections for %s: %w", id.ID, err)
	}
	slog.Info("session restored", "user_id", id.ID)
	return nil
}

func (s *Session) SignIn(ctx context.Context, id identity.Identity) error {
	if err := s.holder.SignIn(ctx, id); err != nil {
		return err
	}
	if err := s.store.SwitchIdentity(ctx, id.ID); err != nil {
		return fmt.Errorf("load collections for %s: %w", id.ID, err)
	}
	return nil
}

func (s *Session) SignOut(ctx context.Context) error {
	s.store.Reset()
	return s.holder.SignOut(ctx)
}

func (s *Session) Identity() *identity.Identity { return s.holder.Current() }

func (s *Session) Holder() *identity.Holder { return s.holder }

func (s *Session) Store() *relationship.Store { return s.store }

package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists new sessions.
type Store interface {
	Insert(ctx context.Context, s Session) error
}

// Issuer creates attendance sessions.
type Issuer struct {
	store Store
}

// NewIssuer creates an issuer backed by a store.
func NewIssuer(store Store) *Issuer {
	return &Issuer{store: store}
}

// Create validates the payload, binds it to a fresh token and persists the
// session. Each call produces an independent session.
func (i *Issuer) Create(ctx context.Context, p Payload) (Session, error) {
	if err := p.Validate(); err != nil {
		return Session{}, err
	}
	s := Session{
		Token:     uuid.NewString(),
		Payload:   p,
		CreatedAt: time.Now().UTC(),
	}
	if err := i.store.Insert(ctx, s); err != nil {
		return Session{}, err
	}
	return s, nil
}

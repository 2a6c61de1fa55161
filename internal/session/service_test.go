package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendify/internal/geo"
)

type memStore struct {
	sessions map[string]Session
	failWith error
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]Session)}
}

func (m *memStore) Insert(_ context.Context, s Session) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sessions[s.Token] = s
	return nil
}

func validPayload() Payload {
	return Payload{
		Expiry:          time.Now().Add(10 * time.Minute).UTC(),
		FacultyLocation: geo.Point{Lat: 12.0, Lng: 77.0},
		Radius:          50,
	}
}

func TestCreatePersistsSession(t *testing.T) {
	store := newMemStore()
	issuer := NewIssuer(store)

	s, err := issuer.Create(context.Background(), validPayload())
	require.NoError(t, err)

	_, err = uuid.Parse(s.Token)
	assert.NoError(t, err, "token should be a UUID")
	assert.False(t, s.CreatedAt.IsZero())

	stored, ok := store.sessions[s.Token]
	require.True(t, ok)
	assert.Equal(t, s.Payload, stored.Payload)
}

func TestCreateTokensAreUnique(t *testing.T) {
	store := newMemStore()
	issuer := NewIssuer(store)

	a, err := issuer.Create(context.Background(), validPayload())
	require.NoError(t, err)
	b, err := issuer.Create(context.Background(), validPayload())
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
	assert.Len(t, store.sessions, 2)
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	store := newMemStore()
	issuer := NewIssuer(store)

	p := validPayload()
	p.Radius = -1
	_, err := issuer.Create(context.Background(), p)
	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Empty(t, store.sessions, "nothing should be written for a bad payload")
}

func TestCreatePropagatesStoreError(t *testing.T) {
	store := newMemStore()
	store.failWith = errors.New("connection refused")
	issuer := NewIssuer(store)

	_, err := issuer.Create(context.Background(), validPayload())
	assert.ErrorContains(t, err, "connection refused")
}

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// Repository persists sessions in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new session. Tokens are generated fresh per call, so a key
// collision is treated as an ordinary storage error.
func (r *Repository) Insert(ctx context.Context, s Session) error {
	payload, err := json.Marshal(s.Payload)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (token, payload, created_at)
		VALUES ($1, $2, $3)
	`, s.Token, payload, s.CreatedAt)
	return err
}

// GetByToken fetches a session; nil without error when the token is unknown.
func (r *Repository) GetByToken(ctx context.Context, token string) (*Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT token, payload, created_at FROM sessions WHERE token = $1
	`, token)

	var s Session
	var payload []byte
	if err := row.Scan(&s.Token, &payload, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(payload, &s.Payload); err != nil {
		return nil, err
	}
	return &s, nil
}

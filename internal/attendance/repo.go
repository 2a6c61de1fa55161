package attendance

import (
	"context"
	"database/sql"
	"errors"
)

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Exists reports whether a record for (token, device) is already present.
func (r *Repository) Exists(ctx context.Context, token, deviceID string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM attendance WHERE token = $1 AND device_id = $2
	`, token, deviceID)
	var one int
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Insert writes a record if none exists for its (token, device_id) pair.
// Returns false when the pair lost the race to a concurrent insert; the
// primary key on (token, device_id) makes the check-and-write atomic.
func (r *Repository) Insert(ctx context.Context, rec Record) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO attendance (token, device_id, name, roll, distance, marked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (token, device_id) DO NOTHING
	`, rec.Token, rec.DeviceID, rec.Name, rec.Roll, rec.Distance, rec.Time)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ListBySession returns all records for a session, oldest first.
func (r *Repository) ListBySession(ctx context.Context, token string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT token, device_id, name, roll, distance, marked_at
		FROM attendance
		WHERE token = $1
		ORDER BY marked_at
	`, token)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Token, &rec.DeviceID, &rec.Name, &rec.Roll, &rec.Distance, &rec.Time); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

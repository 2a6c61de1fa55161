package attendance

import (
	"context"
	"errors"
	"math"
	"time"

	"attendify/internal/geo"
	"attendify/internal/session"
)

// ErrUnknownSession is returned by Roster for a token that was never issued.
var ErrUnknownSession = errors.New("unknown session")

// SessionStore looks up issued sessions.
type SessionStore interface {
	GetByToken(ctx context.Context, token string) (*session.Session, error)
}

// RecordStore persists attendance records.
type RecordStore interface {
	Exists(ctx context.Context, token, deviceID string) (bool, error)
	Insert(ctx context.Context, rec Record) (bool, error)
	ListBySession(ctx context.Context, token string) ([]Record, error)
}

// Validator runs the attendance-marking pipeline against a session's time,
// device and geofence constraints.
type Validator struct {
	sessions SessionStore
	records  RecordStore
	now      func() time.Time
}

// NewValidator creates a validator over the given stores.
func NewValidator(sessions SessionStore, records RecordStore) *Validator {
	return &Validator{sessions: sessions, records: records, now: time.Now}
}

// Mark runs the ordered guard sequence: session lookup, expiry, duplicate
// device, geofence, commit. The first failing guard decides the outcome; a
// request at exactly the expiry instant or at exactly the radius boundary is
// accepted. Errors are storage failures only, never business rejections.
func (v *Validator) Mark(ctx context.Context, req MarkRequest) (Result, error) {
	sess, err := v.sessions.GetByToken(ctx, req.Token)
	if err != nil {
		return Result{}, err
	}
	if sess == nil {
		return Result{Status: StatusInvalidQR}, nil
	}

	now := v.now().UTC()
	if now.After(sess.Payload.Expiry) {
		return Result{Status: StatusExpired}, nil
	}

	marked, err := v.records.Exists(ctx, req.Token, req.DeviceID)
	if err != nil {
		return Result{}, err
	}
	if marked {
		return Result{Status: StatusAlreadyMarked}, nil
	}

	dist := geo.DistanceM(sess.Payload.FacultyLocation, req.StudentLocation)
	rounded := math.Round(dist*100) / 100
	if dist > sess.Payload.Radius {
		return Result{Status: StatusOutsideRadius, Distance: &rounded}, nil
	}

	rec := Record{
		Token:    req.Token,
		DeviceID: req.DeviceID,
		Name:     req.Name,
		Roll:     req.Roll,
		Distance: rounded,
		Time:     now,
	}
	inserted, err := v.records.Insert(ctx, rec)
	if err != nil {
		return Result{}, err
	}
	if !inserted {
		// Lost the commit race to a concurrent request from the same device.
		return Result{Status: StatusAlreadyMarked}, nil
	}
	return Result{Status: StatusSuccess, Distance: &rounded, Record: &rec}, nil
}

// Roster lists the attendance records of a session.
func (v *Validator) Roster(ctx context.Context, token string) ([]Record, error) {
	sess, err := v.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrUnknownSession
	}
	return v.records.ListBySession(ctx, token)
}

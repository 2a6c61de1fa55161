package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"attendify/internal/geo"
)

// ErrInvalidPayload wraps all payload validation failures so callers can map
// them to a 400 instead of a storage error.
var ErrInvalidPayload = errors.New("invalid session payload")

// Session binds an opaque token to its payload. Sessions are written once and
// never mutated; expiry is enforced at validation time, not by deletion.
type Session struct {
	Token     string    `json:"token"`
	Payload   Payload   `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// Payload is the faculty-supplied session body. Expiry, FacultyLocation and
// Radius drive validation; every other field the caller sends is kept in
// Extra and stored untouched.
type Payload struct {
	Expiry          time.Time
	FacultyLocation geo.Point
	Radius          float64
	Extra           map[string]any
}

// Validate checks the three required fields at creation time.
func (p Payload) Validate() error {
	if p.Expiry.IsZero() {
		return fmt.Errorf("%w: expiry required", ErrInvalidPayload)
	}
	if !p.FacultyLocation.Valid() {
		return fmt.Errorf("%w: facultyLocation out of range", ErrInvalidPayload)
	}
	if p.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive", ErrInvalidPayload)
	}
	return nil
}

// MarshalJSON flattens the typed fields and the pass-through fields into one
// object, matching the stored payload layout.
func (p Payload) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extra)+3)
	for k, v := range p.Extra {
		m[k] = v
	}
	m["expiry"] = p.Expiry.UTC().Format(time.RFC3339Nano)
	m["facultyLocation"] = p.FacultyLocation
	m["radius"] = p.Radius
	return json.Marshal(m)
}

// UnmarshalJSON picks out the typed fields and keeps the rest in Extra.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	*p = Payload{}
	for key, raw := range m {
		switch key {
		case "expiry":
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return fmt.Errorf("%w: expiry must be a string", ErrInvalidPayload)
			}
			t, err := parseExpiry(s)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
			}
			p.Expiry = t
		case "facultyLocation":
			if err := json.Unmarshal(raw, &p.FacultyLocation); err != nil {
				return fmt.Errorf("%w: bad facultyLocation", ErrInvalidPayload)
			}
		case "radius":
			if err := json.Unmarshal(raw, &p.Radius); err != nil {
				return fmt.Errorf("%w: radius must be a number", ErrInvalidPayload)
			}
		default:
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			if p.Extra == nil {
				p.Extra = make(map[string]any)
			}
			p.Extra[key] = v
		}
	}
	return nil
}

// parseExpiry accepts RFC 3339 timestamps and the zone-less ISO form that
// clients commonly send; the latter is interpreted as UTC.
func parseExpiry(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable expiry %q", s)
}

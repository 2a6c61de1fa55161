package attendance

import (
	"time"

	"attendify/internal/geo"
)

// Status is the terminal outcome of one validation attempt.
type Status string

const (
	StatusSuccess       Status = "success"
	StatusInvalidQR     Status = "invalid_qr"
	StatusExpired       Status = "expired"
	StatusAlreadyMarked Status = "already_marked"
	StatusOutsideRadius Status = "outside_radius"
)

// OK reports whether the status is the success terminal.
func (s Status) OK() bool { return s == StatusSuccess }

// Record is one successful attendance event. At most one record exists per
// (token, device_id) pair; records are never updated or deleted.
type Record struct {
	Token    string    `json:"token"`
	DeviceID string    `json:"device_id"`
	Name     string    `json:"name"`
	Roll     string    `json:"roll"`
	Distance float64   `json:"distance"`
	Time     time.Time `json:"time"`
}

// MarkRequest is a student's attempt to mark attendance for a session.
type MarkRequest struct {
	Token           string
	DeviceID        string
	Name            string
	Roll            string
	StudentLocation geo.Point
}

// Result carries the outcome and, when the geofence was evaluated, the
// computed distance in meters rounded to two decimals.
type Result struct {
	Status   Status
	Distance *float64
	Record   *Record
}

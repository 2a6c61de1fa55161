package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendify/internal/geo"
)

func TestPayloadUnmarshalKeepsExtras(t *testing.T) {
	raw := `{
		"expiry": "2026-09-01T10:00:00Z",
		"facultyLocation": {"lat": 12.0, "lng": 77.0},
		"radius": 50,
		"subject": "CS101",
		"batch": 7
	}`

	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), p.Expiry)
	assert.Equal(t, geo.Point{Lat: 12.0, Lng: 77.0}, p.FacultyLocation)
	assert.Equal(t, 50.0, p.Radius)
	assert.Equal(t, "CS101", p.Extra["subject"])
	assert.Equal(t, float64(7), p.Extra["batch"])
}

func TestPayloadRoundTrip(t *testing.T) {
	p := Payload{
		Expiry:          time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		FacultyLocation: geo.Point{Lat: 12.0, Lng: 77.0},
		Radius:          50,
		Extra:           map[string]any{"subject": "CS101"},
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got Payload
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, p, got)
}

func TestPayloadUnmarshalZonelessExpiry(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"expiry": "2026-09-01T10:00:00"}`), &p))
	assert.Equal(t, time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), p.Expiry)
}

func TestPayloadUnmarshalBadExpiry(t *testing.T) {
	var p Payload
	err := json.Unmarshal([]byte(`{"expiry": "next tuesday"}`), &p)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestPayloadValidate(t *testing.T) {
	valid := Payload{
		Expiry:          time.Now().Add(time.Hour),
		FacultyLocation: geo.Point{Lat: 12.0, Lng: 77.0},
		Radius:          50,
	}
	assert.NoError(t, valid.Validate())

	missingExpiry := valid
	missingExpiry.Expiry = time.Time{}
	assert.ErrorIs(t, missingExpiry.Validate(), ErrInvalidPayload)

	badLocation := valid
	badLocation.FacultyLocation = geo.Point{Lat: 95, Lng: 0}
	assert.ErrorIs(t, badLocation.Validate(), ErrInvalidPayload)

	zeroRadius := valid
	zeroRadius.Radius = 0
	assert.ErrorIs(t, zeroRadius.Validate(), ErrInvalidPayload)
}

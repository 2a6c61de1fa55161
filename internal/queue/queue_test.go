package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendify/internal/attendance"
)

func TestInMemoryRoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	require.NoError(t, q.Publish(ctx, Message{Type: "t", Body: []byte("b")}))

	out, err := q.Consume(ctx)
	require.NoError(t, err)

	select {
	case msg := <-out:
		assert.Equal(t, "t", msg.Type)
		assert.Equal(t, []byte("b"), msg.Body)
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}

func TestInMemoryPublishCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := NewInMemory(0)
	err := q.Publish(ctx, Message{Type: "t"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMarkedMessage(t *testing.T) {
	rec := attendance.Record{Token: "tok", DeviceID: "dev-A", Name: "Alice", Distance: 1.25}
	msg, err := MarkedMessage(rec)
	require.NoError(t, err)
	assert.Equal(t, TypeAttendanceMarked, msg.Type)

	var got attendance.Record
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, rec, got)
}

func TestSerializeRoundTrip(t *testing.T) {
	msg := Message{Type: TypeAttendanceMarked, Body: []byte(`{"token":"a|b"}`)}
	got := deserialize(serialize(msg))
	assert.Equal(t, msg, got)
}

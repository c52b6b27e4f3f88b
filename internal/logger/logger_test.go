package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "json")
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown", "room_id", 7)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.EqualValues(t, 7, rec["room_id"])
}

func TestWithContextAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	defaultLogger = New(&buf, "info", "json")
	t.Cleanup(func() { defaultLogger = nil })

	ctx := ContextWithUserID(ContextWithRequestID(context.Background(), "req-1"), 42)
	WithContext(ctx).Info("booked")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "req-1", rec["request_id"])
	assert.EqualValues(t, 42, rec["user_id"])
}

func TestNewRequestIDIsUUID(t *testing.T) {
	_, err := uuid.Parse(NewRequestID())
	assert.NoError(t, err)
	assert.Empty(t, RequestID(context.Background()))
}

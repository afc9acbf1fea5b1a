package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLogger_FieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newZapLogger(ZapConfig{Level: "info", Mode: "production", Encoding: "json", Service: "counters"}, &buf)

	ctx := l.With(context.Background(), "section", "Deli")
	l.Debugf(ctx, "dropped %d", 1)
	l.Infof(ctx, "Ticket %d issued", 4)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "Ticket 4 issued", line["MESSAGE"])
	assert.Equal(t, "counters", line["service"])
	assert.Equal(t, "Deli", line["section"])
}

func TestZapLogger_UnknownLevelFallsBackToDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newZapLogger(ZapConfig{Level: "chatty", Encoding: "json"}, &buf)

	l.Debug(context.Background(), "visible")
	assert.Contains(t, buf.String(), "visible")
}

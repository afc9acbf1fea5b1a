package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISO8601RoundTrip(t *testing.T) {
	at := time.Date(2026, 10, 16, 9, 30, 15, 250_000_000, time.FixedZone("CEST", 2*3600))

	s := TimeToISO8601Str(at)
	assert.Equal(t, "2026-10-16T07:30:15.25Z", s)

	back, err := ParseISO8601(s)
	require.NoError(t, err)
	assert.True(t, at.Equal(back))
}

func TestZeroAndNilTimes(t *testing.T) {
	assert.Empty(t, TimeToISO8601Str(time.Time{}))
	assert.Empty(t, OptionalTimeToISO8601Str(nil))

	back, err := ParseISO8601("")
	require.NoError(t, err)
	assert.True(t, back.IsZero())
}

package internal

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	require.Equal(t, 120*time.Second, ParseRetryAfter("120", now))
	require.Equal(t, time.Duration(0), ParseRetryAfter("0", now))
	require.Equal(t, time.Duration(0), ParseRetryAfter("-3", now))
	require.Equal(t, time.Duration(0), ParseRetryAfter("", now))
	require.Equal(t, time.Duration(0), ParseRetryAfter("soon", now))

	// HTTP-date form.
	at := now.Add(90 * time.Second)
	require.Equal(t, 90*time.Second, ParseRetryAfter(at.Format(http.TimeFormat), now))

	// Dates in the past yield zero.
	past := now.Add(-time.Hour)
	require.Equal(t, time.Duration(0), ParseRetryAfter(past.Format(http.TimeFormat), now))
}

func TestParseResetAt(t *testing.T) {
	require.Equal(t, time.Unix(1780315200, 0), ParseResetAt("1780315200"))
	require.Equal(t, time.UnixMilli(1780315200000), ParseResetAt("1780315200000"))
	require.True(t, ParseResetAt("").IsZero())
	require.True(t, ParseResetAt("later").IsZero())
	require.True(t, ParseResetAt("-1").IsZero())
}

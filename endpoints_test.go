package carelink

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEndpointResolve(t *testing.T) {
	u, cerr := NewEndpoint("/members").resolve("https://api.test")
	require.Nil(t, cerr)
	require.Equal(t, "https://api.test/members", u)

	// Redundant slashes collapse.
	u, cerr = NewEndpoint("/members/m1").resolve("https://api.test/")
	require.Nil(t, cerr)
	require.Equal(t, "https://api.test/members/m1", u)
}

func TestEndpointResolve_QueryPreserved(t *testing.T) {
	u, cerr := NewEndpoint("/analytics/summary?from=2026-01-01T00%3A00%3A00Z&to=2026-02-01T00%3A00%3A00Z").resolve("https://api.test")
	require.Nil(t, cerr)
	require.Equal(t, "https://api.test/analytics/summary?from=2026-01-01T00%3A00%3A00Z&to=2026-02-01T00%3A00%3A00Z", u)
}

func TestEndpointResolve_InvalidBase(t *testing.T) {
	_, cerr := NewEndpoint("/members").resolve("://bad")
	require.NotNil(t, cerr)
	require.Equal(t, KindInvalidURL, cerr.Kind)
}

func TestNewEndpointFormatting(t *testing.T) {
	require.Equal(t, "/members/m1/messages", NewEndpoint("/members/%s/messages", "m1").Path)
	require.Equal(t, "/members/%s", NewEndpoint("/members/%s").Path) // no args, no formatting
}

package middleware

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStaleWindowsPruned(t *testing.T) {
	l := NewRateLimiter(10)
	base := time.Now()

	for i := 0; i < pruneThreshold; i++ {
		key := fmt.Sprintf("10.0.%d.%d", i/256, i%256)
		require.True(t, l.allow(key, base))
	}
	require.Len(t, l.windows, pruneThreshold)

	// A minute on, every tracked window is stale; admitting a new client
	// sweeps them instead of growing the map.
	require.True(t, l.allow("198.51.100.1", base.Add(2*time.Minute)))
	require.Len(t, l.windows, 1)
}

func TestReturningClientKeepsItsWindow(t *testing.T) {
	l := NewRateLimiter(2)
	base := time.Now()

	require.True(t, l.allow("10.0.0.1", base))
	require.True(t, l.allow("10.0.0.1", base.Add(time.Second)))
	require.False(t, l.allow("10.0.0.1", base.Add(2*time.Second)))

	// The window resets once a full minute has elapsed.
	require.True(t, l.allow("10.0.0.1", base.Add(61*time.Second)))
}

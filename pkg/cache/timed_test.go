package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_TimedCache_SetGet(t *testing.T) {
	c := NewTimedCache[string, int](time.Minute)

	c.Set("foo", 42)
	got, ok := c.Get("foo")
	require.True(t, ok)
	require.Equal(t, 42, got)
	require.True(t, c.Has("foo"))

	_, ok = c.Get("bar")
	require.False(t, ok)
}

func Test_TimedCache_Expiry(t *testing.T) {
	c := NewTimedCache[string, string](10 * time.Minute)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", got)

	// One second past the timeout, the entry is gone.
	current = current.Add(10*time.Minute + time.Second)
	_, ok = c.Get("k")
	require.False(t, ok)
	require.False(t, c.Has("k"))

	// The expired entry was evicted, not just hidden.
	require.NotContains(t, c.entries, "k")
}

func Test_TimedCache_Drop(t *testing.T) {
	c := NewTimedCache[string, int](time.Minute)

	c.Set("k", 1)
	c.Drop("k")
	require.False(t, c.Has("k"))

	// Dropping an absent key is a no-op.
	c.Drop("missing")
}

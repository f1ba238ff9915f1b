package cache

import "time"

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TimedCache is a simple cache where entries expire after a fixed amount of
// time. Expired entries are evicted lazily on read; there is no background
// sweeper. It is not safe for concurrent use.
type TimedCache[K comparable, V any] struct {
	timeout time.Duration
	entries map[K]entry[V]

	// now is replaceable in tests.
	now func() time.Time
}

func NewTimedCache[K comparable, V any](timeout time.Duration) *TimedCache[K, V] {
	return &TimedCache[K, V]{
		timeout: timeout,
		entries: make(map[K]entry[V]),
		now:     time.Now,
	}
}

func (c *TimedCache[K, V]) Set(key K, value V) {
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.timeout)}
}

// Get returns the value for key, or false if the key is absent or its entry
// has expired. Expired entries are removed.
func (c *TimedCache[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}

	return e.value, true
}

func (c *TimedCache[K, V]) Has(key K) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *TimedCache[K, V]) Drop(key K) {
	delete(c.entries, key)
}

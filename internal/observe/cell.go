// Package observe provides a minimal publish-subscribe value cell used for
// preference values that UI components watch for changes.
package observe

import "sync"

// Cell holds a single value and a list of subscribers notified when the
// value changes. Writes follow a single-writer discipline (the UI domain);
// reads are internally locked so Get is safe from any goroutine.
type Cell[T comparable] struct {
	mu    sync.Mutex
	value T
	subs  []func(T)
}

// NewCell creates a cell seeded with the given value.
func NewCell[T comparable](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set stores a new value and notifies subscribers synchronously, in
// subscription order. Setting the current value again is a no-op and
// produces no notifications.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	if v == c.value {
		c.mu.Unlock()
		return
	}
	c.value = v
	subs := make([]func(T), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Subscribe registers fn to be called with every subsequent value change.
// Subscriptions last for the lifetime of the cell; there is no unsubscribe.
func (c *Cell[T]) Subscribe(fn func(T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

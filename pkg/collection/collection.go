// Package collection provides an ordered key/value container used for request
// input groups, response headers and session data.
//
// Iteration follows insertion order. Overwriting an existing key keeps its
// original position. A Collection is not safe for concurrent use.
package collection

import "iter"

// Collection is an insertion-ordered map.
type Collection[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates an empty collection.
func New[K comparable, V any]() *Collection[K, V] {
	return &Collection[K, V]{values: make(map[K]V)}
}

// From creates a collection from a sequence of pairs, keeping their order.
func From[K comparable, V any](seq iter.Seq2[K, V]) *Collection[K, V] {
	c := New[K, V]()
	for k, v := range seq {
		c.Put(k, v)
	}
	return c
}

// Get returns the value stored under key and whether it exists.
func (c *Collection[K, V]) Get(key K) (V, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetOr returns the value stored under key or def when it is missing.
func (c *Collection[K, V]) GetOr(key K, def V) V {
	if v, ok := c.values[key]; ok {
		return v
	}
	return def
}

// GetOrElse returns the value stored under key. When the key is missing the
// factory is invoked with the key and its result is returned. A nil factory
// yields the zero value.
func (c *Collection[K, V]) GetOrElse(key K, factory func(K) V) V {
	if v, ok := c.values[key]; ok {
		return v
	}
	if factory == nil {
		var zero V
		return zero
	}
	return factory(key)
}

// Put stores value under key.
func (c *Collection[K, V]) Put(key K, value V) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

// Has reports whether every key is present.
func (c *Collection[K, V]) Has(keys ...K) bool {
	for _, k := range keys {
		if _, ok := c.values[k]; !ok {
			return false
		}
	}
	return true
}

// Forget removes the given keys. Missing keys are ignored.
func (c *Collection[K, V]) Forget(keys ...K) {
	for _, k := range keys {
		if _, ok := c.values[k]; !ok {
			continue
		}
		delete(c.values, k)
		for i, existing := range c.keys {
			if existing == k {
				c.keys = append(c.keys[:i], c.keys[i+1:]...)
				break
			}
		}
	}
}

// All iterates over the pairs in insertion order.
func (c *Collection[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range c.keys {
			if !yield(k, c.values[k]) {
				return
			}
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (c *Collection[K, V]) Keys() []K {
	out := make([]K, len(c.keys))
	copy(out, c.keys)
	return out
}

// Map returns a shallow copy of the stored pairs.
func (c *Collection[K, V]) Map() map[K]V {
	out := make(map[K]V, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Clear removes every pair.
func (c *Collection[K, V]) Clear() {
	c.keys = nil
	c.values = make(map[K]V)
}

// Count returns the number of pairs.
func (c *Collection[K, V]) Count() int {
	return len(c.keys)
}

// IsEmpty reports whether the collection holds no pairs.
func (c *Collection[K, V]) IsEmpty() bool {
	return len(c.keys) == 0
}

// Clone returns a shallow copy that keeps the order.
func (c *Collection[K, V]) Clone() *Collection[K, V] {
	out := &Collection[K, V]{
		keys:   make([]K, len(c.keys)),
		values: make(map[K]V, len(c.values)),
	}
	copy(out.keys, c.keys)
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}

// Replace discards the current pairs and copies the pairs of other in order.
func (c *Collection[K, V]) Replace(other *Collection[K, V]) {
	c.Clear()
	if other == nil {
		return
	}
	for k, v := range other.All() {
		c.Put(k, v)
	}
}

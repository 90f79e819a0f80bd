// Package testutil holds reference-model helpers shared by the tests in
// hotbtree, hotfront, hotglory and hotsync (and by cmd/hotbench); the core
// hot package's tests do not use it. It offers a plain Go map used as
// the ground truth an ordered-map implementation is checked against, plus
// deterministic key generators for reproducing failures.
package testutil

import (
	"sort"

	set3 "github.com/TomTonic/Set3"
)

// Reference is a ground-truth ordered map, backed by a plain Go map plus a
// Set3 of live keys, used to cross-check an implementation under test.
type Reference[V any] struct {
	values map[string]V
	live   *set3.Set3[string]
}

// NewReference constructs an empty Reference.
func NewReference[V any]() *Reference[V] {
	return &Reference[V]{values: make(map[string]V), live: set3.Empty[string]()}
}

// Insert records key/value, returning the previous value if key was
// already present, matching hot.Map.Insert's contract.
func (r *Reference[V]) Insert(key string, value V) (V, bool) {
	old, had := r.values[key]
	r.values[key] = value
	r.live.Add(key)
	return old, had
}

// Remove deletes key, returning its value if present.
func (r *Reference[V]) Remove(key string) (V, bool) {
	old, had := r.values[key]
	if had {
		delete(r.values, key)
		r.live.Remove(key)
	}
	return old, had
}

// Get returns the value stored for key, if any.
func (r *Reference[V]) Get(key string) (V, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Contains reports whether key is currently live, via the Set3 side index
// rather than the map itself, so tests can exercise both code paths.
func (r *Reference[V]) Contains(key string) bool {
	return r.live.Contains(key)
}

// Len reports the number of live entries.
func (r *Reference[V]) Len() int { return len(r.values) }

// SortedKeys returns every live key in ascending lexicographic order, the
// order any of this module's ordered-map implementations must also
// produce from their iterators.
func (r *Reference[V]) SortedKeys() []string {
	out := make([]string, 0, len(r.values))
	for k := range r.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Package hotsync wraps hot.Map in a sync.RWMutex so multiple goroutines
// can share one map safely, playing the same role the teacher's plain
// (unsynchronized) MultiMap leaves to its callers, made explicit here as
// its own thin layer instead of a constructor flag.
package hotsync

import (
	"sync"

	set3 "github.com/TomTonic/Set3"

	"github.com/hot-trie/hot"
)

// Facade guards a hot.Map[V] with a RWMutex and keeps a parallel Set3 of
// live keys (as strings) so ContainsKey can be answered without touching
// the trie at all under heavy concurrent read load.
type Facade[V any] struct {
	mu   sync.RWMutex
	m    *hot.Map[V]
	keys *set3.Set3[string]
}

// New constructs an empty, concurrency-safe facade.
func New[V any]() *Facade[V] {
	return &Facade[V]{m: hot.New[V](), keys: set3.Empty[string]()}
}

func (f *Facade[V]) Get(key []byte) (V, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.m.Get(key)
}

func (f *Facade[V]) ContainsKey(key []byte) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.keys.Contains(string(key))
}

func (f *Facade[V]) Insert(key []byte, value V) (V, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, had := f.m.Insert(key, value)
	if !had {
		f.keys.Add(string(key))
	}
	return old, had
}

func (f *Facade[V]) Remove(key []byte) (V, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, had := f.m.Remove(key)
	if had {
		f.keys.Remove(string(key))
	}
	return old, had
}

func (f *Facade[V]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.m.Len()
}

// Compact rebuilds the underlying map's key arena, exclusive of all
// readers and writers for the duration.
func (f *Facade[V]) Compact() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m.Compact()
}

// Snapshot returns every (key, value) pair as of the moment it's called,
// copied out while holding the read lock, so the caller can range over it
// without holding the facade open (hot.Map's own iterators are not safe
// to share across goroutines or to keep alive across an Insert/Remove).
func (f *Facade[V]) Snapshot() []KV[V] {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]KV[V], 0, f.m.Len())
	for k, v := range f.m.Iter() {
		out = append(out, KV[V]{Key: k, Value: v})
	}
	return out
}

// KV is one entry of a Snapshot.
type KV[V any] struct {
	Key   []byte
	Value V
}

package hot

// Map is an ordered byte-string-keyed map implemented as a Height-
// Optimized Trie. The zero value is not usable; construct one with New.
type Map[V any] struct {
	keys   *keyArena
	nodes  *nodeArena
	values *valueStore[V]
	root   ptr
	size   int

	// version increments on every structural mutation (Insert, Remove,
	// Compact) and is used to detect use of an iterator across a
	// mutation; see iter.go.
	version uint64
}

// New constructs an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{
		keys:   newKeyArena(),
		nodes:  newNodeArena(),
		values: newValueStore[V](),
		root:   nullPtr,
	}
}

// Len returns the number of live key/value pairs.
func (m *Map[V]) Len() int { return m.size }

// IsEmpty reports whether the map holds no entries.
func (m *Map[V]) IsEmpty() bool { return m.size == 0 }

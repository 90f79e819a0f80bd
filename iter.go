package hot

import (
	"bytes"
	"iter"
)

// Iter walks every entry in ascending key order.
func (m *Map[V]) Iter() iter.Seq2[[]byte, V] {
	return m.rangeIter(nil, nil, false)
}

// Range walks every entry with key >= lo and key <= hi, in ascending
// order. A nil lo or hi leaves that side unbounded.
func (m *Map[V]) Range(lo, hi []byte) iter.Seq2[[]byte, V] {
	return m.rangeIter(lo, hi, false)
}

// PrefixScan walks every entry whose key starts with prefix, in ascending
// order.
func (m *Map[V]) PrefixScan(prefix []byte) iter.Seq2[[]byte, V] {
	return m.rangeIter(prefix, nil, true)
}

// rangeIter performs a single recursive in-order descent of the trie,
// matching the teacher's plain synchronous traversal style rather than
// any generator/coroutine machinery: the walk is driven entirely by
// ordinary Go call-stack recursion, and Go's range-over-func iterators
// compile it into a plain callback-driven loop with no extra goroutine.
//
// Any structural mutation observed mid-walk (detected via the map's
// version counter) panics with errIteratorInvalidated rather than
// returning partial or corrupted results.
func (m *Map[V]) rangeIter(lo, hi []byte, isPrefix bool) iter.Seq2[[]byte, V] {
	return func(yield func([]byte, V) bool) {
		version := m.version
		var visit func(p ptr) bool
		visit = func(p ptr) bool {
			if m.version != version {
				panic(errIteratorInvalidated)
			}
			if p.isNull() {
				return true
			}
			if p.isLeaf() {
				off := p.offset()
				key := m.keys.keyAt(off)
				switch {
				case isPrefix:
					if !bytes.HasPrefix(key, lo) {
						return true
					}
				default:
					if lo != nil && bytes.Compare(key, lo) < 0 {
						return true
					}
					if hi != nil && bytes.Compare(key, hi) > 0 {
						return true
					}
				}
				val, ok := m.values.get(m.keys.slotAt(off))
				if !ok {
					return true
				}
				return yield(append([]byte(nil), key...), val)
			}
			view := m.nodes.viewOf(p.offset())
			for _, e := range view.entries {
				if !visit(e.child) {
					return false
				}
			}
			return true
		}
		visit(m.root)
	}
}

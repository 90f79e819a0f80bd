package hot

// MemoryUsage reports a breakdown of the map's approximate heap footprint
// across its three arenas, plus a derived bytes-per-live-key figure —
// the number spec.md's whole design exists to keep small.
type MemoryUsage struct {
	KeyBytes    uint64
	NodeBytes   uint64
	ValueBytes  uint64
	BytesPerKey float64
}

// MemoryUsage computes the current memory breakdown. It is O(1): every
// arena already tracks its own footprint incrementally.
func (m *Map[V]) MemoryUsage() MemoryUsage {
	u := MemoryUsage{
		KeyBytes:   m.keys.len(),
		NodeBytes:  m.nodes.bytes(),
		ValueBytes: m.values.bytes(),
	}
	if m.size > 0 {
		u.BytesPerKey = float64(u.KeyBytes+u.NodeBytes+u.ValueBytes) / float64(m.size)
	}
	return u
}

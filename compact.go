package hot

// Compact rebuilds the key arena to hold only live entries, tightly
// packed in ascending key order, reclaiming space left behind by removed
// keys. The node arena itself is not rebuilt — compound nodes are never
// freed individually (see nodearena.go) — but every leaf pointer
// reachable from the root is rewritten to the entry's new offset in a
// single sweep, per spec.md's "scans reachable leaves in-order, rebuilds
// the key arena, then a single pass over the node arena rewrites every
// live pointer" description.
func (m *Map[V]) Compact() {
	m.version++
	if m.root.isNull() {
		return
	}

	var live []uint64
	var walk func(p ptr)
	walk = func(p ptr) {
		if p.isNull() {
			return
		}
		if p.isLeaf() {
			live = append(live, p.offset())
			return
		}
		for _, e := range m.nodes.viewOf(p.offset()).entries {
			walk(e.child)
		}
	}
	walk(m.root)

	newKeys, remap := m.keys.compact(live)
	m.keys = newKeys

	if m.root.isLeaf() {
		m.root = leafPtr(remap[m.root.offset()])
	}

	for id := uint64(0); id < uint64(len(m.nodes.tags)); id++ {
		switch m.nodes.tag(id) {
		case tagTwo:
			if l := m.nodes.twoLeft(id); l.isLeaf() {
				if newOff, ok := remap[l.offset()]; ok {
					m.nodes.setTwoLeft(id, leafPtr(newOff))
				}
			}
			if r := m.nodes.twoRight(id); r.isLeaf() {
				if newOff, ok := remap[r.offset()]; ok {
					m.nodes.setTwoRight(id, leafPtr(newOff))
				}
			}
		case tagHot:
			n := m.nodes.hotEntryCount(id)
			for i := 0; i < n; i++ {
				if c := m.nodes.hotChild(id, i); c.isLeaf() {
					if newOff, ok := remap[c.offset()]; ok {
						m.nodes.setHotChild(id, i, leafPtr(newOff))
					}
				}
			}
		}
	}
}

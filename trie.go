package hot

// compoundView exposes a NODE_TWO_ENTRIES or NODE_HOT node through one
// shape: a mapping (the discriminative bit positions this node gathers;
// for TWO_ENTRIES, its single bit) and a sorted entry table (partial keys
// 0 and 1 for TWO_ENTRIES). TWO_ENTRIES is treated as the degenerate one-bit, two-entry
// case so insertion/removal only need one code path.
type compoundView struct {
	mapping []uint16
	entries []hotEntry
}

func (a *nodeArena) viewOf(id uint64) compoundView {
	if a.tag(id) == tagTwo {
		return compoundView{
			mapping: []uint16{a.twoBit(id)},
			entries: []hotEntry{
				{partialKey: 0, child: a.twoLeft(id)},
				{partialKey: 1, child: a.twoRight(id)},
			},
		}
	}
	return compoundView{mapping: a.hotMapping(id), entries: a.hotEntries(id)}
}

// searchEntriesSlice finds the entry with the largest partialKey <= proj,
// falling back to entries[0] when none qualifies (spec.md §4.4.1's
// "largest partial key <= projection" routing, which tolerates projections
// that don't exactly match any stored combination).
func searchEntriesSlice(entries []hotEntry, proj uint32) int {
	lo, hi, res := 0, len(entries)-1, 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if entries[mid].partialKey <= proj {
			res = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return res
}

func (m *Map[V]) ptrHeight(p ptr) uint8 {
	if p.isNode() {
		return m.nodes.height(p.offset())
	}
	return 0
}

func (m *Map[V]) computeHeight(entries []hotEntry) uint8 {
	var maxH uint8
	for _, e := range entries {
		if h := m.ptrHeight(e.child); h > maxH {
			maxH = h
		}
	}
	return maxH + 1
}

// routeChild descends one compound node by key, matching whatever the
// node's current mapping/entries say, without regard to whether key is
// actually present.
func (m *Map[V]) routeChild(id uint64, key []byte) ptr {
	switch m.nodes.tag(id) {
	case tagTwo:
		if bitAt(key, int(m.nodes.twoBit(id))) == 0 {
			return m.nodes.twoLeft(id)
		}
		return m.nodes.twoRight(id)
	case tagHot:
		mapping := m.nodes.hotMapping(id)
		idx := m.hotSearchArena(id, project(key, mapping))
		return m.nodes.hotChild(id, idx)
	default:
		fatalf(ErrInvariantViolated, "node %d has unknown tag", id)
		return nullPtr
	}
}

func (m *Map[V]) hotSearchArena(id uint64, proj uint32) int {
	n := m.nodes.hotEntryCount(id)
	lo, hi, res := 0, n-1, 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if m.nodes.hotPartialKey(id, mid) <= proj {
			res = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return res
}

// createLeaf allocates a value-store slot and a key-arena entry for key,
// returning the tagged leaf pointer.
func (m *Map[V]) createLeaf(key []byte, value V) ptr {
	slot := m.values.alloc(value)
	off := m.keys.store(key, slot)
	return leafPtr(off)
}

// Get looks up key, returning its value and whether it was present.
func (m *Map[V]) Get(key []byte) (V, bool) {
	p := m.root
	for p.isNode() {
		p = m.routeChild(p.offset(), key)
	}
	if !p.isLeaf() {
		var zero V
		return zero, false
	}
	off := p.offset()
	if !bytesEqual(m.keys.keyAt(off), key) {
		var zero V
		return zero, false
	}
	return m.values.get(m.keys.slotAt(off))
}

// ContainsKey reports whether key is present. It performs the same lookup
// as Get and discards the value.
func (m *Map[V]) ContainsKey(key []byte) bool {
	_, ok := m.Get(key)
	return ok
}

// Insert associates value with key, returning the previous value (if any)
// and whether key was already present.
func (m *Map[V]) Insert(key []byte, value V) (V, bool) {
	m.version++
	if m.root.isNull() {
		m.root = m.createLeaf(key, value)
		m.size++
		var zero V
		return zero, false
	}
	if m.root.isLeaf() {
		newRoot, old, had, changed := m.insertAtLeaf(m.root, key, value)
		if changed {
			m.root = newRoot
			if !had {
				m.size++
			}
		}
		return old, had
	}
	newRoot, old, had, changed := m.insertIntoCompound(m.root.offset(), key, value)
	if changed {
		m.root = newRoot
	}
	if !had {
		m.size++
	}
	return old, had
}

// insertAtLeaf handles the case where the entire tree (or a freshly
// reached single-leaf subtree reference, in practice only the root) is
// one leaf.
func (m *Map[V]) insertAtLeaf(p ptr, key []byte, value V) (ptr, V, bool, bool) {
	off := p.offset()
	existing := m.keys.keyAt(off)
	if bytesEqual(existing, key) {
		slot := m.keys.slotAt(off)
		old, _ := m.values.get(slot)
		m.values.set(slot, value)
		return p, old, true, false
	}
	d, ok := firstDiffBit(existing, key)
	if !ok {
		fatal(ErrInvariantViolated, "key equals an existing key by content but not by bytesEqual")
	}
	newLeaf := m.createLeaf(key, value)
	var left, right ptr
	if bitAt(existing, d) == 0 {
		left, right = p, newLeaf
	} else {
		left, right = newLeaf, p
	}
	id := m.nodes.allocTwo(uint16(d), left, right)
	m.nodes.setHeight(id, 1)
	var zero V
	return nodePtr(id), zero, false, true
}

// insertIntoCompound inserts key into the subtree rooted at the compound
// node id, returning the pointer that should replace id in whoever holds
// it (identical to id's own nodePtr when changed is false, meaning the
// node was mutated in place and no pointer rewrite is needed upstream).
func (m *Map[V]) insertIntoCompound(id uint64, key []byte, value V) (ptr, V, bool, bool) {
	view := m.nodes.viewOf(id)
	idx := searchEntriesSlice(view.entries, project(key, view.mapping))
	child := view.entries[idx].child

	if child.isLeaf() {
		off := child.offset()
		existing := m.keys.keyAt(off)
		if bytesEqual(existing, key) {
			slot := m.keys.slotAt(off)
			old, _ := m.values.get(slot)
			m.values.set(slot, value)
			return nodePtr(id), old, true, false
		}
		d, ok := firstDiffBit(existing, key)
		if !ok {
			fatal(ErrInvariantViolated, "key equals an existing key by content but not by bytesEqual")
		}
		newLeaf := m.createLeaf(key, value)
		newID := m.growOrSplit(id, view, idx, child, existing, d, key, newLeaf)
		var zero V
		return nodePtr(newID), zero, false, true
	}

	if child.isNull() {
		fatal(ErrInvariantViolated, "compound node entry has a null child")
	}
	newChild, old, had, changed := m.insertIntoCompound(child.offset(), key, value)
	if !changed {
		return nodePtr(id), old, had, false
	}
	m.setEntryChild(id, idx, newChild)
	m.fixHeight(id)
	return nodePtr(id), old, had, false
}

func (m *Map[V]) setEntryChild(id uint64, idx int, p ptr) {
	if m.nodes.tag(id) == tagTwo {
		if idx == 0 {
			m.nodes.setTwoLeft(id, p)
		} else {
			m.nodes.setTwoRight(id, p)
		}
		return
	}
	m.nodes.setHotChild(id, idx, p)
}

func (m *Map[V]) fixHeight(id uint64) {
	view := m.nodes.viewOf(id)
	m.nodes.setHeight(id, m.computeHeight(view.entries))
}

// growOrSplit decides how to absorb a new leaf that conflicts with the
// leaf at view.entries[idx], which differs from the new key at bit d.
// Per spec.md's Open Question iii, the split policy is implementation
// defined as long as §3's invariants hold (in particular the "projection
// monotonicity" property in §8: a node's entries, read in table order,
// must agree with the true lexicographic order of their descendant keys).
// This always produces a valid tree, and additionally folds the new leaf
// into the existing compound node (rather than nesting a new
// NODE_TWO_ENTRIES) whenever that's safe:
//
//   - if d is already one of the node's mapping bits, the new leaf simply
//     needs a new row in the existing entry table (the combination of bits
//     it represents was never populated before);
//   - else, if every existing entry is itself a leaf, the mapping can be
//     widened to include d (and, if needed, further bits — see
//     buildConsistentMapping) since every entry's partial key can be
//     recomputed exactly from its real key bytes;
//   - else, if d is no more significant than every bit the node's mapping
//     already uses (d >= mapping[0], mapping kept sorted ascending by bit
//     position), it's safe to nest just the conflicting leaf in a fresh
//     NODE_TWO_ENTRIES spliced into view.entries[idx]'s child slot,
//     leaving the rest of the node untouched: mapping[0] being the node's
//     most significant routing bit means d cannot affect which bucket any
//     *other* entry belongs to;
//   - otherwise, d is strictly more significant than every bit this node
//     currently routes on (d < mapping[0]). Because the node's mapping is
//     only ever widened with bits that are actually needed to keep entries
//     distinguishable (buildConsistentMapping), every entry already in the
//     node is guaranteed to agree with every other entry on all bits more
//     significant than mapping[0] — so the new key necessarily disagrees
//     with the *entire* node at bit d, not merely with the one entry it
//     happened to route to under the old (now too-coarse) mapping.
//     Nesting locally here would place the new leaf next to one entry's
//     subtree while leaving it lexicographically out of order with the
//     node's other entries. Instead, the whole existing node is kept
//     intact and wrapped whole under a fresh NODE_TWO_ENTRIES keyed on d,
//     alongside the new leaf.
func (m *Map[V]) growOrSplit(id uint64, view compoundView, idx int, leafPtr ptr, leafKey []byte, d int, newKey []byte, newLeaf ptr) uint64 {
	mapping := view.mapping
	entries := view.entries

	if containsU16(mapping, uint16(d)) {
		if len(entries)+1 <= maxCompoundEntries {
			pk := project(newKey, mapping)
			newEntries := insertSortedEntry(cloneEntries(entries), hotEntry{partialKey: pk, child: newLeaf})
			return m.finishCompound(mapping, newEntries)
		}
	} else if len(mapping) < bitsPerCompound {
		allLeaves := true
		for _, e := range entries {
			if e.child.isNode() {
				allLeaves = false
				break
			}
		}
		if allLeaves {
			leaves := make([]leafKV, 0, len(entries)+1)
			for _, e := range entries {
				leaves = append(leaves, leafKV{key: m.keys.keyAt(e.child.offset()), child: e.child})
			}
			leaves = append(leaves, leafKV{key: newKey, child: newLeaf})
			if newMapping, newEntries, ok := buildConsistentMapping(mapping, leaves); ok && len(newEntries) <= maxCompoundEntries {
				return m.finishCompound(newMapping, newEntries)
			}
		}
	}

	if d < int(mapping[0]) {
		// d is more significant than this node's entire mapping: every
		// entry in the node agrees with leafKey at bit d, so the new key
		// must be separated from the node as a whole, not just from the
		// one entry it happened to route to.
		var left, right ptr
		whole := nodePtr(id)
		if bitAt(leafKey, d) == 0 {
			left, right = whole, newLeaf
		} else {
			left, right = newLeaf, whole
		}
		wrapID := m.nodes.allocTwo(uint16(d), left, right)
		m.nodes.setHeight(wrapID, m.nodes.height(id)+1)
		return wrapID
	}

	// d is no more significant than mapping[0]: nesting just the
	// conflicting leaf cannot disturb any other entry's bucket.
	var left, right ptr
	if bitAt(leafKey, d) == 0 {
		left, right = leafPtr, newLeaf
	} else {
		left, right = newLeaf, leafPtr
	}
	wrapID := m.nodes.allocTwo(uint16(d), left, right)
	m.nodes.setHeight(wrapID, 1)

	newEntries := cloneEntries(entries)
	newEntries[idx].child = nodePtr(wrapID)
	return m.finishCompound(mapping, newEntries)
}

// finishCompound allocates the smallest adequate on-arena encoding for
// mapping/entries, preferring the compact NODE_TWO_ENTRIES layout when the
// result only needs one bit and two children.
func (m *Map[V]) finishCompound(mapping []uint16, entries []hotEntry) uint64 {
	var id uint64
	if len(mapping) == 1 && len(entries) == 2 {
		id = m.nodes.allocTwo(mapping[0], entries[0].child, entries[1].child)
	} else {
		id = m.nodes.allocHot(mapping, entries)
	}
	m.nodes.setHeight(id, m.computeHeight(entries))
	return id
}

// Remove deletes key, returning its value and whether it was present.
func (m *Map[V]) Remove(key []byte) (V, bool) {
	m.version++
	if m.root.isNull() {
		var zero V
		return zero, false
	}
	if m.root.isLeaf() {
		off := m.root.offset()
		if !bytesEqual(m.keys.keyAt(off), key) {
			var zero V
			return zero, false
		}
		slot := m.keys.slotAt(off)
		old, _ := m.values.get(slot)
		m.values.clear(slot)
		m.root = nullPtr
		m.size--
		return old, true
	}
	newRoot, old, removed := m.removeFromNode(m.root.offset(), key)
	if !removed {
		var zero V
		return zero, false
	}
	m.root = newRoot
	m.size--
	return old, true
}

// removeFromNode deletes key from the subtree rooted at node id. On
// success it returns a valid, non-null pointer: either the surviving
// sibling (when removal collapses id down to one entry) or a freshly
// rebuilt node (a removal anywhere below id also re-encodes id). When key
// is absent it returns id unchanged and false.
func (m *Map[V]) removeFromNode(id uint64, key []byte) (ptr, V, bool) {
	view := m.nodes.viewOf(id)
	idx := searchEntriesSlice(view.entries, project(key, view.mapping))
	child := view.entries[idx].child

	if child.isLeaf() {
		off := child.offset()
		if !bytesEqual(m.keys.keyAt(off), key) {
			var zero V
			return nodePtr(id), zero, false
		}
		slot := m.keys.slotAt(off)
		old, _ := m.values.get(slot)
		m.values.clear(slot)
		newEntries := removeEntryAt(view.entries, idx)
		return m.rebuildAfterRemove(view.mapping, newEntries), old, true
	}

	if child.isNull() {
		fatal(ErrInvariantViolated, "compound node entry has a null child")
	}
	newChild, old, removed := m.removeFromNode(child.offset(), key)
	if !removed {
		return nodePtr(id), old, false
	}
	newEntries := cloneEntries(view.entries)
	newEntries[idx].child = newChild
	return m.rebuildAfterRemove(view.mapping, newEntries), old, true
}

// rebuildAfterRemove re-encodes a node's entry table after a child was
// removed or replaced, collapsing a singleton straight to its sole
// surviving child and shrinking the mapping when a bit position no
// longer distinguishes anything (spec.md §4.4.3).
func (m *Map[V]) rebuildAfterRemove(mapping []uint16, entries []hotEntry) ptr {
	if len(entries) == 1 {
		return entries[0].child
	}
	mapping, entries = shrinkMapping(mapping, entries)
	return nodePtr(m.finishCompound(mapping, entries))
}

// shrinkMapping drops any mapping bit position that no longer
// distinguishes any pair of surviving entries, repacking partial keys
// accordingly. Repeats until no more bits are redundant (removing one
// leaf can make more than one bit redundant if it was the sole source of
// two separate splits, though in practice at most one).
func shrinkMapping(mapping []uint16, entries []hotEntry) ([]uint16, []hotEntry) {
	for len(mapping) > 1 {
		nb := len(mapping)
		removeIdx := -1
		for j := 0; j < nb; j++ {
			bitPos := uint(nb - 1 - j)
			first := (entries[0].partialKey >> bitPos) & 1
			allSame := true
			for _, e := range entries[1:] {
				if (e.partialKey>>bitPos)&1 != first {
					allSame = false
					break
				}
			}
			if allSame {
				removeIdx = j
				break
			}
		}
		if removeIdx < 0 {
			break
		}
		newMapping := make([]uint16, 0, nb-1)
		newMapping = append(newMapping, mapping[:removeIdx]...)
		newMapping = append(newMapping, mapping[removeIdx+1:]...)
		newEntries := make([]hotEntry, len(entries))
		for i, e := range entries {
			newEntries[i] = hotEntry{partialKey: repack(e.partialKey, nb, removeIdx), child: e.child}
		}
		mapping, entries = newMapping, newEntries
	}
	return mapping, entries
}

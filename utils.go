package hot

import "sort"

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// bitAt returns the bit at global bit position pos (byte pos/8, MSB-first
// bit 7-pos%8). Reads past the end of key return 0, matching spec.md §4.4.
func bitAt(key []byte, pos int) byte {
	byteIdx := pos / 8
	if byteIdx >= len(key) {
		return 0
	}
	shift := uint(7 - pos%8)
	return (key[byteIdx] >> shift) & 1
}

// firstDiffBit returns the lowest bit position at which a and b differ, or
// ok=false if there is none. The shorter input is read as if zero-extended
// (as bitAt reads past a key's end), so two keys that differ only by
// trailing 0x00 bytes also report ok=false. Byte-wise XOR + leading-zero
// count, per spec.md §4.4's recommendation.
func firstDiffBit(a, b []byte) (pos int, ok bool) {
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	for i := 0; i < max; i++ {
		var ab, bb byte
		if i < len(a) {
			ab = a[i]
		}
		if i < len(b) {
			bb = b[i]
		}
		if ab != bb {
			xor := ab ^ bb
			lead := leadingZeros8(xor)
			return i*8 + lead, true
		}
	}
	return 0, false
}

func leadingZeros8(x byte) int {
	n := 0
	for shift := 7; shift >= 0; shift-- {
		if (x>>uint(shift))&1 != 0 {
			break
		}
		n++
	}
	return n
}

// project gathers the bits of key at the positions listed in mapping, in
// order, MSB-first, into a right-aligned integer. Undefined bits (past key
// end) are 0.
func project(key []byte, mapping []uint16) uint32 {
	var v uint32
	for _, pos := range mapping {
		v = (v << 1) | uint32(bitAt(key, int(pos)))
	}
	return v
}

func containsU16(s []uint16, v uint16) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func sortU16(s []uint16) {
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
}

func cloneEntries(e []hotEntry) []hotEntry {
	out := make([]hotEntry, len(e))
	copy(out, e)
	return out
}

func removeEntryAt(entries []hotEntry, idx int) []hotEntry {
	out := make([]hotEntry, 0, len(entries)-1)
	out = append(out, entries[:idx]...)
	out = append(out, entries[idx+1:]...)
	return out
}

// insertSortedEntry inserts e into entries (already sorted ascending by
// partialKey) at its correct position.
func insertSortedEntry(entries []hotEntry, e hotEntry) []hotEntry {
	i := sort.Search(len(entries), func(i int) bool { return entries[i].partialKey >= e.partialKey })
	out := make([]hotEntry, len(entries)+1)
	copy(out, entries[:i])
	out[i] = e
	copy(out[i+1:], entries[i:])
	return out
}

// repack drops the bit at mapping-index removeIdx from an nb-bit
// MSB-first-packed value, re-packing the remaining bits in order.
func repack(pk uint32, nb, removeIdx int) uint32 {
	var out uint32
	for j := 0; j < nb; j++ {
		if j == removeIdx {
			continue
		}
		bit := (pk >> uint(nb-1-j)) & 1
		out = (out << 1) | bit
	}
	return out
}

type leafKV struct {
	key   []byte
	child ptr
}

// buildConsistentMapping extends an initial candidate set of mapping bits,
// one bit at a time, until sorting the given leaves by partial key under
// the mapping exactly matches sorting them by their real key bytes. This
// is what lets NODE_HOT's entry order double as ascending key order for
// iteration, without having to special-case "which bits matter" up front —
// it discovers them from the actual first-differing bit of whichever
// adjacent pair (in true key order) the current mapping fails to
// distinguish. Returns ok=false if bitsPerCompound is exhausted first.
func buildConsistentMapping(initial []uint16, leaves []leafKV) (mapping []uint16, entries []hotEntry, ok bool) {
	mapping = append([]uint16{}, initial...)
	sortU16(mapping)
	sort.Slice(leaves, func(i, j int) bool {
		return compareBytes(leaves[i].key, leaves[j].key) < 0
	})

	for {
		entries = make([]hotEntry, len(leaves))
		for i, l := range leaves {
			entries[i] = hotEntry{partialKey: project(l.key, mapping), child: l.child}
		}
		consistent := true
		for i := 1; i < len(entries); i++ {
			if entries[i-1].partialKey >= entries[i].partialKey {
				consistent = false
				d, has := firstDiffBit(leaves[i-1].key, leaves[i].key)
				if !has {
					fatal(ErrInvariantViolated, "two distinct leaves compare equal as byte strings")
				}
				if containsU16(mapping, uint16(d)) {
					fatal(ErrInvariantViolated, "mapping already contains the discriminative bit but entries remain inconsistently ordered")
				}
				if len(mapping) >= bitsPerCompound {
					return nil, nil, false
				}
				mapping = append(mapping, uint16(d))
				sortU16(mapping)
				break
			}
		}
		if consistent {
			return mapping, entries, true
		}
	}
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

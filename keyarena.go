package hot

import "encoding/binary"

// keyArena is the append-only byte buffer holding every inserted key
// exactly once. A leaf offset is the byte position of an entry's length
// prefix. Entries never carry value bytes inline (see valuestore.go for
// why); the wire shape is the spec's ZST layout unconditionally:
//
//	[len:u16 LE][len bytes of key][slot:u32 LE]
//
// slot indexes into the side value store. For a genuinely zero-sized V,
// storing a slot is wasted space per spec's letter, but it costs four
// bytes out of a ~10-14 byte/key budget and buys every value type the
// same safe, GC-correct storage path (see DESIGN.md).
type keyArena struct {
	buf []byte
}

const (
	keyLenSize  = 2
	keySlotSize = 4
)

func newKeyArena() *keyArena {
	return &keyArena{buf: make([]byte, 0, 64)}
}

// store appends [len][key][slot] and returns the new entry's leaf offset.
func (a *keyArena) store(key []byte, slot uint32) uint64 {
	off := uint64(len(a.buf))
	need := uint64(keyLenSize+keySlotSize) + uint64(len(key))
	if off > maxOffset-need {
		fatalf(ErrArenaOverflow, "key arena would exceed 47-bit (128TiB) addressable space")
	}
	if len(key) > 0xFFFF {
		fatalf(ErrArenaOverflow, "key length %d exceeds 16-bit length field", len(key))
	}

	var lenBuf [keyLenSize]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(key)))
	a.buf = append(a.buf, lenBuf[:]...)
	a.buf = append(a.buf, key...)

	var slotBuf [keySlotSize]byte
	binary.LittleEndian.PutUint32(slotBuf[:], slot)
	a.buf = append(a.buf, slotBuf[:]...)

	return off
}

// keyAt returns the stored key bytes for the entry at off. The slice
// aliases the arena's backing buffer and is only valid until the next
// mutating call (store or compact), per the package's no-retained-slice
// contract.
func (a *keyArena) keyAt(off uint64) []byte {
	o := int(off)
	klen := binary.LittleEndian.Uint16(a.buf[o : o+keyLenSize])
	start := o + keyLenSize
	return a.buf[start : start+int(klen)]
}

func (a *keyArena) slotAt(off uint64) uint32 {
	o := int(off)
	klen := binary.LittleEndian.Uint16(a.buf[o : o+keyLenSize])
	slotOff := o + keyLenSize + int(klen)
	return binary.LittleEndian.Uint32(a.buf[slotOff : slotOff+keySlotSize])
}

func (a *keyArena) entrySize(off uint64) uint64 {
	o := int(off)
	klen := binary.LittleEndian.Uint16(a.buf[o : o+keyLenSize])
	return uint64(keyLenSize+keySlotSize) + uint64(klen)
}

func (a *keyArena) len() uint64 { return uint64(len(a.buf)) }
func (a *keyArena) cap() uint64 { return uint64(cap(a.buf)) }

// compact copies the entries named by liveOffsets (in the order given,
// which callers must supply in ascending key order for Iter() to stay
// sorted) into a fresh arena, returning the new arena plus an old->new
// offset remap.
func (a *keyArena) compact(liveOffsets []uint64) (*keyArena, map[uint64]uint64) {
	fresh := newKeyArena()
	remap := make(map[uint64]uint64, len(liveOffsets))
	for _, off := range liveOffsets {
		size := a.entrySize(off)
		newOff := uint64(len(fresh.buf))
		fresh.buf = append(fresh.buf, a.buf[off:off+size]...)
		remap[off] = newOff
	}
	return fresh, remap
}

// Package hotkey builds order-preserving []byte keys for use with
// hot.Map, so that lexicographic byte comparison (and therefore a Map's
// iteration order) matches the natural ordering of the original value.
//
// Every integer encoder writes an 8-byte big-endian representation
// offset by 1<<63 (modulo 2^64): signed and unsigned integers of any width
// share one key space, so values built from different source widths
// compare equal when their numeric value is (FromInt32(x) produces the
// same key as FromInt64(x) for the same x), and byte order matches numeric
// order for every value in the int64 range. Unsigned values of 1<<63 or
// more wrap around onto the keys of negative values (FromUint64(1<<63)
// equals FromInt64(math.MinInt64)).
package hotkey

import (
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const offset = uint64(1) << 63

// FromBytes returns a defensive copy of b as a key.
func FromBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// FromString returns the UTF-8 encoding of s after normalizing to
// Unicode NFC, so that canonically-equivalent strings produce the same
// key.
func FromString(s string) []byte {
	return []byte(norm.NFC.String(s))
}

func putInt64(i int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(i)+offset)
	return b[:]
}

func putUint64(u uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], u+offset)
	return b[:]
}

// FromInt64 encodes i as an order-preserving 8-byte key.
func FromInt64(i int64) []byte { return putInt64(i) }

// FromInt encodes i as an order-preserving 8-byte key.
func FromInt(i int) []byte { return putInt64(int64(i)) }

// FromInt32 encodes i as an order-preserving 8-byte key.
func FromInt32(i int32) []byte { return putInt64(int64(i)) }

// FromInt16 encodes i as an order-preserving 8-byte key.
func FromInt16(i int16) []byte { return putInt64(int64(i)) }

// FromInt8 encodes i as an order-preserving 8-byte key.
func FromInt8(i int8) []byte { return putInt64(int64(i)) }

// FromUint64 encodes u as an 8-byte key; the order is preserved for
// u < 1<<63 (see the package doc).
func FromUint64(u uint64) []byte { return putUint64(u) }

// FromUint encodes u as an 8-byte key; the order is preserved for
// u < 1<<63 (see the package doc).
func FromUint(u uint) []byte { return putUint64(uint64(u)) }

// FromUint32 encodes u as an order-preserving 8-byte key.
func FromUint32(u uint32) []byte { return putUint64(uint64(u)) }

// FromUint16 encodes u as an order-preserving 8-byte key.
func FromUint16(u uint16) []byte { return putUint64(uint64(u)) }

// FromUint8 encodes u as an order-preserving 8-byte key.
func FromUint8(u uint8) []byte { return putUint64(uint64(u)) }

// FromByte is an alias for FromUint8.
func FromByte(b byte) []byte { return FromUint8(b) }

// FromRune returns the UTF-8 encoding of r.
func FromRune(r rune) []byte {
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, r)
	return buf[:n]
}

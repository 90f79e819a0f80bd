package hotkey

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestFromBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	k := FromBytes(src)
	src[0] = 9
	if bytes.Equal(k, src) {
		t.Fatalf("FromBytes did not copy input: got %v, want original unaffected %v", k, src)
	}
}

func TestFromStringNormalization(t *testing.T) {
	// 'ä' can be U+00E4 or 'a' + U+0308; both must produce the same key
	// so that byte-equal keys mean canonically-equal strings.
	precomposed := "ä"
	decomposed := "ä"
	p := FromString(precomposed)
	d := FromString(decomposed)
	if !bytes.Equal(p, d) {
		t.Fatalf("normalization mismatch: %v vs %v", p, d)
	}
}

func TestIntRoundTrip(t *testing.T) {
	const offset = uint64(1) << 63

	v32 := int32(0x01020304)
	k32 := FromInt32(v32)
	if len(k32) != 8 {
		t.Fatalf("FromInt32 should produce 8 bytes, got %d", len(k32))
	}
	got32 := int32(int64(binary.BigEndian.Uint64(k32) - offset))
	if got32 != v32 {
		t.Fatalf("round-trip int32 mismatch: got=%#x want=%#x", got32, v32)
	}

	v64 := int64(0x0102030405060708)
	k64 := FromInt64(v64)
	got64 := int64(binary.BigEndian.Uint64(k64) - offset)
	if got64 != v64 {
		t.Fatalf("round-trip int64 mismatch: got=%#x want=%#x", got64, v64)
	}
}

func TestIntOrderingMatchesNumericOrdering(t *testing.T) {
	values := []int64{-1 << 40, -1000, -1, 0, 1, 1000, 1 << 40}
	for i := 1; i < len(values); i++ {
		lo, hi := FromInt64(values[i-1]), FromInt64(values[i])
		if bytes.Compare(lo, hi) >= 0 {
			t.Fatalf("expected FromInt64(%d) < FromInt64(%d) lexicographically", values[i-1], values[i])
		}
	}
}

func TestCrossWidthEquivalence(t *testing.T) {
	if !bytes.Equal(FromInt32(42), FromInt64(42)) {
		t.Fatalf("FromInt32(42) should equal FromInt64(42)")
	}
	if !bytes.Equal(FromUint8(7), FromUint64(7)) {
		t.Fatalf("FromUint8(7) should equal FromUint64(7)")
	}
}

func TestFromRune(t *testing.T) {
	got := FromRune('€')
	want := []byte("€")
	if !bytes.Equal(got, want) {
		t.Fatalf("FromRune('€') = %v, want %v", got, want)
	}
}

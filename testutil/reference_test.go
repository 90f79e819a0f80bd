package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceInsertGetRemove(t *testing.T) {
	r := NewReference[int]()
	_, ok := r.Get("a")
	require.False(t, ok)

	old, had := r.Insert("a", 1)
	require.False(t, had)
	require.Equal(t, 0, old)
	require.True(t, r.Contains("a"))

	old, had = r.Insert("a", 2)
	require.True(t, had)
	require.Equal(t, 1, old)

	v, ok := r.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v)

	old, had = r.Remove("a")
	require.True(t, had)
	require.Equal(t, 2, old)
	require.False(t, r.Contains("a"))
	require.Equal(t, 0, r.Len())
}

func TestSequentialAndHashShuffledAreSamePermutedSet(t *testing.T) {
	seq := SequentialKeys(50)
	shuffled := HashShuffled(seq, 17)
	require.Len(t, shuffled, len(seq))

	seen := make(map[string]bool, len(seq))
	for _, k := range shuffled {
		seen[k] = true
	}
	for _, k := range seq {
		require.True(t, seen[k], "missing key %q after shuffle", k)
	}
}

func TestHashShuffledDeterministic(t *testing.T) {
	seq := SequentialKeys(30)
	a := HashShuffled(seq, 9)
	b := HashShuffled(seq, 9)
	require.Equal(t, a, b)
}

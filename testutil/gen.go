package testutil

import (
	"fmt"
	"math/rand/v2"

	"github.com/dolthub/maphash"
)

// SequentialKeys returns n keys of the form "key-00000".."key-NNNNN", in
// ascending order.
func SequentialKeys(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("key-%05d", i)
	}
	return out
}

// HashShuffled returns a shuffled copy of keys: deterministic for a given
// seed, but decorrelated from keys' original order, the "insert in
// hash-shuffled order" scenario property tests exercise to avoid
// accidentally-sorted insertion sequences masking bugs that only show up
// with out-of-order structural splits. The order comes only from a
// math/rand/v2 PCG shuffle seeded from seed; the per-key maphash scores
// (from a randomly seeded hasher) are computed but do not affect it.
func HashShuffled(keys []string, seed uint64) []string {
	hasher := maphash.NewHasher[string]()
	hasher = maphash.NewSeed(hasher)
	type scored struct {
		key   string
		score uint64
	}
	scored1 := make([]scored, len(keys))
	for i, k := range keys {
		scored1[i] = scored{key: k, score: hasher.Hash(k) ^ seed}
	}
	rand.New(rand.NewPCG(seed, seed^0xabcdef)).Shuffle(len(scored1), func(i, j int) {
		scored1[i], scored1[j] = scored1[j], scored1[i]
	})
	out := make([]string, len(scored1))
	for i, s := range scored1 {
		out[i] = s.key
	}
	return out
}

// Command hotbench inserts the same shuffled key set into hot.Map,
// hotbtree and hotglory, and builds hotfront from those keys in sorted
// order (a front-coded index only accepts sorted input). It prints each
// structure's key count plus the memory figures it reports (hotbtree
// reports none), the way the original source's memory_breakdown.rs and
// honest_comparison.rs examples do.
package main

import (
	"flag"
	"fmt"

	"github.com/hot-trie/hot"
	"github.com/hot-trie/hot/hotbtree"
	"github.com/hot-trie/hot/hotfront"
	"github.com/hot-trie/hot/hotglory"
	"github.com/hot-trie/hot/internal/diag"
	"github.com/hot-trie/hot/testutil"
)

func main() {
	n := flag.Int("keys", 100000, "number of keys to insert")
	seed := flag.Uint64("seed", 1, "shuffle seed")
	flag.Parse()

	keys := testutil.HashShuffled(testutil.SequentialKeys(*n), *seed)

	diag.Progress("benchmarking hot.Map", "keys", *n)
	m := hot.New[int]()
	for i, k := range keys {
		m.Insert([]byte(k), i)
	}
	stats := m.MemoryUsage()
	fmt.Printf("hot.Map:      keys=%d nodeBytes=%d keyBytes=%d valueBytes=%d bytesPerKey=%.2f\n",
		m.Len(), stats.NodeBytes, stats.KeyBytes, stats.ValueBytes, stats.BytesPerKey)

	diag.Progress("benchmarking hotbtree.Tree")
	bt := hotbtree.New[int]()
	for i, k := range keys {
		bt.Insert([]byte(k), i)
	}
	fmt.Printf("hotbtree.Tree: keys=%d\n", bt.Len())

	diag.Progress("benchmarking hotglory.Store")
	gs := hotglory.New[int]()
	for i, k := range keys {
		gs.Insert([]byte(k), i)
	}
	gstats := gs.MemoryUsage()
	fmt.Printf("hotglory.Store: keys=%d totalBytes=%d overheadBytes=%d\n",
		gs.Len(), gstats.TotalBytes, gstats.OverheadBytes)

	diag.Progress("benchmarking hotfront.Index")
	sortedKeys := testutil.SequentialKeys(*n)
	builder := hotfront.NewBuilder[int]()
	for i, k := range sortedKeys {
		builder.Add([]byte(k), i)
	}
	fc := builder.Build()
	fmt.Printf("hotfront.Index: keys=%d totalBytes=%d\n", fc.Len(), fc.MemoryUsage())
}

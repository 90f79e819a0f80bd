package hotsync

import (
	"sync"
	"testing"

	"github.com/hot-trie/hot/testutil"
)

func TestFacadeBasicOps(t *testing.T) {
	f := New[int]()
	if f.Len() != 0 {
		t.Fatalf("new facade should be empty")
	}
	old, had := f.Insert([]byte("k"), 1)
	if had {
		t.Fatalf("first insert should report had=false, got old=%d", old)
	}
	if !f.ContainsKey([]byte("k")) {
		t.Fatalf("ContainsKey(k) should be true after insert")
	}
	v, ok := f.Get([]byte("k"))
	if !ok || v != 1 {
		t.Fatalf("Get(k) = %v,%v want 1,true", v, ok)
	}
	old, had = f.Remove([]byte("k"))
	if !had || old != 1 {
		t.Fatalf("Remove(k) = %v,%v want 1,true", old, had)
	}
	if f.ContainsKey([]byte("k")) {
		t.Fatalf("ContainsKey(k) should be false after remove")
	}
}

func TestFacadeSnapshotIsIndependentOfLiveMap(t *testing.T) {
	f := New[int]()
	for i, k := range testutil.SequentialKeys(10) {
		f.Insert([]byte(k), i)
	}
	snap := f.Snapshot()
	if len(snap) != 10 {
		t.Fatalf("Snapshot() len = %d want 10", len(snap))
	}
	f.Insert([]byte("key-99999"), 99)
	if len(snap) != 10 {
		t.Fatalf("prior Snapshot() mutated by later Insert: len = %d want 10", len(snap))
	}
}

// TestFacadeConcurrentAccess exercises the RWMutex under concurrent
// readers and a single writer goroutine; the race detector (not run here,
// but intended for `go test -race`) is the real judge of this test.
func TestFacadeConcurrentAccess(t *testing.T) {
	f := New[int]()
	keys := testutil.SequentialKeys(200)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i, k := range keys {
			f.Insert([]byte(k), i)
		}
	}()

	for i := 0; i < 50; i++ {
		f.Len()
		f.ContainsKey([]byte(keys[0]))
	}
	wg.Wait()

	if f.Len() != len(keys) {
		t.Fatalf("Len() = %d want %d", f.Len(), len(keys))
	}
}

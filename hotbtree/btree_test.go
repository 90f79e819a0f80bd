package hotbtree

import (
	"bytes"
	"testing"

	"github.com/hot-trie/hot/testutil"
)

func TestInsertGetRemove(t *testing.T) {
	tr := New[int]()
	if _, ok := tr.Get([]byte("x")); ok {
		t.Fatalf("empty tree should miss")
	}
	old, had := tr.Insert([]byte("b"), 2)
	if had {
		t.Fatalf("first insert should report had=false, got old=%d", old)
	}
	old, had = tr.Insert([]byte("b"), 20)
	if !had || old != 2 {
		t.Fatalf("overwrite got old=%d had=%v, want 2,true", old, had)
	}
	if v, ok := tr.Get([]byte("b")); !ok || v != 20 {
		t.Fatalf("Get(b) = %v,%v want 20,true", v, ok)
	}
	if _, ok := tr.Remove([]byte("b")); !ok {
		t.Fatalf("Remove(b) should hit")
	}
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d want 0", tr.Len())
	}
}

func TestKeysAscending(t *testing.T) {
	tr := New[int]()
	keys := testutil.HashShuffled(testutil.SequentialKeys(500), 7)
	for i, k := range keys {
		tr.Insert([]byte(k), i)
	}
	got := tr.Keys()
	for i := 1; i < len(got); i++ {
		if bytes.Compare(got[i-1], got[i]) >= 0 {
			t.Fatalf("Keys() not strictly ascending at %d: %q then %q", i, got[i-1], got[i])
		}
	}
	if len(got) != 500 {
		t.Fatalf("Keys() len = %d want 500", len(got))
	}
}

func TestRange(t *testing.T) {
	tr := New[int]()
	for i, k := range testutil.SequentialKeys(20) {
		tr.Insert([]byte(k), i)
	}
	var got []string
	tr.Range([]byte("key-00005"), []byte("key-00010"), func(key []byte, v int) bool {
		got = append(got, string(key))
		return true
	})
	if len(got) != 5 {
		t.Fatalf("Range produced %d keys, want 5: %v", len(got), got)
	}
}

func TestBalanced(t *testing.T) {
	tr := New[int]()
	keys := testutil.SequentialKeys(2000)
	for i, k := range keys {
		tr.Insert([]byte(k), i)
	}
	if height(tr.root) > 2*14 {
		t.Fatalf("tree height %d looks unbalanced for %d keys", height(tr.root), len(keys))
	}
}

// Package hot implements a memory-efficient, in-memory ordered map from
// byte-string keys to generic values, backed by a Height-Optimized Trie
// (HOT): keys are stored once in a contiguous byte arena, the tree is
// encoded as 48-bit tagged pointers into a byte-packed node arena, and
// compound nodes collapse many trie levels into a single sparse branching
// step to keep the tree shallow and the per-key overhead low.
//
// The core is single-threaded cooperative: Map[V] has no internal
// synchronization, and callers that need concurrent access should wrap it
// with the hotsync facade.
package hot

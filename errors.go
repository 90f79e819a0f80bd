package hot

import "fmt"

// ErrCode identifies the kind of fatal condition a HotError reports.
// Fatal conditions indicate a violated invariant or an exhausted arena,
// never ordinary "key not found" outcomes (those are plain (zero, false)
// returns, not errors).
type ErrCode uint8

const (
	// ErrArenaOverflow means a key or node arena offset would exceed the
	// 47-bit addressable limit (2^47 - 1, 128TiB).
	ErrArenaOverflow ErrCode = iota
	// ErrMappingOverflow means a NODE_HOT's discriminative-bit mapping
	// could not accommodate a required bit even after every split policy
	// was exhausted.
	ErrMappingOverflow
	// ErrInvariantViolated means a structural invariant from the data
	// model (§3) was found broken at runtime, e.g. a null child in a
	// compound node, a node with an unknown tag, or two distinct keys with
	// no differing bit (keys that differ only by trailing 0x00 bytes).
	ErrInvariantViolated
)

func (c ErrCode) String() string {
	switch c {
	case ErrArenaOverflow:
		return "arena overflow"
	case ErrMappingOverflow:
		return "mapping overflow"
	case ErrInvariantViolated:
		return "invariant violated"
	default:
		return "unknown error"
	}
}

// HotError is the single fatal-error type the core panics with. These
// conditions are unrecoverable for the Map instance they were raised
// against; there is no partial-state recovery path.
type HotError struct {
	Code ErrCode
	Msg  string
}

func (e *HotError) Error() string {
	return fmt.Sprintf("hot: %s: %s", e.Code, e.Msg)
}

func fatal(code ErrCode, msg string) {
	panic(&HotError{Code: code, Msg: msg})
}

func fatalf(code ErrCode, format string, args ...any) {
	panic(&HotError{Code: code, Msg: fmt.Sprintf(format, args...)})
}

// errIteratorInvalidated is what an in-progress Iter/Range/PrefixScan
// panics with if the map is mutated underneath it (spec.md's Open
// Question ii: iterators are invalidated, loudly, by any Insert/Remove/
// Compact during the walk, detected via a per-Map version counter).
var errIteratorInvalidated = fmt.Errorf("hot: iterator invalidated by concurrent mutation")

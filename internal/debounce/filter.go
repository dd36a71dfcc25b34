package debounce

import "time"

// DefaultThreshold is the minimum gap between a release and the next genuine
// press when no explicit threshold is configured.
const DefaultThreshold = 20 * time.Millisecond

// Key identifies a physical key by its scan code. Values are opaque to the
// filter; they are only compared for equality.
type Key uint16

// Kind distinguishes the two transition directions of a key switch.
type Kind uint8

const (
	// Down is a key press transition.
	Down Kind = iota
	// Up is a key release transition.
	Up
)

// String returns the transition name.
func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return "unknown"
	}
}

// Decision is the filter's verdict for a single transition.
type Decision uint8

const (
	// Pass delivers the event unchanged.
	Pass Decision = iota
	// Suppress drops the event before it reaches any consumer.
	Suppress
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Pass:
		return "pass"
	case Suppress:
		return "suppress"
	default:
		return "unknown"
	}
}

// keyState is the timing record for one key. Exactly one of the two variants
// is active: pending means the most recent down was judged bounce and its
// matching up has not yet re-anchored the record; otherwise lastUp holds the
// monotonic timestamp of the last confirmed release.
type keyState struct {
	pending bool
	lastUp  uint64
}

// Filter decides, per key transition, whether the transition is genuine.
// It owns the key state table exclusively; entries are created on the first
// observed release of a key and live for the filter's lifetime. The table is
// bounded by the key-code space, so it is never pruned.
//
// Filter is not safe for concurrent use. All calls must come from the
// goroutine running the event loop.
type Filter struct {
	threshold uint64 // nanoseconds
	table     map[Key]keyState
}

// New creates a filter with the given debounce threshold. A zero or negative
// threshold selects DefaultThreshold.
func New(threshold time.Duration) *Filter {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Filter{
		threshold: uint64(threshold.Nanoseconds()),
		table:     make(map[Key]keyState),
	}
}

// Threshold reports the configured debounce threshold.
func (f *Filter) Threshold() time.Duration {
	return time.Duration(f.threshold)
}

// Tracked reports how many keys currently have a timing record.
func (f *Filter) Tracked() int {
	return len(f.table)
}

// Decide classifies one transition. timestamp is nanoseconds on a monotonic
// clock; timestamps for a given key must be non-decreasing, which the event
// loop guarantees by processing events in arrival order.
//
// Every (key, kind, timestamp) triple yields a decision; there are no error
// cases.
func (f *Filter) Decide(key Key, kind Kind, timestamp uint64) Decision {
	state, seen := f.table[key]

	switch kind {
	case Down:
		if !seen {
			// No release observed yet, nothing to debounce against.
			return Pass
		}
		if state.pending {
			// Still inside a bounce episode; collapse repeated downs.
			return Suppress
		}
		if timestamp < state.lastUp+f.threshold {
			// Too soon after the last confirmed release. Flag the episode
			// so the matching up is dropped too.
			state.pending = true
			f.table[key] = state
			return Suppress
		}
		// Gap of exactly the threshold falls through to here: ties favor
		// delivery.
		return Pass

	case Up:
		if !seen {
			// First ever release establishes the baseline and is never
			// itself suppressed.
			f.table[key] = keyState{lastUp: timestamp}
			return Pass
		}
		if state.pending {
			// This release pairs with a suppressed down. Re-anchor on it
			// and drop it.
			f.table[key] = keyState{lastUp: timestamp}
			return Suppress
		}
		f.table[key] = keyState{lastUp: timestamp}
		return Pass
	}

	return Pass
}

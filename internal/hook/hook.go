package hook

import "errors"

// Kernel input event types. Only the ones this daemon inspects are named;
// everything else flows through opaquely.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvMsc uint16 = 0x04
)

// Key transition values carried by EvKey events.
const (
	ValueRelease int32 = 0
	ValuePress   int32 = 1
	ValueRepeat  int32 = 2
)

// Hook errors.
var (
	// ErrUnsupported reports that no system hook exists for this platform.
	ErrUnsupported = errors.New("input hook not supported on this platform")
	// ErrNoKeyboards reports that device discovery found nothing to grab.
	ErrNoKeyboards = errors.New("no keyboard input devices found")
	// ErrNotStarted reports use of a hook before Start.
	ErrNotStarted = errors.New("input hook not started")
	// ErrAlreadyStarted reports a second Start on the same hook.
	ErrAlreadyStarted = errors.New("input hook already started")
)

// Event is one raw input transition as observed before delivery.
type Event struct {
	// Time is the event's kernel timestamp in nanoseconds on a monotonic
	// clock.
	Time uint64
	// Type is the kernel event type (EvKey for key transitions).
	Type uint16
	// Code identifies the key (scan code) for EvKey events.
	Code uint16
	// Value is the transition direction for EvKey events.
	Value int32
}

// IsKey reports whether the event is a key transition.
func (e Event) IsKey() bool { return e.Type == EvKey }

// IsPress reports a key-down transition.
func (e Event) IsPress() bool { return e.Type == EvKey && e.Value == ValuePress }

// IsRelease reports a key-up transition.
func (e Event) IsRelease() bool { return e.Type == EvKey && e.Value == ValueRelease }

// IsRepeat reports a kernel autorepeat, which is not a switch transition.
func (e Event) IsRepeat() bool { return e.Type == EvKey && e.Value == ValueRepeat }

// Hook is the capability contract the event loop depends on.
//
// Start acquires the underlying devices and returns the channel events are
// surfaced on. Forward re-emits an event so it reaches the rest of the
// system; an event never forwarded is suppressed. Stop releases the devices
// and causes the event channel to close; it must be safe to call more than
// once.
//
// Events on the returned channel are consumed by exactly one goroutine, and
// Forward must only be called from that goroutine.
type Hook interface {
	Start() (<-chan Event, error)
	Forward(Event) error
	Stop() error
}

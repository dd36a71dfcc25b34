package sigbridge

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
)

// State is the lifecycle position of the bridge endpoint.
type State uint8

const (
	// Uninitialized means Arm has not been called.
	Uninitialized State = iota
	// Armed means dispositions are installed and deliveries flow.
	Armed
	// Disarmed means dispositions are removed; the state is terminal.
	Disarmed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Armed:
		return "armed"
	case Disarmed:
		return "disarmed"
	default:
		return "unknown"
	}
}

// Action is the loop-side outcome of a delivered signal.
type Action uint8

const (
	// ActionNone acknowledges the signal with no further effect.
	ActionNone Action = iota
	// ActionStop requests that the event loop terminate.
	ActionStop
)

// Bridge lifecycle errors.
var (
	// ErrAlreadyArmed indicates Arm was called on an armed bridge.
	ErrAlreadyArmed = errors.New("signal bridge already armed")
	// ErrDisarmed indicates Arm was called after Disarm; the endpoint is
	// gone for good.
	ErrDisarmed = errors.New("signal bridge disarmed")
)

// deliveryBuffer sizes the hand-off channel. One slot would do for a single
// stop request; a few extra absorb signal bursts during shutdown without the
// capture stage ever blocking.
const deliveryBuffer = 4

// trappedSignals are routed through the bridge into the loop.
var trappedSignals = []os.Signal{
	syscall.SIGHUP,
	syscall.SIGINT,
	syscall.SIGTERM,
}

// Bridge carries signal numbers from handler context to loop context.
//
// Arm, Handle, Disarm, and State must all be called from the goroutine that
// runs the event loop; only the runtime's capture stage touches the bridge
// concurrently, and it does so solely through the channel send.
type Bridge struct {
	ch    chan os.Signal
	state State

	// Disposition installers, swappable in tests.
	notify func(chan<- os.Signal, ...os.Signal)
	ignore func(...os.Signal)
	stop   func(chan<- os.Signal)
	reset  func(...os.Signal)
}

// New creates an unarmed bridge endpoint.
func New() *Bridge {
	return &Bridge{
		ch:     make(chan os.Signal, deliveryBuffer),
		notify: signal.Notify,
		ignore: signal.Ignore,
		stop:   signal.Stop,
		reset:  signal.Reset,
	}
}

// Arm installs the signal dispositions and opens the endpoint for delivery.
// SIGPIPE requires no loop-context handling and is ignored outright at the
// disposition level before anything is trapped.
func (b *Bridge) Arm() error {
	switch b.state {
	case Armed:
		return ErrAlreadyArmed
	case Disarmed:
		return ErrDisarmed
	}

	b.ignore(syscall.SIGPIPE)
	b.notify(b.ch, trappedSignals...)
	b.state = Armed
	return nil
}

// Deliveries returns the channel the event loop selects on. It never closes;
// after Disarm it simply goes quiet.
func (b *Bridge) Deliveries() <-chan os.Signal {
	return b.ch
}

// Handle is the delivery stage: it translates a bridged signal into the
// action the loop should take. SIGHUP is reserved for configuration reload
// and is currently acknowledged and discarded. Signals delivered outside the
// Armed state yield no action.
func (b *Bridge) Handle(sig os.Signal) Action {
	if b.state != Armed {
		return ActionNone
	}
	switch sig {
	case syscall.SIGINT, syscall.SIGTERM:
		return ActionStop
	default:
		return ActionNone
	}
}

// Disarm removes the dispositions and closes the registration window. It is
// idempotent; a second call, or a call before Arm, only advances the state.
// Signals already buffered in the channel are left to drain unobserved.
func (b *Bridge) Disarm() {
	if b.state == Armed {
		b.stop(b.ch)
		b.reset(syscall.SIGPIPE)
	}
	b.state = Disarmed
}

// State reports the bridge's lifecycle position.
func (b *Bridge) State() State {
	return b.state
}

// Package hook provides a system-wide view of raw key transitions and the
// ability to deliver or withhold each one.
//
// The contract is deliberately narrow: a Hook surfaces every transition on a
// channel before any other consumer sees it, and only transitions explicitly
// handed back through Forward reach the rest of the system. Dropping an event
// is therefore just not forwarding it.
//
// On Linux the implementation grabs every keyboard-capable evdev node
// exclusively and re-emits passed events through a uinput virtual keyboard.
// Other platforms get ErrUnsupported from NewSystem.
package hook

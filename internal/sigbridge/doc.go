// Package sigbridge relays asynchronous process signals into the event loop.
//
// Signals are delivered on an implicit execution context where almost nothing
// is legal: loop control, teardown, and the key state table must only be
// touched from the loop goroutine. The bridge therefore splits handling in
// two stages. The capture stage is the Go runtime's async-signal-safe handler
// together with a buffered channel send (os/signal.Notify); a full channel
// drops the notification, which is the accepted outcome for signals racing a
// shutdown already in progress. The delivery stage is Handle, invoked by the
// loop when the channel becomes readable, and is the only place a signal is
// translated into an action.
//
// The bridge endpoint moves through Uninitialized -> Armed -> Disarmed and
// never returns to an earlier state. A signal arriving after Disarm has no
// useful action left to trigger and is dropped.
package sigbridge

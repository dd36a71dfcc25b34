package app

import (
	"github.com/chatterd/chatterd/internal/debounce"
	"github.com/chatterd/chatterd/internal/hook"
	"github.com/chatterd/chatterd/internal/sigbridge"
)

// Run drives the event loop until a stop is requested. One goroutine
// services both input events and bridged signal deliveries, so the filter's
// key state table needs no locking and teardown only happens here.
//
// A nil return means a graceful, signal-requested stop.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	for {
		select {
		case ev, ok := <-app.events:
			if !ok {
				// Every reader gone (all keyboards unplugged, or the
				// hook failed underneath us).
				return ErrHookClosed
			}
			app.handleEvent(ev)

		case sig := <-app.bridge.Deliveries():
			app.metrics.RecordSignal()
			if app.bridge.Handle(sig) == sigbridge.ActionStop {
				app.logger.Info("stop requested (%v)", sig)
				return nil
			}
			app.logger.Debug("signal %v acknowledged", sig)
		}
	}
}

// handleEvent applies the debounce decision to one surfaced event.
func (app *Application) handleEvent(ev hook.Event) {
	app.metrics.RecordEvent()

	// Only genuine switch transitions are debounced. Sync/misc events and
	// kernel autorepeats flow through so the synthesized stream stays
	// well-formed.
	var kind debounce.Kind
	switch {
	case ev.IsPress():
		kind = debounce.Down
	case ev.IsRelease():
		kind = debounce.Up
	default:
		app.forward(ev)
		return
	}

	decision := app.filter.Decide(debounce.Key(ev.Code), kind, ev.Time)
	app.metrics.RecordDecision(kind, decision)

	if decision == debounce.Suppress {
		app.logger.Debug("suppressed %v key=%d t=%dns", kind, ev.Code, ev.Time)
		return
	}
	app.forward(ev)
}

func (app *Application) forward(ev hook.Event) {
	if err := app.hk.Forward(ev); err != nil {
		app.metrics.RecordForwardError()
		app.logger.WithComponent("hook").Error("forward: %v", err)
	}
}

package app

import (
	"github.com/chatterd/chatterd/internal/debounce"
	"github.com/chatterd/chatterd/internal/hook"
	"github.com/chatterd/chatterd/internal/sigbridge"
)

// bootstrap acquires resources in dependency order. On failure everything
// acquired so far is released, in reverse, before the error is returned; a
// partial startup never leaks a grabbed device or an installed disposition.
func (app *Application) bootstrap() error {
	// 1. Debounce filter. Pure state, cannot fail.
	app.filter = debounce.New(app.opts.Config.Threshold())

	// 2. Signal bridge. Armed before the hook so a process that manages to
	// grab keyboards is always stoppable.
	app.bridge = sigbridge.New()
	if err := app.bridge.Arm(); err != nil {
		return &InitError{Component: "signal bridge", Err: err}
	}

	// 3. Input hook.
	hk := app.opts.Hook
	if hk == nil {
		sys, err := hook.NewSystem()
		if err != nil {
			app.bridge.Disarm()
			return &InitError{Component: "input hook", Err: err}
		}
		hk = sys
	}

	events, err := hk.Start()
	if err != nil {
		app.bridge.Disarm()
		return &InitError{Component: "input hook", Err: err}
	}

	app.hk = hk
	app.events = events

	app.logger.Info("armed: threshold %s", app.filter.Threshold())
	if ev, ok := hk.(interface{ Devices() []string }); ok {
		for _, dev := range ev.Devices() {
			app.logger.WithComponent("hook").Info("grabbed %s", dev)
		}
	}
	return nil
}

package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNotRoot indicates the process lacks root privileges.
	ErrNotRoot = errors.New("must run with root privileges")

	// ErrNotInitChild indicates the process is not supervised by init.
	ErrNotInitChild = errors.New("must run as a supervised child of init (parent pid 1)")

	// ErrAlreadyRunning indicates Run was called on a running application.
	ErrAlreadyRunning = errors.New("event loop already running")

	// ErrHookClosed indicates the input hook's event stream ended without a
	// stop being requested.
	ErrHookClosed = errors.New("input hook closed unexpectedly")
)

// InitError reports which component failed during bootstrap.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("initialize %s", e.Component)
	}
	return fmt.Sprintf("initialize %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

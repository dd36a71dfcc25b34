package app

import "os"

// Probe functions are package variables so tests can substitute them.
var (
	effectiveUID = os.Geteuid
	parentPID    = os.Getppid
)

// checkPreconditions enforces the startup contract: the daemon must run with
// root privileges (the hook needs raw device access) and as a supervised
// child of init. Both are checked before any resource is acquired.
func checkPreconditions() error {
	if effectiveUID() != 0 {
		return ErrNotRoot
	}
	if parentPID() != 1 {
		return ErrNotInitChild
	}
	return nil
}

// Package debounce implements the per-key timing model that decides whether
// a key transition is a genuine actuation or mechanical switch chatter.
//
// A worn switch can produce spurious extra down/up transitions within a few
// milliseconds of a release. The filter keeps one timing record per key and
// classifies every down against the time of that key's last confirmed
// release: a down arriving sooner than the configured threshold is bounce,
// and the up that pairs with it is dropped as well so the output stream never
// carries an orphan release.
//
// The filter is owned by a single goroutine (the event loop) and performs no
// locking of its own.
package debounce

package app

import (
	"sync/atomic"
	"time"

	"github.com/chatterd/chatterd/internal/debounce"
)

// Metrics tracks in-process counters for the session. All counters are
// atomic so the snapshot can be read while the loop runs.
type Metrics struct {
	events          atomic.Uint64
	downsPassed     atomic.Uint64
	downsSuppressed atomic.Uint64
	upsPassed       atomic.Uint64
	upsSuppressed   atomic.Uint64
	forwardErrors   atomic.Uint64
	signals         atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent counts one surfaced input event of any type.
func (m *Metrics) RecordEvent() {
	m.events.Add(1)
}

// RecordDecision counts the filter's verdict for one key transition.
func (m *Metrics) RecordDecision(kind debounce.Kind, d debounce.Decision) {
	switch {
	case kind == debounce.Down && d == debounce.Pass:
		m.downsPassed.Add(1)
	case kind == debounce.Down && d == debounce.Suppress:
		m.downsSuppressed.Add(1)
	case kind == debounce.Up && d == debounce.Pass:
		m.upsPassed.Add(1)
	case kind == debounce.Up && d == debounce.Suppress:
		m.upsSuppressed.Add(1)
	}
}

// RecordForwardError counts a failed re-emission.
func (m *Metrics) RecordForwardError() {
	m.forwardErrors.Add(1)
}

// RecordSignal counts a bridged signal delivery.
func (m *Metrics) RecordSignal() {
	m.signals.Add(1)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Events          uint64
	DownsPassed     uint64
	DownsSuppressed uint64
	UpsPassed       uint64
	UpsSuppressed   uint64
	ForwardErrors   uint64
	Signals         uint64
	Uptime          time.Duration
}

// Suppressed returns the total number of dropped transitions.
func (s MetricsSnapshot) Suppressed() uint64 {
	return s.DownsSuppressed + s.UpsSuppressed
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Events:          m.events.Load(),
		DownsPassed:     m.downsPassed.Load(),
		DownsSuppressed: m.downsSuppressed.Load(),
		UpsPassed:       m.upsPassed.Load(),
		UpsSuppressed:   m.upsSuppressed.Load(),
		ForwardErrors:   m.forwardErrors.Load(),
		Signals:         m.signals.Load(),
		Uptime:          time.Since(m.startTime),
	}
}

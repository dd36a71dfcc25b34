package app

import (
	"testing"

	"github.com/chatterd/chatterd/internal/debounce"
)

func TestMetricsRecordDecision(t *testing.T) {
	m := NewMetrics()

	m.RecordDecision(debounce.Down, debounce.Pass)
	m.RecordDecision(debounce.Down, debounce.Pass)
	m.RecordDecision(debounce.Down, debounce.Suppress)
	m.RecordDecision(debounce.Up, debounce.Pass)
	m.RecordDecision(debounce.Up, debounce.Suppress)
	m.RecordDecision(debounce.Up, debounce.Suppress)

	snap := m.Snapshot()
	if snap.DownsPassed != 2 {
		t.Errorf("DownsPassed = %d, want 2", snap.DownsPassed)
	}
	if snap.DownsSuppressed != 1 {
		t.Errorf("DownsSuppressed = %d, want 1", snap.DownsSuppressed)
	}
	if snap.UpsPassed != 1 {
		t.Errorf("UpsPassed = %d, want 1", snap.UpsPassed)
	}
	if snap.UpsSuppressed != 2 {
		t.Errorf("UpsSuppressed = %d, want 2", snap.UpsSuppressed)
	}
	if snap.Suppressed() != 3 {
		t.Errorf("Suppressed() = %d, want 3", snap.Suppressed())
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	for i := 0; i < 5; i++ {
		m.RecordEvent()
	}
	m.RecordForwardError()
	m.RecordSignal()
	m.RecordSignal()

	snap := m.Snapshot()
	if snap.Events != 5 {
		t.Errorf("Events = %d, want 5", snap.Events)
	}
	if snap.ForwardErrors != 1 {
		t.Errorf("ForwardErrors = %d, want 1", snap.ForwardErrors)
	}
	if snap.Signals != 2 {
		t.Errorf("Signals = %d, want 2", snap.Signals)
	}
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	m := NewMetrics()
	m.RecordEvent()

	snap := m.Snapshot()
	m.RecordEvent()

	if snap.Events != 1 {
		t.Errorf("snapshot changed after further recording: Events = %d", snap.Events)
	}
	if m.Snapshot().Events != 2 {
		t.Errorf("live counter = %d, want 2", m.Snapshot().Events)
	}
}

func TestMetricsUptime(t *testing.T) {
	m := NewMetrics()
	if m.Snapshot().Uptime < 0 {
		t.Error("negative uptime")
	}
}

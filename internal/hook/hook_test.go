package hook

import "testing"

func TestEventClassification(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		isKey   bool
		press   bool
		release bool
		repeat  bool
	}{
		{"press", Event{Type: EvKey, Code: 30, Value: ValuePress}, true, true, false, false},
		{"release", Event{Type: EvKey, Code: 30, Value: ValueRelease}, true, false, true, false},
		{"repeat", Event{Type: EvKey, Code: 30, Value: ValueRepeat}, true, false, false, true},
		{"sync", Event{Type: EvSyn}, false, false, false, false},
		{"scan code", Event{Type: EvMsc, Code: 0x04, Value: 0x1e}, false, false, false, false},
	}

	for _, tt := range tests {
		if got := tt.event.IsKey(); got != tt.isKey {
			t.Errorf("%s: IsKey() = %v, want %v", tt.name, got, tt.isKey)
		}
		if got := tt.event.IsPress(); got != tt.press {
			t.Errorf("%s: IsPress() = %v, want %v", tt.name, got, tt.press)
		}
		if got := tt.event.IsRelease(); got != tt.release {
			t.Errorf("%s: IsRelease() = %v, want %v", tt.name, got, tt.release)
		}
		if got := tt.event.IsRepeat(); got != tt.repeat {
			t.Errorf("%s: IsRepeat() = %v, want %v", tt.name, got, tt.repeat)
		}
	}
}

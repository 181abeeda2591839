package progress

import "testing"

func TestIncrementClampsAtTotal(t *testing.T) {
	b := &Bar{Total: 2, Width: 10}

	b.Increment("one")
	b.Increment("two")
	b.Increment("overflow")

	if b.Current != 2 {
		t.Errorf("Current = %d, want 2", b.Current)
	}
}

func TestPct(t *testing.T) {
	b := &Bar{Total: 4, Width: 10}

	if got := b.Pct(); got != 0 {
		t.Errorf("initial Pct = %f", got)
	}

	b.Increment("")
	if got := b.Pct(); got != 25 {
		t.Errorf("Pct = %f, want 25", got)
	}
}

func TestPctZeroTotal(t *testing.T) {
	b := &Bar{Total: 0}
	if got := b.Pct(); got != 0 {
		t.Errorf("Pct = %f, want 0", got)
	}
}

func TestNewDisabledByEnv(t *testing.T) {
	t.Setenv("TRAFFICLENS_NO_PROGRESS", "1")
	if b := New("analyzing", 3); b.Enabled {
		t.Error("bar should be disabled by TRAFFICLENS_NO_PROGRESS=1")
	}
}

func TestNewDisabledByJSONMode(t *testing.T) {
	t.Setenv("TRAFFICLENS_NO_PROGRESS", "")
	t.Setenv("TRAFFICLENS_JSON", "true")
	if b := New("analyzing", 3); b.Enabled {
		t.Error("bar should be disabled in JSON mode")
	}
}

package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulatesPerTick(t *testing.T) {
	ResetTick()
	for i := 0; i < 3; i++ {
		Track("water.ScanCascades")()
	}
	Track("wind.Advance")()

	if got := Calls("water.ScanCascades"); got != 3 {
		t.Errorf("Expected 3 calls, got %d", got)
	}
	if got := Calls("missing"); got != 0 {
		t.Errorf("Expected 0 calls for unknown bucket, got %d", got)
	}

	ResetTick()
	if len(Snapshot()) != 0 {
		t.Errorf("Expected empty snapshot after reset")
	}
}

func TestSumWithPrefix(t *testing.T) {
	ResetTick()
	mu.Lock()
	tickTotals["water.a"] = &bucket{total: 2 * time.Millisecond, calls: 1}
	tickTotals["water.b"] = &bucket{total: 3 * time.Millisecond, calls: 1}
	tickTotals["wind.a"] = &bucket{total: 7 * time.Millisecond, calls: 1}
	mu.Unlock()

	if got := SumWithPrefix("water."); got != 5*time.Millisecond {
		t.Errorf("Expected 5ms, got %v", got)
	}
	ResetTick()
}

func TestTopNOrdering(t *testing.T) {
	ResetTick()
	mu.Lock()
	tickTotals["slow"] = &bucket{total: 4200 * time.Microsecond, calls: 1}
	tickTotals["fast"] = &bucket{total: 1000 * time.Microsecond, calls: 1}
	tickTotals["mid"] = &bucket{total: 2100 * time.Microsecond, calls: 1}
	mu.Unlock()

	got := TopN(2)
	if got != "slow:4.2ms, mid:2.1ms" {
		t.Errorf("Unexpected TopN output: %q", got)
	}
	if all := TopN(10); strings.Count(all, ",") != 2 {
		t.Errorf("Expected three entries, got %q", all)
	}
	if fast := TopN(3); !strings.HasSuffix(fast, "fast:1ms") {
		t.Errorf("Expected whole milliseconds without decimals, got %q", fast)
	}
	ResetTick()
}

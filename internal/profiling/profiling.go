// Package profiling accumulates wall time per named bucket over one simulation tick.
package profiling

import (
	"cmp"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	total time.Duration
	calls int
}

var (
	mu         sync.Mutex
	tickTotals = make(map[string]*bucket)
)

// Track starts a timer for name and returns the function that stops it:
//
//	defer profiling.Track("water.ScanCascades")()
func Track(name string) func() {
	start := time.Now()
	return func() { record(name, time.Since(start)) }
}

func record(name string, d time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	b, ok := tickTotals[name]
	if !ok {
		b = &bucket{}
		tickTotals[name] = b
	}
	b.total += d
	b.calls++
}

// ResetTick clears current per-tick totals. Call at the start of each tick.
func ResetTick() {
	mu.Lock()
	clear(tickTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-tick totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(tickTotals))
	for k, b := range tickTotals {
		out[k] = b.total
	}
	return out
}

// Calls returns how many times name was tracked since the last reset.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	if b := tickTotals[name]; b != nil {
		return b.calls
	}
	return 0
}

// SumWithPrefix totals every bucket whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, b := range tickTotals {
		if strings.HasPrefix(k, prefix) {
			sum += b.total
		}
	}
	return sum
}

// TopN lists the n slowest buckets of the tick, slowest first, as
// "water.ScanCascades:4.2ms, water.ScanShoreline:2.1ms".
func TopN(n int) string {
	snap := Snapshot()
	names := slices.Collect(maps.Keys(snap))
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(snap[b], snap[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	names = names[:min(n, len(names))]
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ":" + formatMs(float64(snap[name].Microseconds())/1000)
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(ms float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(ms, 'f', 1, 64), ".0") + "ms"
}

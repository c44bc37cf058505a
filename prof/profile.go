package prof

import (
	"sort"
	"sync"
	"time"
)

// Entry represents a single timing measurement.
type Entry struct {
	Label string
	Dur   time.Duration
}

// Total is the accumulated duration and call count of one label.
type Total struct {
	Label string
	Calls int
	Dur   time.Duration
}

var (
	mu     sync.Mutex
	record []Entry
)

// Track logs the duration since start with the given name.
// Intended for use as `defer prof.Track(time.Now(), "label")`.
func Track(start time.Time, name string) {
	elapsed := time.Since(start)
	mu.Lock()
	record = append(record, Entry{Label: name, Dur: elapsed})
	mu.Unlock()
}

// SnapshotAndReset returns the collected timing entries and clears them.
func SnapshotAndReset() []Entry {
	mu.Lock()
	defer mu.Unlock()
	out := make([]Entry, len(record))
	copy(out, record)
	record = nil
	return out
}

// Totals folds entries by label, slowest label first.
func Totals(entries []Entry) []Total {
	byLabel := make(map[string]*Total)
	for _, e := range entries {
		t, ok := byLabel[e.Label]
		if !ok {
			t = &Total{Label: e.Label}
			byLabel[e.Label] = t
		}
		t.Calls++
		t.Dur += e.Dur
	}
	out := make([]Total, 0, len(byLabel))
	for _, t := range byLabel {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dur != out[j].Dur {
			return out[i].Dur > out[j].Dur
		}
		return out[i].Label < out[j].Label
	})
	return out
}

package prof

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTrackSnapshotAndReset(t *testing.T) {
	SnapshotAndReset()
	Track(time.Now(), "a")
	Track(time.Now().Add(-time.Millisecond), "b")

	got := SnapshotAndReset()
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].Label)
	require.GreaterOrEqual(t, got[1].Dur, time.Millisecond)
	require.Empty(t, SnapshotAndReset())
}

func TestTotals(t *testing.T) {
	entries := []Entry{
		{Label: "round", Dur: 2 * time.Millisecond},
		{Label: "verify", Dur: 5 * time.Millisecond},
		{Label: "round", Dur: 4 * time.Millisecond},
	}
	got := Totals(entries)
	require.Equal(t, []Total{
		{Label: "round", Calls: 2, Dur: 6 * time.Millisecond},
		{Label: "verify", Calls: 1, Dur: 5 * time.Millisecond},
	}, got)
	require.Empty(t, Totals(nil))
}

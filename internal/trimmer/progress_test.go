package trimmer

import (
	"testing"

	"clipcatch/internal/progress"
)

func TestProgressState(t *testing.T) {
	ps := &ProgressState{}
	const clipLen = 180.0 // seconds

	feed := func(lines ...string) []progress.Update {
		var out []progress.Update
		for _, l := range lines {
			if u, ok := ps.UpdateFromLine(l, "job1", clipLen); ok {
				out = append(out, u)
			}
		}
		return out
	}

	t.Run("accumulates until progress marker", func(t *testing.T) {
		updates := feed(
			"out_time_ms=90000000",
			"speed=3.5x",
			"total_size=1048576",
		)
		if len(updates) != 0 {
			t.Fatalf("got %d updates before marker, want 0", len(updates))
		}

		updates = feed("progress=continue")
		if len(updates) != 1 {
			t.Fatalf("got %d updates, want 1", len(updates))
		}
		u := updates[0]
		if u.Stage != progress.StageTrimming {
			t.Errorf("Stage = %v, want StageTrimming", u.Stage)
		}
		if u.Percent != 50 {
			t.Errorf("Percent = %v, want 50", u.Percent)
		}
		if u.Speed == nil || *u.Speed != "3.5x" {
			t.Errorf("Speed = %v, want 3.5x", u.Speed)
		}
		if u.Bytes == nil || *u.Bytes != 1048576 {
			t.Errorf("Bytes = %v, want 1048576", u.Bytes)
		}
	})

	t.Run("caps at 100 percent", func(t *testing.T) {
		updates := feed(
			"out_time_ms=200000000",
			"progress=end",
		)
		if len(updates) != 1 {
			t.Fatalf("got %d updates, want 1", len(updates))
		}
		if updates[0].Percent != 100 {
			t.Errorf("Percent = %v, want capped 100", updates[0].Percent)
		}
	})

	t.Run("non key=value lines ignored", func(t *testing.T) {
		if _, ok := ps.UpdateFromLine("frame dropped", "job1", clipLen); ok {
			t.Error("expected ok=false for non key=value line")
		}
	})

	t.Run("unknown clip length yields indeterminate percent", func(t *testing.T) {
		ps2 := &ProgressState{OutTimeMs: 1000}
		u, ok := ps2.UpdateFromLine("progress=continue", "job1", 0)
		if !ok {
			t.Fatal("expected an update at the marker")
		}
		if u.Percent >= 0 {
			t.Errorf("Percent = %v, want negative (unknown)", u.Percent)
		}
	})
}

package streak

import (
	"testing"
	"time"
)

func TestUpdateFirstEverDay(t *testing.T) {
	got := Update(State{}, "2025-03-01")
	want := State{Current: 1, Best: 1, LastDay: "2025-03-01"}
	if got != want {
		t.Errorf("Update = %+v, want %+v", got, want)
	}
}

func TestUpdateSameDayIsIdempotent(t *testing.T) {
	s := State{Current: 4, Best: 6, LastDay: "2025-03-01"}
	got := Update(s, "2025-03-01")
	if got != s {
		t.Errorf("same-day update changed state: %+v", got)
	}
}

func TestUpdateConsecutiveDay(t *testing.T) {
	s := State{Current: 4, Best: 4, LastDay: "2025-03-01"}
	got := Update(s, "2025-03-02")
	want := State{Current: 5, Best: 5, LastDay: "2025-03-02"}
	if got != want {
		t.Errorf("Update = %+v, want %+v", got, want)
	}
}

func TestUpdateGapResetsToOne(t *testing.T) {
	s := State{Current: 7, Best: 9, LastDay: "2025-03-01"}
	got := Update(s, "2025-03-05")
	want := State{Current: 1, Best: 9, LastDay: "2025-03-05"}
	if got != want {
		t.Errorf("Update = %+v, want %+v", got, want)
	}
}

func TestUpdateAcrossMonthBoundary(t *testing.T) {
	s := State{Current: 2, Best: 2, LastDay: "2025-02-28"}
	got := Update(s, "2025-03-01")
	if got.Current != 3 || got.Best != 3 {
		t.Errorf("month boundary: got %+v, want current 3 best 3", got)
	}
}

// Play day D, D+1, then skip a day: current goes 1,2,1 while best keeps 2.
func TestUpdateSequence(t *testing.T) {
	days := []string{"2025-03-01", "2025-03-02", "2025-03-04"}
	wantCurrent := []int{1, 2, 1}
	wantBest := []int{1, 2, 2}

	s := State{}
	for i, day := range days {
		s = Update(s, day)
		if s.Current != wantCurrent[i] {
			t.Errorf("day %s: current = %d, want %d", day, s.Current, wantCurrent[i])
		}
		if s.Best != wantBest[i] {
			t.Errorf("day %s: best = %d, want %d", day, s.Best, wantBest[i])
		}
	}
}

func TestUpdateCorruptLastDayResets(t *testing.T) {
	s := State{Current: 5, Best: 5, LastDay: "not-a-day"}
	got := Update(s, "2025-03-01")
	if got.Current != 1 || got.LastDay != "2025-03-01" {
		t.Errorf("corrupt last day: got %+v, want reset to 1", got)
	}
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	if got := DayOf(ts); got != "2025-03-01" {
		t.Errorf("DayOf = %q, want 2025-03-01", got)
	}
}

package badges

import (
	"reflect"
	"testing"

	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/streak"
)

func sessionWith(outcomes ...history.Outcome) *history.Session {
	return &history.Session{ID: "s1", Tests: outcomes}
}

func TestStreakBadges(t *testing.T) {
	sess := sessionWith()
	tests := []struct {
		current int
		want    []string
	}{
		{1, nil},
		{3, []string{Streak3}},
		{5, []string{Streak3, Streak5}},
		{10, []string{Streak3, Streak5, Streak10}},
	}
	for _, tt := range tests {
		merged, _ := Derive(nil, sess, streak.State{Current: tt.current})
		want := tt.want
		if want == nil {
			want = []string{}
		}
		if !reflect.DeepEqual(merged, want) {
			t.Errorf("streak %d: merged = %v, want %v", tt.current, merged, want)
		}
	}
}

func TestReactionQuick(t *testing.T) {
	fast := sessionWith(history.Outcome{
		Kind: history.KindReaction, Score: 300,
		Meta: history.Meta{"medianMs": 200.0},
	})
	merged, unlocked := Derive(nil, fast, streak.State{Current: 1})
	if !contains(merged, ReactionQuick) {
		t.Errorf("medianMs 200 did not unlock %s: %v", ReactionQuick, merged)
	}
	if !reflect.DeepEqual(unlocked, []string{ReactionQuick}) {
		t.Errorf("unlocked = %v, want [%s]", unlocked, ReactionQuick)
	}

	slow := sessionWith(history.Outcome{
		Kind: history.KindReaction, Score: 200,
		Meta: history.Meta{"medianMs": 300.0},
	})
	merged, _ = Derive(nil, slow, streak.State{Current: 1})
	if contains(merged, ReactionQuick) {
		t.Errorf("medianMs 300 unexpectedly unlocked %s", ReactionQuick)
	}

	noMeta := sessionWith(history.Outcome{Kind: history.KindReaction, Score: 499})
	merged, _ = Derive(nil, noMeta, streak.State{Current: 1})
	if contains(merged, ReactionQuick) {
		t.Error("missing medianMs metadata unexpectedly unlocked reaction-quick")
	}
}

func TestArithmeticAce(t *testing.T) {
	ace := sessionWith(history.Outcome{Kind: history.KindArithmetic, Score: 500})
	merged, _ := Derive(nil, ace, streak.State{})
	if !contains(merged, ArithmeticAce) {
		t.Error("score 500 did not unlock arithmetic-ace")
	}

	almost := sessionWith(history.Outcome{Kind: history.KindArithmetic, Score: 499})
	merged, _ = Derive(nil, almost, streak.State{})
	if contains(merged, ArithmeticAce) {
		t.Error("score 499 unexpectedly unlocked arithmetic-ace")
	}
}

func TestMemoryMarvel(t *testing.T) {
	byScore := sessionWith(history.Outcome{Kind: history.KindMemory, Score: 400})
	merged, _ := Derive(nil, byScore, streak.State{})
	if !contains(merged, MemoryMarvel) {
		t.Error("score 400 did not unlock memory-marvel")
	}

	byLongest := sessionWith(history.Outcome{
		Kind: history.KindMemory, Score: 100,
		Meta: history.Meta{"longest": 10.0},
	})
	merged, _ = Derive(nil, byLongest, streak.State{})
	if !contains(merged, MemoryMarvel) {
		t.Error("longest 10 did not unlock memory-marvel")
	}

	neither := sessionWith(history.Outcome{
		Kind: history.KindMemory, Score: 399,
		Meta: history.Meta{"longest": 9.0},
	})
	merged, _ = Derive(nil, neither, streak.State{})
	if contains(merged, MemoryMarvel) {
		t.Error("score 399 / longest 9 unexpectedly unlocked memory-marvel")
	}
}

func TestDeriveNeverRemoves(t *testing.T) {
	existing := []string{Streak10, "legacy-badge"}
	merged, unlocked := Derive(existing, sessionWith(), streak.State{Current: 1})
	if !contains(merged, Streak10) || !contains(merged, "legacy-badge") {
		t.Errorf("existing badges dropped: %v", merged)
	}
	if len(unlocked) != 0 {
		t.Errorf("unlocked = %v, want none", unlocked)
	}
}

func TestDeriveReportsOnlyNew(t *testing.T) {
	sess := sessionWith(history.Outcome{Kind: history.KindArithmetic, Score: 600})
	merged, unlocked := Derive([]string{ArithmeticAce}, sess, streak.State{Current: 3})
	if !reflect.DeepEqual(unlocked, []string{Streak3}) {
		t.Errorf("unlocked = %v, want [%s]", unlocked, Streak3)
	}
	if !contains(merged, ArithmeticAce) || !contains(merged, Streak3) {
		t.Errorf("merged = %v missing expected badges", merged)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

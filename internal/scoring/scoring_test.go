package scoring

import (
	"testing"

	"github.com/bramv/brainsparks/internal/history"
)

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		mistakes int
		timeLeft float64
		want     int
	}{
		{"all zero", 0, 0, 0, 0},
		{"only correct", 10, 0, 0, 100},
		{"mistakes subtract", 10, 4, 0, 80},
		{"time bonus doubles seconds", 0, 0, 30, 60},
		{"combined", 20, 3, 12, 209},
		{"floored at zero", 0, 50, 0, 0},
		{"fractional time rounds", 1, 0, 0.4, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Arithmetic(tt.correct, tt.mistakes, tt.timeLeft); got != tt.want {
				t.Errorf("Arithmetic(%d, %d, %v) = %d, want %d", tt.correct, tt.mistakes, tt.timeLeft, got, tt.want)
			}
		})
	}
}

func TestArithmeticNeverNegative(t *testing.T) {
	for correct := 0; correct <= 5; correct++ {
		for mistakes := 0; mistakes <= 40; mistakes += 5 {
			if got := Arithmetic(correct, mistakes, 0); got < 0 {
				t.Fatalf("Arithmetic(%d, %d, 0) = %d, negative", correct, mistakes, got)
			}
		}
	}
}

func TestMemory(t *testing.T) {
	tests := []struct {
		name     string
		longest  int
		accuracy float64
		want     int
	}{
		{"nothing recalled", 0, 0, 0},
		{"perfect five", 5, 1, 125},
		{"partial accuracy", 6, 0.5, 120},
		{"accuracy above one clamps", 4, 1.7, 100},
		{"accuracy below zero clamps", 4, -0.3, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memory(tt.longest, tt.accuracy); got != tt.want {
				t.Errorf("Memory(%d, %v) = %d, want %d", tt.longest, tt.accuracy, got, tt.want)
			}
		})
	}
}

func TestReaction(t *testing.T) {
	if got := Reaction(0); got != 500 {
		t.Errorf("Reaction(0) = %d, want 500", got)
	}
	for _, ms := range []float64{500, 600, 10000} {
		if got := Reaction(ms); got != 0 {
			t.Errorf("Reaction(%v) = %d, want 0", ms, got)
		}
	}
	if got := Reaction(250); got != 250 {
		t.Errorf("Reaction(250) = %d, want 250", got)
	}

	// Strictly decreasing on [0, 500).
	prev := Reaction(0)
	for ms := 50.0; ms < 500; ms += 50 {
		got := Reaction(ms)
		if got >= prev {
			t.Errorf("Reaction(%v) = %d, not below Reaction(%v) = %d", ms, got, ms-50, prev)
		}
		prev = got
	}
}

func TestOddOneOut(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		mistakes int
		timeLeft float64
		want     int
	}{
		{"all zero", 0, 0, 0, 0},
		{"hits", 10, 0, 0, 120},
		{"misses subtract", 10, 2, 0, 108},
		{"time bonus is one per second", 0, 0, 45, 45},
		{"floored at zero", 1, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OddOneOut(tt.correct, tt.mistakes, tt.timeLeft); got != tt.want {
				t.Errorf("OddOneOut(%d, %d, %v) = %d, want %d", tt.correct, tt.mistakes, tt.timeLeft, got, tt.want)
			}
		})
	}
}

func TestNormalise(t *testing.T) {
	if got := Normalise(420, history.KindArithmetic); got != 0 {
		t.Errorf("baseline arithmetic z = %v, want 0", got)
	}
	if got := Normalise(530, history.KindArithmetic); got != 1 {
		t.Errorf("one spread above z = %v, want 1", got)
	}
	if got := Normalise(270, history.KindMemory); got != -1 {
		t.Errorf("one spread below z = %v, want -1", got)
	}
}

func TestFeedback(t *testing.T) {
	tests := []struct {
		score int
		kind  history.TestKind
		want  FeedbackClass
	}{
		{530, history.KindArithmetic, FeedbackPositive}, // baseline + spread
		{529, history.KindArithmetic, FeedbackNeutral},
		{420, history.KindArithmetic, FeedbackNeutral},
		{376, history.KindArithmetic, FeedbackNeutral}, // baseline - 0.4*spread
		{375, history.KindArithmetic, FeedbackNegative},
		{380, history.KindReaction, FeedbackPositive},
		{0, history.KindOddOneOut, FeedbackNegative},
	}
	for _, tt := range tests {
		if got := Feedback(tt.score, tt.kind); got != tt.want {
			t.Errorf("Feedback(%d, %s) = %s, want %s", tt.score, tt.kind, got, tt.want)
		}
	}
}

func TestBrainAgeRegressionCase(t *testing.T) {
	// arithmetic 600 -> z 1.636..., memory 100 -> z -2.888...,
	// average -0.62626, mapped 70 + 7.515 = 77.515, rounded to 78.
	got := BrainAge(map[history.TestKind]int{
		history.KindArithmetic: 600,
		history.KindMemory:     100,
	})
	if got != 78 {
		t.Errorf("BrainAge = %d, want 78", got)
	}
}

func TestBrainAgeAlwaysInRange(t *testing.T) {
	extremes := []map[history.TestKind]int{
		{history.KindArithmetic: 0},
		{history.KindArithmetic: 100000},
		{history.KindReaction: -5000},
		{history.KindArithmetic: 0, history.KindMemory: 0, history.KindReaction: 0, history.KindOddOneOut: 0},
		{history.KindArithmetic: 9999, history.KindMemory: 9999, history.KindReaction: 9999, history.KindOddOneOut: 9999},
	}
	for _, scores := range extremes {
		got := BrainAge(scores)
		if got < MinBrainAge || got > MaxBrainAge {
			t.Errorf("BrainAge(%v) = %d, outside [%d, %d]", scores, got, MinBrainAge, MaxBrainAge)
		}
	}
}

func TestBrainAgeAtBaselineIsSeventy(t *testing.T) {
	got := BrainAge(map[history.TestKind]int{
		history.KindArithmetic: 420,
		history.KindMemory:     360,
		history.KindReaction:   280,
		history.KindOddOneOut:  400,
	})
	if got != 70 {
		t.Errorf("BrainAge at baselines = %d, want 70", got)
	}
}

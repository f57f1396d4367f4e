package games

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/bramv/brainsparks/internal/difficulty"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestArithmeticGenRespectsRangeAndOperators(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierNormal).Arithmetic
	gen := NewArithmeticGen(cfg, testRand())

	allowed := make(map[difficulty.Operator]bool)
	for _, op := range cfg.Operators {
		allowed[op] = true
	}

	for i := 0; i < 500; i++ {
		q := gen.Next()
		if !allowed[q.Op] {
			t.Fatalf("operator %q not in tier set", q.Op)
		}
		if q.Op != difficulty.OpDiv {
			if q.A < cfg.Min || q.A > cfg.Max || q.B < cfg.Min || q.B > cfg.Max {
				t.Fatalf("operands %d, %d outside [%d, %d]", q.A, q.B, cfg.Min, cfg.Max)
			}
		}
	}
}

func TestArithmeticGenSubtractionNeverNegative(t *testing.T) {
	cfg := difficulty.ArithmeticConfig{Min: 1, Max: 9, Operators: []difficulty.Operator{difficulty.OpSub}}
	gen := NewArithmeticGen(cfg, testRand())
	for i := 0; i < 200; i++ {
		q := gen.Next()
		if q.Answer < 0 {
			t.Fatalf("%s gives negative answer %d", q.Text(), q.Answer)
		}
		if q.A-q.B != q.Answer {
			t.Fatalf("%s: stored answer %d wrong", q.Text(), q.Answer)
		}
	}
}

func TestArithmeticGenDivisionIsExact(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierHard).Arithmetic
	cfg.Operators = []difficulty.Operator{difficulty.OpDiv}
	gen := NewArithmeticGen(cfg, testRand())
	for i := 0; i < 200; i++ {
		q := gen.Next()
		if q.B == 0 {
			t.Fatal("division by zero generated")
		}
		if q.A%q.B != 0 {
			t.Fatalf("%d / %d does not divide evenly", q.A, q.B)
		}
		if q.A/q.B != q.Answer {
			t.Fatalf("%s: stored answer %d wrong", q.Text(), q.Answer)
		}
	}
}

func TestMemoryDrillFullRun(t *testing.T) {
	cfg := difficulty.MemoryConfig{RevealMs: 1800, StartLength: 5}
	d := NewMemoryDrill(cfg, testRand())

	seq := d.Start()
	if len(seq) != 5 {
		t.Fatalf("round 1 length = %d, want 5", len(seq))
	}

	for round := 1; ; round++ {
		wantLen := cfg.StartLength + round - 1
		if len(d.Sequence) != wantLen {
			t.Fatalf("round %d length = %d, want %d", round, len(d.Sequence), wantLen)
		}
		if strings.Trim(d.Sequence, "0123456789") != "" {
			t.Fatalf("sequence %q contains non-digits", d.Sequence)
		}
		correct, finished := d.Submit(d.Sequence)
		if !correct {
			t.Fatalf("round %d: exact echo graded wrong", round)
		}
		if finished {
			break
		}
	}

	if !d.Done() {
		t.Error("drill not done after final round")
	}
	if d.Correct != MemoryRounds {
		t.Errorf("Correct = %d, want %d", d.Correct, MemoryRounds)
	}
	if d.Accuracy() != 1 {
		t.Errorf("Accuracy = %v, want 1", d.Accuracy())
	}
	if want := cfg.StartLength + MemoryRounds - 1; d.Longest != want {
		t.Errorf("Longest = %d, want %d", d.Longest, want)
	}
}

func TestMemoryDrillWrongAnswersDoNotExtendLongest(t *testing.T) {
	d := NewMemoryDrill(difficulty.MemoryConfig{StartLength: 4}, testRand())
	d.Start()

	// First round right, the rest wrong.
	if correct, _ := d.Submit(d.Sequence); !correct {
		t.Fatal("first round echo graded wrong")
	}
	for !d.Done() {
		if correct, _ := d.Submit("wrong"); correct {
			t.Fatal("mismatch graded correct")
		}
	}

	if d.Longest != 4 {
		t.Errorf("Longest = %d, want 4", d.Longest)
	}
	if d.Accuracy() != 0.2 {
		t.Errorf("Accuracy = %v, want 0.2", d.Accuracy())
	}
}

func TestMemoryDrillTrimsInput(t *testing.T) {
	d := NewMemoryDrill(difficulty.MemoryConfig{StartLength: 4}, testRand())
	seq := d.Start()
	if correct, _ := d.Submit("  " + seq + " "); !correct {
		t.Error("padded input graded wrong")
	}
}

func TestTrialDelayWithinBounds(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierEasy).Reaction
	rnd := testRand()
	for i := 0; i < 200; i++ {
		d := TrialDelay(cfg, rnd)
		ms := int(d.Milliseconds())
		if ms < cfg.MinDelayMs || ms > cfg.MaxDelayMs {
			t.Fatalf("delay %dms outside [%d, %d]", ms, cfg.MinDelayMs, cfg.MaxDelayMs)
		}
	}
}

func TestMedianMs(t *testing.T) {
	tests := []struct {
		name  string
		times []int
		want  int
	}{
		{"empty", nil, 0},
		{"single", []int{321}, 321},
		{"odd count", []int{300, 100, 200}, 200},
		{"even count averages middle", []int{100, 200, 300, 400}, 250},
		{"even count rounds up", []int{100, 201, 300, 400}, 251},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MedianMs(tt.times); got != tt.want {
				t.Errorf("MedianMs(%v) = %d, want %d", tt.times, got, tt.want)
			}
		})
	}
}

func TestMedianMsDoesNotMutateInput(t *testing.T) {
	times := []int{300, 100, 200}
	MedianMs(times)
	if times[0] != 300 || times[1] != 100 || times[2] != 200 {
		t.Errorf("input mutated: %v", times)
	}
}

func TestOddOneOutDeck(t *testing.T) {
	deck := OddOneOutDeck(testRand())
	if len(deck) != len(puzzlePool) {
		t.Fatalf("deck size = %d, want %d", len(deck), len(puzzlePool))
	}
	for _, p := range deck {
		if len(p.Items) != 4 {
			t.Errorf("puzzle %v has %d items, want 4", p.Items, len(p.Items))
		}
		if p.OddIndex < 0 || p.OddIndex >= len(p.Items) {
			t.Errorf("puzzle %v odd index %d out of range", p.Items, p.OddIndex)
		}
		odd := p.Items[p.OddIndex]
		for i, item := range p.Items {
			if i != p.OddIndex && item == odd {
				t.Errorf("puzzle %v: odd item %q duplicated at %d", p.Items, odd, i)
			}
		}
	}
}

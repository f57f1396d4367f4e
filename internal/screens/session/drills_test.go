package session

import (
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/bramv/brainsparks/internal/difficulty"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestArithmeticDrillCountsAnswers(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierNormal).Arithmetic
	d := newArithmeticDrill(cfg, testRand())

	// Right answer.
	d.input.Model.SetValue(strconv.Itoa(d.question.Answer))
	d.submit()
	if d.correct != 1 || d.mistakes != 0 {
		t.Fatalf("after correct answer: correct=%d mistakes=%d", d.correct, d.mistakes)
	}
	if d.lastOutcome != flashGood {
		t.Error("expected good flash after correct answer")
	}

	// Wrong answer.
	d.input.Model.SetValue(strconv.Itoa(d.question.Answer + 1))
	d.submit()
	if d.correct != 1 || d.mistakes != 1 {
		t.Fatalf("after wrong answer: correct=%d mistakes=%d", d.correct, d.mistakes)
	}

	// Unparseable input is ignored.
	answered := d.answered
	d.input.Model.SetValue("")
	d.submit()
	if d.answered != answered {
		t.Error("empty input must not count as an attempt")
	}
}

func TestArithmeticDrillFinishes(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierNormal).Arithmetic
	d := newArithmeticDrill(cfg, testRand())

	if d.finished() {
		t.Fatal("fresh drill must not be finished")
	}

	d.secondsLeft = 0
	if !d.finished() {
		t.Error("drill must finish when the clock hits zero")
	}

	d.secondsLeft = 10
	d.answered = arithmeticTarget
	if !d.finished() {
		t.Error("drill must finish at the question target")
	}

	_, meta := d.result()
	if meta["timeLeft"] != 10 {
		t.Errorf("timeLeft = %v, want 10 when the target ends the drill early", meta["timeLeft"])
	}
}

func TestArithmeticDrillNoBonusOnTimeout(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierEasy).Arithmetic
	d := newArithmeticDrill(cfg, testRand())
	d.correct = 5
	d.secondsLeft = 0

	_, meta := d.result()
	if meta["timeLeft"] != 0 {
		t.Errorf("timeLeft = %v, want 0 when the clock ran out", meta["timeLeft"])
	}
}

func TestReactionDrillEarlyPressRearms(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierNormal).Reaction
	d := newReactionDrill(cfg, testRand())
	d.arm()
	seqBefore := d.seq

	rearm, finished := d.press(time.Now())
	if !rearm || finished {
		t.Fatalf("early press: rearm=%v finished=%v", rearm, finished)
	}
	if !d.early {
		t.Error("early flag must be set")
	}
	if len(d.times) != 0 {
		t.Error("early press must not record a time")
	}

	d.arm()
	if d.seq == seqBefore {
		t.Error("rearm must advance the sequence number")
	}
}

func TestReactionDrillRunsAllTrials(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierNormal).Reaction
	d := newReactionDrill(cfg, testRand())

	base := time.Now()
	for i := 0; i < cfg.Trials; i++ {
		d.arm()
		d.armed = true
		d.goAt = base
		rearm, finished := d.press(base.Add(200 * time.Millisecond))
		wantFinished := i == cfg.Trials-1
		if finished != wantFinished {
			t.Fatalf("trial %d: finished=%v, want %v", i, finished, wantFinished)
		}
		if rearm == wantFinished {
			t.Fatalf("trial %d: rearm=%v", i, rearm)
		}
	}

	if len(d.times) != cfg.Trials {
		t.Fatalf("recorded %d times, want %d", len(d.times), cfg.Trials)
	}
	_, meta := d.result()
	if meta["medianMs"] != 200 {
		t.Errorf("medianMs = %v, want 200", meta["medianMs"])
	}
}

func TestOddOneOutDrillRecyclesDeck(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierNormal).OddOneOut
	d := newOddOneOutDrill(cfg, testRand())

	deckLen := len(d.deck)
	for i := 0; i < deckLen+2; i++ {
		d.choice.Submitted = true
		d.choice.ChosenIndex = d.choice.CorrectIndex
		d.advance()
	}

	if d.correct != deckLen+2 {
		t.Errorf("correct = %d, want %d", d.correct, deckLen+2)
	}
	if d.index >= len(d.deck) {
		t.Errorf("index %d out of range after recycle", d.index)
	}
	if len(d.choice.Options) == 0 {
		t.Error("expected a fresh puzzle after recycling the deck")
	}
}

func TestMemoryDrillRevealCycle(t *testing.T) {
	cfg := difficulty.ForTier(difficulty.TierEasy).Memory
	d := newMemoryDrill(cfg, testRand())

	if !d.revealing {
		t.Fatal("drill must start in the reveal phase")
	}
	if d.revealDuration() != 2*time.Second {
		t.Errorf("reveal duration = %v, want 2s", d.revealDuration())
	}

	d.revealing = false
	d.input = newDigitInput()
	d.input.Model.SetValue(d.drill.Sequence)
	finished := d.submit()
	if finished {
		t.Fatal("drill must not finish after round one")
	}
	if !d.revealing {
		t.Error("correct recall must return to the reveal phase")
	}
	if d.lastOutcome != flashGood {
		t.Error("expected good flash")
	}
}

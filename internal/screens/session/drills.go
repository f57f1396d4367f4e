package session

import (
	"time"

	"github.com/bramv/brainsparks/internal/difficulty"
	"github.com/bramv/brainsparks/internal/games"
	"github.com/bramv/brainsparks/internal/history"
	"github.com/bramv/brainsparks/internal/scoring"
	"github.com/bramv/brainsparks/internal/ui/components"
)

// arithmeticTarget is the number of questions that ends the arithmetic
// drill early; the remaining seconds become the time bonus.
const arithmeticTarget = 20

type arithmeticDrill struct {
	gen      *games.ArithmeticGen
	question games.Question
	input    components.TextInput

	correct     int
	mistakes    int
	answered    int
	secondsLeft int
	lastOutcome outcomeFlash
}

// outcomeFlash is the one-line feedback under a drill: none, good, bad.
type outcomeFlash int

const (
	flashNone outcomeFlash = iota
	flashGood
	flashBad
)

func newArithmeticDrill(cfg difficulty.ArithmeticConfig, rnd games.Rand) *arithmeticDrill {
	gen := games.NewArithmeticGen(cfg, rnd)
	return &arithmeticDrill{
		gen:         gen,
		question:    gen.Next(),
		input:       components.NewTextInput("?", true, 6),
		secondsLeft: cfg.DurationSecs,
	}
}

func (d *arithmeticDrill) submit() {
	answer, err := d.input.NumericValue()
	if err != nil {
		return
	}
	d.answered++
	if answer == d.question.Answer {
		d.correct++
		d.lastOutcome = flashGood
	} else {
		d.mistakes++
		d.lastOutcome = flashBad
	}
	d.question = d.gen.Next()
	d.input = components.NewTextInput("?", true, 6)
}

func (d *arithmeticDrill) finished() bool {
	return d.secondsLeft <= 0 || d.answered >= arithmeticTarget
}

func (d *arithmeticDrill) result() (int, history.Meta) {
	timeLeft := 0
	if d.answered >= arithmeticTarget {
		timeLeft = d.secondsLeft
	}
	score := scoring.Arithmetic(d.correct, d.mistakes, float64(timeLeft))
	return score, history.Meta{
		"correct":  d.correct,
		"mistakes": d.mistakes,
		"timeLeft": timeLeft,
	}
}

type memoryDrill struct {
	drill       *games.MemoryDrill
	input       components.TextInput
	revealing   bool
	revealMs    int
	lastOutcome outcomeFlash
}

func newMemoryDrill(cfg difficulty.MemoryConfig, rnd games.Rand) *memoryDrill {
	d := &memoryDrill{
		drill:     games.NewMemoryDrill(cfg, rnd),
		revealing: true,
		revealMs:  cfg.RevealMs,
	}
	d.drill.Start()
	return d
}

func (d *memoryDrill) revealDuration() time.Duration {
	return time.Duration(d.revealMs) * time.Millisecond
}

// submit grades the recall and either moves to the next reveal or ends
// the drill.
func (d *memoryDrill) submit() (finished bool) {
	correct, finished := d.drill.Submit(d.input.Value())
	if correct {
		d.lastOutcome = flashGood
	} else {
		d.lastOutcome = flashBad
	}
	if !finished {
		d.revealing = true
	}
	return finished
}

func (d *memoryDrill) result() (int, history.Meta) {
	score := scoring.Memory(d.drill.Longest, d.drill.Accuracy())
	return score, history.Meta{
		"longest":  d.drill.Longest,
		"accuracy": d.drill.Accuracy(),
	}
}

type reactionDrill struct {
	cfg difficulty.ReactionConfig
	rnd games.Rand

	// seq invalidates stale go messages after an early press; early
	// flags that the last press came before the go signal.
	trial int
	seq   int
	armed bool
	early bool
	goAt  time.Time
	times []int
}

func newReactionDrill(cfg difficulty.ReactionConfig, rnd games.Rand) *reactionDrill {
	return &reactionDrill{cfg: cfg, rnd: rnd}
}

// arm schedules the next go signal and returns its delay.
func (d *reactionDrill) arm() time.Duration {
	d.seq++
	d.armed = false
	return games.TrialDelay(d.cfg, d.rnd)
}

// press handles the reaction key. It reports whether the drill is over.
func (d *reactionDrill) press(now time.Time) (rearm bool, finished bool) {
	if !d.armed {
		// Jumped the gun: restart this trial with a fresh delay.
		d.early = true
		return true, false
	}
	d.early = false
	d.armed = false
	d.times = append(d.times, int(now.Sub(d.goAt).Milliseconds()))
	d.trial++
	if d.trial >= d.cfg.Trials {
		return false, true
	}
	return true, false
}

func (d *reactionDrill) result() (int, history.Meta) {
	median := games.MedianMs(d.times)
	score := scoring.Reaction(float64(median))
	return score, history.Meta{
		"medianMs": median,
		"trials":   len(d.times),
	}
}

type oddOneOutDrill struct {
	rnd         games.Rand
	deck        []games.Puzzle
	index       int
	choice      components.MultiChoice
	correct     int
	mistakes    int
	secondsLeft int
	lastOutcome outcomeFlash
}

func newOddOneOutDrill(cfg difficulty.OddOneOutConfig, rnd games.Rand) *oddOneOutDrill {
	d := &oddOneOutDrill{
		rnd:         rnd,
		deck:        games.OddOneOutDeck(rnd),
		secondsLeft: cfg.DurationSecs,
	}
	d.choice = puzzleChoice(d.deck[0])
	return d
}

func puzzleChoice(p games.Puzzle) components.MultiChoice {
	return components.NewMultiChoice("Which one is different?", p.Items, p.OddIndex)
}

// advance grades the submitted choice and deals the next puzzle,
// reshuffling a fresh deck when this one is exhausted.
func (d *oddOneOutDrill) advance() {
	if d.choice.IsCorrect() {
		d.correct++
		d.lastOutcome = flashGood
	} else {
		d.mistakes++
		d.lastOutcome = flashBad
	}
	d.index++
	if d.index >= len(d.deck) {
		d.deck = games.OddOneOutDeck(d.rnd)
		d.index = 0
	}
	d.choice = puzzleChoice(d.deck[d.index])
}

func (d *oddOneOutDrill) result() (int, history.Meta) {
	// The deck recycles, so the drill always runs the clock down.
	score := scoring.OddOneOut(d.correct, d.mistakes, 0)
	return score, history.Meta{
		"correct":  d.correct,
		"mistakes": d.mistakes,
	}
}

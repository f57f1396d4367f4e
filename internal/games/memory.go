package games

import (
	"strings"

	"github.com/bramv/brainsparks/internal/difficulty"
)

// MemoryRounds is the fixed number of digit-span rounds per drill.
const MemoryRounds = 5

// MemoryDrill runs the digit-span game: show a sequence, hide it, compare
// the typed answer, grow the sequence by one each round.
type MemoryDrill struct {
	cfg difficulty.MemoryConfig
	rnd Rand

	Round    int // 1-based; 0 before Start
	Sequence string
	Correct  int
	Longest  int
	done     bool
}

// NewMemoryDrill creates a drill for the given tier config.
func NewMemoryDrill(cfg difficulty.MemoryConfig, rnd Rand) *MemoryDrill {
	return &MemoryDrill{cfg: cfg, rnd: rnd}
}

// Start begins round one and returns the sequence to reveal.
func (d *MemoryDrill) Start() string {
	d.Round = 1
	d.Sequence = d.generate(d.cfg.StartLength)
	return d.Sequence
}

// Submit grades the typed digits against the current sequence and advances
// to the next round. It reports whether the answer matched and whether the
// drill is over.
func (d *MemoryDrill) Submit(input string) (correct, finished bool) {
	correct = strings.TrimSpace(input) == d.Sequence
	if correct {
		d.Correct++
		if n := len(d.Sequence); n > d.Longest {
			d.Longest = n
		}
	}
	if d.Round >= MemoryRounds {
		d.done = true
		return correct, true
	}
	d.Round++
	d.Sequence = d.generate(d.cfg.StartLength + d.Round - 1)
	return correct, false
}

// Done reports whether all rounds have been played.
func (d *MemoryDrill) Done() bool { return d.done }

// Accuracy is the fraction of rounds answered correctly, in [0,1].
func (d *MemoryDrill) Accuracy() float64 {
	return float64(d.Correct) / float64(MemoryRounds)
}

func (d *MemoryDrill) generate(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteByte(byte('0' + d.rnd.IntN(10)))
	}
	return b.String()
}

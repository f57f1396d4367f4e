package games

import (
	"fmt"

	"github.com/bramv/brainsparks/internal/difficulty"
)

// Question is a single arithmetic prompt with its exact integer answer.
type Question struct {
	A, B   int
	Op     difficulty.Operator
	Answer int
}

// Text renders the prompt the way it is shown to the player.
func (q Question) Text() string {
	return fmt.Sprintf("%d %s %d = ?", q.A, q.Op, q.B)
}

// ArithmeticGen produces questions within a tier's numeric range and
// operator set.
type ArithmeticGen struct {
	cfg difficulty.ArithmeticConfig
	rnd Rand
}

// NewArithmeticGen creates a generator for the given tier config.
func NewArithmeticGen(cfg difficulty.ArithmeticConfig, rnd Rand) *ArithmeticGen {
	return &ArithmeticGen{cfg: cfg, rnd: rnd}
}

// Next returns a fresh question. Subtraction keeps results non-negative by
// swapping operands; division builds the dividend from a random quotient so
// every answer is exact.
func (g *ArithmeticGen) Next() Question {
	op := g.cfg.Operators[g.rnd.IntN(len(g.cfg.Operators))]
	a := intBetween(g.rnd, g.cfg.Min, g.cfg.Max)
	b := intBetween(g.rnd, g.cfg.Min, g.cfg.Max)

	switch op {
	case difficulty.OpSub:
		if b > a {
			a, b = b, a
		}
		return Question{A: a, B: b, Op: op, Answer: a - b}
	case difficulty.OpMul:
		return Question{A: a, B: b, Op: op, Answer: a * b}
	case difficulty.OpDiv:
		if b < 1 {
			b = 1
		}
		quotient := intBetween(g.rnd, g.cfg.Min, g.cfg.Max)
		return Question{A: quotient * b, B: b, Op: op, Answer: quotient}
	default:
		return Question{A: a, B: b, Op: difficulty.OpAdd, Answer: a + b}
	}
}

// Package games holds the pure interaction logic of the four mini-games:
// question generation, sequence building, trial timing and result
// accounting. Rendering and input live in the screens; randomness is
// injected so drills are deterministic under test.
package games

// Rand is the random source used by the generators. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// intBetween returns a uniform value in [min, max].
func intBetween(rnd Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rnd.IntN(max-min+1)
}

// shuffle permutes xs in place with a Fisher-Yates pass over rnd.
func shuffle[T any](rnd Rand, xs []T) {
	for i := len(xs) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

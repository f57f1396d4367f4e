// Package difficulty holds the static per-tier tuning for every test kind.
package difficulty

// Tier selects one of the preset difficulty configurations.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierNormal Tier = "normal"
	TierHard   Tier = "hard"
)

// AllTiers returns the tiers in ascending order of difficulty.
func AllTiers() []Tier {
	return []Tier{TierEasy, TierNormal, TierHard}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierEasy, TierNormal, TierHard:
		return true
	}
	return false
}

// Operator is an arithmetic operation available at a given tier.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// ArithmeticConfig tunes the timed arithmetic drill.
type ArithmeticConfig struct {
	DurationSecs int
	Min, Max     int
	Operators    []Operator
}

// MemoryConfig tunes the digit-span drill.
type MemoryConfig struct {
	RevealMs    int
	StartLength int
}

// ReactionConfig tunes the reaction-time drill.
type ReactionConfig struct {
	Trials     int
	MinDelayMs int
	MaxDelayMs int
}

// OddOneOutConfig tunes the visual odd-one-out drill.
type OddOneOutConfig struct {
	DurationSecs int
}

// Config bundles the per-kind parameters for one tier.
type Config struct {
	Arithmetic ArithmeticConfig
	Memory     MemoryConfig
	Reaction   ReactionConfig
	OddOneOut  OddOneOutConfig
}

var presets = map[Tier]Config{
	TierEasy: {
		Arithmetic: ArithmeticConfig{DurationSecs: 60, Min: 1, Max: 9, Operators: []Operator{OpAdd, OpSub}},
		Memory:     MemoryConfig{RevealMs: 2000, StartLength: 4},
		Reaction:   ReactionConfig{Trials: 5, MinDelayMs: 800, MaxDelayMs: 1600},
		OddOneOut:  OddOneOutConfig{DurationSecs: 90},
	},
	TierNormal: {
		Arithmetic: ArithmeticConfig{DurationSecs: 60, Min: 1, Max: 12, Operators: []Operator{OpAdd, OpSub, OpMul}},
		Memory:     MemoryConfig{RevealMs: 1800, StartLength: 5},
		Reaction:   ReactionConfig{Trials: 5, MinDelayMs: 700, MaxDelayMs: 1500},
		OddOneOut:  OddOneOutConfig{DurationSecs: 80},
	},
	TierHard: {
		Arithmetic: ArithmeticConfig{DurationSecs: 60, Min: 2, Max: 15, Operators: []Operator{OpAdd, OpSub, OpMul, OpDiv}},
		Memory:     MemoryConfig{RevealMs: 1600, StartLength: 6},
		Reaction:   ReactionConfig{Trials: 6, MinDelayMs: 600, MaxDelayMs: 1200},
		OddOneOut:  OddOneOutConfig{DurationSecs: 70},
	},
}

// ForTier returns the configuration for the given tier. Unknown tiers fall
// back to normal so a stale persisted value can never leave the app without
// a working preset.
func ForTier(t Tier) Config {
	if cfg, ok := presets[t]; ok {
		return cfg
	}
	return presets[TierNormal]
}

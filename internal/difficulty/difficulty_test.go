package difficulty

import "testing"

func TestForTierCoversAllTiers(t *testing.T) {
	for _, tier := range AllTiers() {
		cfg := ForTier(tier)
		if cfg.Arithmetic.DurationSecs <= 0 {
			t.Errorf("%s: arithmetic duration = %d, want > 0", tier, cfg.Arithmetic.DurationSecs)
		}
		if cfg.Arithmetic.Min >= cfg.Arithmetic.Max {
			t.Errorf("%s: range [%d,%d] is empty", tier, cfg.Arithmetic.Min, cfg.Arithmetic.Max)
		}
		if len(cfg.Arithmetic.Operators) == 0 {
			t.Errorf("%s: no operators", tier)
		}
		if cfg.Memory.StartLength <= 0 || cfg.Memory.RevealMs <= 0 {
			t.Errorf("%s: bad memory config %+v", tier, cfg.Memory)
		}
		if cfg.Reaction.MinDelayMs >= cfg.Reaction.MaxDelayMs {
			t.Errorf("%s: delay bounds [%d,%d] inverted", tier, cfg.Reaction.MinDelayMs, cfg.Reaction.MaxDelayMs)
		}
		if cfg.OddOneOut.DurationSecs <= 0 {
			t.Errorf("%s: odd-one-out duration = %d", tier, cfg.OddOneOut.DurationSecs)
		}
	}
}

func TestForTierUnknownFallsBackToNormal(t *testing.T) {
	got := ForTier(Tier("nightmare"))
	want := ForTier(TierNormal)
	if got.Memory.StartLength != want.Memory.StartLength {
		t.Errorf("unknown tier start length = %d, want %d", got.Memory.StartLength, want.Memory.StartLength)
	}
}

func TestTierValid(t *testing.T) {
	for _, tier := range AllTiers() {
		if !tier.Valid() {
			t.Errorf("%s reported invalid", tier)
		}
	}
	if Tier("brutal").Valid() {
		t.Error("unknown tier reported valid")
	}
}

func TestHarderTiersShortenReveal(t *testing.T) {
	prev := 0
	for _, tier := range AllTiers() {
		reveal := ForTier(tier).Memory.RevealMs
		if prev != 0 && reveal >= prev {
			t.Errorf("%s reveal %dms not shorter than previous %dms", tier, reveal, prev)
		}
		prev = reveal
	}
}

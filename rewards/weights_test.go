package rewards

import (
	"errors"
	"testing"
)

func TestDefaultWeightsTotal(t *testing.T) {
	w := DefaultWeights()
	for _, k := range Kinds() {
		if w.Get(k) != 0.1 {
			t.Errorf("default weight for %s is %f, want 0.1", k, w.Get(k))
		}
	}
	if len(w.Map()) != NumKinds {
		t.Errorf("weight map has %d entries, want %d", len(w.Map()), NumKinds)
	}
}

func TestMergeRejectsUnknownRule(t *testing.T) {
	_, err := DefaultWeights().Merge(map[string]float64{"prefer_nonsense": 0.5})
	if err == nil {
		t.Fatalf("expected error for unknown rule name")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error should wrap ErrConfiguration, got %s", err)
	}
}

func TestMergeRejectsNegativeWeight(t *testing.T) {
	_, err := DefaultWeights().Merge(map[string]float64{"prefer_tonic": -0.5})
	if err == nil {
		t.Fatalf("expected error for negative weight")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error should wrap ErrConfiguration, got %s", err)
	}
}

func TestMergeKeepsUnlistedWeights(t *testing.T) {
	w, err := DefaultWeights().Merge(map[string]float64{"prefer_contrary_motion": 2.0})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if w.Get(PreferContraryMotion) != 2.0 {
		t.Errorf("merged weight is %f, want 2.0", w.Get(PreferContraryMotion))
	}
	if w.Get(PreferTonic) != 0.1 {
		t.Errorf("unlisted weight changed to %f, want 0.1", w.Get(PreferTonic))
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("failed to parse %q: %s", k.String(), err)
		}
		if parsed != k {
			t.Errorf("parsed %q to %d, want %d", k.String(), parsed, k)
		}
	}
}

func TestAggregatorLinearity(t *testing.T) {
	agg := NewAggregator()
	ctx := testContext()
	action := []int{55, 50, 45}

	var zero Weights
	if got := agg.Score(ctx, action, zero); got != 0 {
		t.Errorf("zero weights should score 0, got %f", got)
	}

	one := zero.With(PreferContraryMotion, 1.0)
	two := zero.With(PreferContraryMotion, 2.0)
	if got, want := agg.Score(ctx, action, two), 2*agg.Score(ctx, action, one); got != want {
		t.Errorf("doubling a weight should double its contribution: %f, want %f", got, want)
	}

	// sum over rules matches the breakdown
	w := DefaultWeights()
	total := 0.0
	for name, score := range agg.Breakdown(ctx, action) {
		k, err := ParseKind(name)
		if err != nil {
			t.Fatalf("breakdown key %q: %s", name, err)
		}
		total += w.Get(k) * score
	}
	if got := agg.Score(ctx, action, w); !almostEqual(got, total) {
		t.Errorf("score %f does not match breakdown sum %f", got, total)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

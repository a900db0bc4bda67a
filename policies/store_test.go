package policies

import (
	"context"
	"testing"

	"github.com/harmonlab/harmony-rl/rl"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	cfg := DefaultQLearnerConfig(4)
	cfg.Seed = 3
	q := NewQLearner(cfg)
	obs := rl.Observation{0.5, 0.25}
	q.Table().Set(Fingerprint(obs), 2, 7.5)
	q.FinishEpisode(0, rl.NewTrace())

	if err := SaveLearner(ctx, store, "policy", q); err != nil {
		t.Fatalf("save failed: %s", err)
	}

	restored := NewQLearner(DefaultQLearnerConfig(4))
	if err := LoadLearner(ctx, store, "policy", restored); err != nil {
		t.Fatalf("load failed: %s", err)
	}
	if got := restored.Table().Get(Fingerprint(obs), 2, 0); got != 7.5 {
		t.Errorf("restored value %f, want 7.5", got)
	}
	if restored.Stats().Episodes != 1 {
		t.Errorf("restored episodes %d, want 1", restored.Stats().Episodes)
	}

	if err := LoadLearner(ctx, store, "missing", restored); err == nil {
		t.Errorf("loading a missing checkpoint should fail")
	}
}

func TestSaveLearnerRequiresCheckpointer(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if err := SaveLearner(context.Background(), store, "x", NewRandom(1)); err == nil {
		t.Errorf("saving a learner without snapshots should fail")
	}
}

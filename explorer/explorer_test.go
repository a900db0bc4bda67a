package explorer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harmonlab/harmony-rl/policies"
	"github.com/harmonlab/harmony-rl/rl"
)

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := policies.DefaultQLearnerConfig(4)
	cfg.Seed = 1
	q := policies.NewQLearner(cfg)
	obs := rl.Observation{0.5, 0.25}
	q.Table().Set(policies.Fingerprint(obs), 2, 1.5)
	snapshot, err := q.Snapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %s", err)
	}
	policyFile := filepath.Join(dir, "policy.json")
	if err := os.WriteFile(policyFile, snapshot, 0644); err != nil {
		t.Fatalf("write failed: %s", err)
	}

	trace := rl.NewTrace()
	trace.Append(rl.Transition{Step: 0, Obs: obs, Reward: 0.5})
	trace.Append(rl.Transition{Step: 1, Obs: rl.Observation{0.5, 0.5}, Reward: 0.25})
	bs, err := json.Marshal(trace)
	if err != nil {
		t.Fatalf("marshal failed: %s", err)
	}
	tracesFile := filepath.Join(dir, "traces.jsonl")
	if err := os.WriteFile(tracesFile, append(bs, '\n'), 0644); err != nil {
		t.Fatalf("write failed: %s", err)
	}
	return policyFile, tracesFile
}

func TestExplorerLoads(t *testing.T) {
	policyFile, tracesFile := writeFixtures(t)
	e, err := NewExplorer(policyFile, tracesFile)
	if err != nil {
		t.Fatalf("failed to load explorer: %s", err)
	}

	if e.Kind() != "qlearner" {
		t.Errorf("kind %q, want qlearner", e.Kind())
	}
	if len(e.Traces) != 1 {
		t.Fatalf("loaded %d traces, want 1", len(e.Traces))
	}
	if e.Traces[0].Len() != 2 {
		t.Errorf("trace has %d transitions, want 2", e.Traces[0].Len())
	}

	keys := e.Keys()
	if len(keys) != 1 {
		t.Fatalf("loaded %d policy keys, want 1", len(keys))
	}
	row, ok := e.Row(keys[0])
	if !ok || row[2] != 1.5 {
		t.Errorf("row %v (%v), want value 1.5 at slot 2", row, ok)
	}

	initial := e.InitialObservations()
	key := policies.Fingerprint(rl.Observation{0.5, 0.25})
	if initial[key] != 1 {
		t.Errorf("initial observation count %d, want 1", initial[key])
	}
}

func TestExplorerRejectsBadCheckpoint(t *testing.T) {
	dir := t.TempDir()
	policyFile := filepath.Join(dir, "policy.json")
	os.WriteFile(policyFile, []byte(`{"kind": "qlearner"}`), 0644)
	tracesFile := filepath.Join(dir, "traces.jsonl")
	os.WriteFile(tracesFile, []byte(""), 0644)

	if _, err := NewExplorer(policyFile, tracesFile); err == nil {
		t.Errorf("checkpoint without rows should fail to load")
	}
}

package policies

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harmonlab/harmony-rl/rl"
	"golang.org/x/exp/rand"
)

// QLearnerConfig holds the tabular learner's hyperparameters.
type QLearnerConfig struct {
	// Slots is the action space width, constant per environment
	// configuration.
	Slots        int     `json:"slots"`
	Alpha        float64 `json:"alpha"`
	Gamma        float64 `json:"gamma"`
	Epsilon      float64 `json:"epsilon"`
	EpsilonDecay float64 `json:"epsilon_decay"`
	EpsilonMin   float64 `json:"epsilon_min"`
	Seed         uint64  `json:"-"`
}

// DefaultQLearnerConfig mirrors the hyperparameters of the original
// tabular trainer.
func DefaultQLearnerConfig(slots int) QLearnerConfig {
	return QLearnerConfig{
		Slots:        slots,
		Alpha:        0.1,
		Gamma:        0.95,
		Epsilon:      1.0,
		EpsilonDecay: 0.995,
		EpsilonMin:   0.01,
	}
}

// QLearner is the tabular value learner: epsilon greedy during
// training with monotonically decaying epsilon, deterministic greedy
// selection at epsilon zero.
type QLearner struct {
	cfg     QLearnerConfig
	table   *Table
	epsilon float64
	stats   TrainingStats
	rng     *rand.Rand
}

var _ rl.Learner = &QLearner{}
var _ rl.Checkpointer = &QLearner{}

func NewQLearner(cfg QLearnerConfig) *QLearner {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &QLearner{
		cfg:     cfg,
		table:   NewTable(cfg.Slots),
		epsilon: cfg.Epsilon,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Epsilon reports the current exploration rate.
func (q *QLearner) Epsilon() float64 {
	return q.epsilon
}

// SetEpsilon overrides the exploration rate; zero makes selection
// fully deterministic for inference.
func (q *QLearner) SetEpsilon(eps float64) {
	q.epsilon = eps
}

// Stats returns the accumulated training metadata.
func (q *QLearner) Stats() TrainingStats {
	return q.stats
}

// Table exposes the value table read only, for the explorer.
func (q *QLearner) Table() *Table {
	return q.table
}

func (q *QLearner) SelectAction(obs rl.Observation, actions []rl.Action) (int, bool) {
	if len(actions) == 0 {
		return 0, false
	}
	if q.epsilon > 0 && q.rng.Float64() < q.epsilon {
		return q.rng.Intn(len(actions)), true
	}
	key := Fingerprint(obs)
	if _, ok := q.table.Peek(key); !ok {
		// unseen state, all values tie at zero
		q.table.Row(key)
	}
	slot, _ := q.table.MaxSlot(key, len(actions))
	return slot, true
}

// Learn applies the bootstrapped value difference update.
func (q *QLearner) Learn(exp rl.Experience) {
	key := Fingerprint(exp.Obs)
	cur := q.table.Get(key, exp.Slot, 0)
	maxNext := 0.0
	if !exp.Done {
		_, maxNext = q.table.MaxSlot(Fingerprint(exp.Next), q.cfg.Slots)
	}
	updated := cur + q.cfg.Alpha*(exp.Reward+q.cfg.Gamma*maxNext-cur)
	q.table.Set(key, exp.Slot, updated)
}

// FinishEpisode records stats and decays epsilon once per episode.
// The decay is monotone and floors at EpsilonMin.
func (q *QLearner) FinishEpisode(episode int, trace *rl.Trace) {
	q.stats.Record(trace.TotalReward())
	if q.epsilon > q.cfg.EpsilonMin {
		q.epsilon *= q.cfg.EpsilonDecay
		if q.epsilon < q.cfg.EpsilonMin {
			q.epsilon = q.cfg.EpsilonMin
		}
	}
}

func (q *QLearner) Reset() {
	q.table.Reset()
	q.epsilon = q.cfg.Epsilon
	q.stats = TrainingStats{}
}

type qSnapshot struct {
	Kind    string         `json:"kind"`
	Config  QLearnerConfig `json:"config"`
	Epsilon float64        `json:"epsilon"`
	Stats   TrainingStats  `json:"stats"`
	Table   *Table         `json:"table"`
}

const qSnapshotKind = "qlearner"

// Snapshot serializes the learned values and training metadata.
func (q *QLearner) Snapshot() ([]byte, error) {
	return json.Marshal(qSnapshot{
		Kind:    qSnapshotKind,
		Config:  q.cfg,
		Epsilon: q.epsilon,
		Stats:   q.stats,
		Table:   q.table,
	})
}

// Restore loads a snapshot. Action selection after a restore is
// identical to the saved learner's under the same epsilon.
func (q *QLearner) Restore(data []byte) error {
	var snap qSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Kind != qSnapshotKind {
		return fmt.Errorf("snapshot kind %q, want %q", snap.Kind, qSnapshotKind)
	}
	if snap.Table == nil {
		return fmt.Errorf("snapshot carries no table")
	}
	snap.Config.Seed = q.cfg.Seed
	q.cfg = snap.Config
	q.epsilon = snap.Epsilon
	q.stats = snap.Stats
	q.table = snap.Table
	return nil
}

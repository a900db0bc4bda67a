package policies

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harmonlab/harmony-rl/rl"
	"golang.org/x/exp/rand"
)

// ReinforceConfig holds the policy gradient learner's hyperparameters.
type ReinforceConfig struct {
	Slots int     `json:"slots"`
	Alpha float64 `json:"alpha"`
	Gamma float64 `json:"gamma"`
	// Temperature scales softmax sampling. Training typically runs at
	// 1.0; inference callers pick 0.1 (near greedy) to 2.0 (loose).
	Temperature float64 `json:"temperature"`
	Seed        uint64  `json:"-"`
}

func DefaultReinforceConfig(slots int) ReinforceConfig {
	return ReinforceConfig{
		Slots:       slots,
		Alpha:       0.05,
		Gamma:       0.95,
		Temperature: 1.0,
	}
}

// Reinforce is the policy gradient alternative to the tabular value
// learner: it keeps per state action preferences, samples through a
// temperature scaled softmax and updates preferences from complete
// episode returns.
type Reinforce struct {
	cfg         ReinforceConfig
	prefs       *Table
	temperature float64
	stats       TrainingStats
	rng         *rand.Rand
	// transitions of the in progress episode, cleared at episode end;
	// cancelled episodes never reach FinishEpisode so their steps are
	// discarded with the trace
	pending []rl.Experience
}

var _ rl.Learner = &Reinforce{}
var _ rl.Checkpointer = &Reinforce{}

func NewReinforce(cfg ReinforceConfig) *Reinforce {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Reinforce{
		cfg:         cfg,
		prefs:       NewTable(cfg.Slots),
		temperature: cfg.Temperature,
		rng:         rand.New(rand.NewSource(seed)),
		pending:     make([]rl.Experience, 0),
	}
}

// SetTemperature adjusts inference sampling sharpness. Zero selects
// greedily and deterministically.
func (r *Reinforce) SetTemperature(t float64) {
	r.temperature = t
}

func (r *Reinforce) Stats() TrainingStats {
	return r.stats
}

func (r *Reinforce) Table() *Table {
	return r.prefs
}

func (r *Reinforce) SelectAction(obs rl.Observation, actions []rl.Action) (int, bool) {
	if len(actions) == 0 {
		return 0, false
	}
	row := r.prefs.Row(Fingerprint(obs))
	values := row[:min(len(actions), len(row))]
	if r.temperature <= 0 {
		return Argmax(values), true
	}
	return SoftmaxSample(values, r.temperature, rand.NewSource(r.rng.Uint64()))
}

// Learn buffers the transition until the episode completes; REINFORCE
// updates need full returns.
func (r *Reinforce) Learn(exp rl.Experience) {
	r.pending = append(r.pending, exp)
}

// FinishEpisode walks the buffered episode backwards, accumulating
// discounted returns, and nudges preferences toward actions in
// proportion to their return.
func (r *Reinforce) FinishEpisode(episode int, trace *rl.Trace) {
	g := 0.0
	for i := len(r.pending) - 1; i >= 0; i-- {
		exp := r.pending[i]
		g = exp.Reward + r.cfg.Gamma*g

		key := Fingerprint(exp.Obs)
		row := r.prefs.Row(key)
		probs := SoftmaxProbs(row, r.cfg.Temperature)
		for slot := range row {
			if slot == exp.Slot {
				row[slot] += r.cfg.Alpha * g * (1 - probs[slot])
			} else {
				row[slot] -= r.cfg.Alpha * g * probs[slot]
			}
		}
	}
	r.pending = r.pending[:0]
	r.stats.Record(trace.TotalReward())
}

func (r *Reinforce) Reset() {
	r.prefs.Reset()
	r.pending = r.pending[:0]
	r.stats = TrainingStats{}
	r.temperature = r.cfg.Temperature
}

type reinforceSnapshot struct {
	Kind        string          `json:"kind"`
	Config      ReinforceConfig `json:"config"`
	Temperature float64         `json:"temperature"`
	Stats       TrainingStats   `json:"stats"`
	Prefs       *Table          `json:"prefs"`
}

const reinforceSnapshotKind = "reinforce"

func (r *Reinforce) Snapshot() ([]byte, error) {
	return json.Marshal(reinforceSnapshot{
		Kind:        reinforceSnapshotKind,
		Config:      r.cfg,
		Temperature: r.temperature,
		Stats:       r.stats,
		Prefs:       r.prefs,
	})
}

func (r *Reinforce) Restore(data []byte) error {
	var snap reinforceSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Kind != reinforceSnapshotKind {
		return fmt.Errorf("snapshot kind %q, want %q", snap.Kind, reinforceSnapshotKind)
	}
	if snap.Prefs == nil {
		return fmt.Errorf("snapshot carries no preference table")
	}
	snap.Config.Seed = r.cfg.Seed
	r.cfg = snap.Config
	r.temperature = snap.Temperature
	r.stats = snap.Stats
	r.prefs = snap.Prefs
	r.pending = r.pending[:0]
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

package policies

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/harmonlab/harmony-rl/rl"
)

// Random selects uniformly and never learns. It is the baseline for
// comparisons.
type Random struct {
	rng *rand.Rand
}

var _ rl.Learner = &Random{}

func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) SelectAction(obs rl.Observation, actions []rl.Action) (int, bool) {
	if len(actions) == 0 {
		return 0, false
	}
	return r.rng.Intn(len(actions)), true
}

func (r *Random) Learn(exp rl.Experience) {}

func (r *Random) FinishEpisode(episode int, trace *rl.Trace) {}

func (r *Random) Reset() {}

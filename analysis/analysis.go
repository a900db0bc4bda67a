// Package analysis turns training traces into datasets and plots for
// comparing learners and styles.
package analysis

import (
	"github.com/harmonlab/harmony-rl/music"
	"github.com/harmonlab/harmony-rl/policies"
	"github.com/harmonlab/harmony-rl/rl"
)

// RewardCurve collects the total reward of every episode. Its dataset
// is a []float64 with one entry per episode.
type RewardCurve struct {
	rewards []float64
}

var _ rl.Analyzer = &RewardCurve{}

func NewRewardCurve() *RewardCurve {
	return &RewardCurve{rewards: make([]float64, 0)}
}

func (r *RewardCurve) Analyze(run int, episode int, name string, trace *rl.Trace) {
	r.rewards = append(r.rewards, trace.TotalReward())
}

func (r *RewardCurve) DataSet() rl.DataSet {
	out := make([]float64, len(r.rewards))
	copy(out, r.rewards)
	return out
}

func (r *RewardCurve) Reset() {
	r.rewards = r.rewards[:0]
}

// Coverage counts unique observations seen so far, recorded once per
// episode. A flat curve means the learner stopped visiting new states.
type Coverage struct {
	seen   map[string]bool
	counts []int
}

var _ rl.Analyzer = &Coverage{}

func NewCoverage() *Coverage {
	return &Coverage{seen: make(map[string]bool), counts: make([]int, 0)}
}

func (c *Coverage) Analyze(run int, episode int, name string, trace *rl.Trace) {
	for j := 0; j < trace.Len(); j++ {
		t, _ := trace.Get(j)
		key := policies.Fingerprint(t.Obs)
		if _, ok := c.seen[key]; !ok {
			c.seen[key] = true
		}
	}
	c.counts = append(c.counts, len(c.seen))
}

func (c *Coverage) DataSet() rl.DataSet {
	out := make([]int, len(c.counts))
	copy(out, c.counts)
	return out
}

func (c *Coverage) Reset() {
	c.seen = make(map[string]bool)
	c.counts = c.counts[:0]
}

// MotionProfile is the fraction of melody/top-voice motion types in
// one episode.
type MotionProfile struct {
	Contrary float64 `json:"contrary"`
	Parallel float64 `json:"parallel"`
	Oblique  float64 `json:"oblique"`
}

// Motion classifies the motion between the melody and the top harmony
// voice at every step. Styles that reward contrary motion should show
// its fraction rise over training.
type Motion struct {
	profiles []MotionProfile
}

var _ rl.Analyzer = &Motion{}

func NewMotion() *Motion {
	return &Motion{profiles: make([]MotionProfile, 0)}
}

func (m *Motion) Analyze(run int, episode int, name string, trace *rl.Trace) {
	var profile MotionProfile
	classified := 0
	for j := 1; j < trace.Len(); j++ {
		prev, _ := trace.Get(j - 1)
		cur, _ := trace.Get(j)
		if len(prev.Info.WrittenPitches) == 0 || len(cur.Info.WrittenPitches) == 0 {
			continue
		}
		motion := music.ClassifyMotion(
			cur.Info.PrevMelodyPitch, cur.Info.MelodyPitch,
			prev.Info.WrittenPitches[0], cur.Info.WrittenPitches[0],
		)
		switch motion {
		case music.MotionContrary:
			profile.Contrary++
		case music.MotionParallel:
			profile.Parallel++
		case music.MotionOblique:
			profile.Oblique++
		}
		classified++
	}
	if classified > 0 {
		profile.Contrary /= float64(classified)
		profile.Parallel /= float64(classified)
		profile.Oblique /= float64(classified)
	}
	m.profiles = append(m.profiles, profile)
}

func (m *Motion) DataSet() rl.DataSet {
	out := make([]MotionProfile, len(m.profiles))
	copy(out, m.profiles)
	return out
}

func (m *Motion) Reset() {
	m.profiles = m.profiles[:0]
}

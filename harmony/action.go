package harmony

import (
	"strconv"
	"strings"

	"github.com/harmonlab/harmony-rl/music"
	"github.com/harmonlab/harmony-rl/rl"
)

// Action proposes one pitch per harmony voice for the current step.
type Action struct {
	Pitches []int
}

var _ rl.Action = &Action{}

func NewAction(pitches ...int) *Action {
	return &Action{Pitches: pitches}
}

func (a *Action) Hash() string {
	parts := make([]string, len(a.Pitches))
	for i, p := range a.Pitches {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// candidateActions enumerates the action space for a melody pitch: the
// cross product of per voice offsets, clamped into each voice's range.
// The slot order is deterministic so table rows index by it.
func candidateActions(cfg Config, melodyPitch int) []rl.Action {
	offsets := cfg.offsets()
	actions := make([]rl.Action, 0, cfg.ActionSlots())

	pitches := make([]int, len(offsets))
	var build func(voice int)
	build = func(voice int) {
		if voice == len(offsets) {
			a := &Action{Pitches: make([]int, len(pitches))}
			copy(a.Pitches, pitches)
			actions = append(actions, a)
			return
		}
		r := cfg.VoiceRanges[voice]
		for _, off := range offsets[voice] {
			pitches[voice] = music.ClampPitch(melodyPitch+off, r.Low, r.High)
			build(voice + 1)
		}
	}
	build(0)
	return actions
}

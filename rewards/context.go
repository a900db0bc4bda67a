package rewards

import "github.com/harmonlab/harmony-rl/music"

// NoPitch marks an absent previous pitch in a Context.
const NoPitch = -1

// Context is the read only view of the harmonization state that rules
// score against. The environment assembles one per step from the state
// before the candidate action is applied; rules never mutate it.
type Context struct {
	Tonic       int
	Scale       []int
	Step        int
	Horizon     int
	BeatsPerBar int

	// Melody is the melody pitch at the current step, PrevMelody the
	// pitch at the previous onset (NoPitch at step 0).
	Melody     int
	PrevMelody int
	// MelodyWindow holds up to the last four melody pitches before the
	// current step, most recent last.
	MelodyWindow []int

	// PrevHarmony holds the last written pitch per harmony voice
	// (NoPitch where a voice is still empty). HarmonyHistory holds up
	// to the last four pitches per harmony voice, most recent last.
	PrevHarmony    []int
	HarmonyHistory [][]int

	// StepDuration is the uniform note duration of one step, in beats.
	StepDuration float64
}

func (c *Context) scale() []int {
	if len(c.Scale) == 0 {
		return music.MajorScale
	}
	return c.Scale
}

func (c *Context) strongBeat() bool {
	bar := c.BeatsPerBar
	if bar <= 0 {
		bar = 4
	}
	return c.Step%bar == 0
}

// chordRoot derives a pitch class root from a set of sounding pitches,
// taking the lowest pitch as the bass.
func chordRoot(pitches []int) (int, bool) {
	lowest := 0
	found := false
	for _, p := range pitches {
		if p == NoPitch {
			continue
		}
		if !found || p < lowest {
			lowest = p
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return music.PitchClass(lowest), true
}

package harmony

import (
	"fmt"

	"github.com/harmonlab/harmony-rl/music"
	"github.com/harmonlab/harmony-rl/rewards"
)

// DefaultHorizon is the episode length when none is configured.
const DefaultHorizon = 32

// VoiceRange bounds the pitches a harmony voice may sound.
type VoiceRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

func (r VoiceRange) Contains(pitch int) bool {
	return pitch >= r.Low && pitch <= r.High
}

// Config describes one harmonization environment. Voice 0 is always
// the melody; VoiceRanges and candidate offsets apply to the harmony
// voices 1..NumVoices-1 in order.
type Config struct {
	NumVoices    int          `json:"num_voices"`
	Horizon      int          `json:"horizon"`
	Tonic        int          `json:"tonic"`
	Scale        []int        `json:"scale,omitempty"`
	VoiceRanges  []VoiceRange `json:"voice_ranges"`
	StepDuration float64      `json:"step_duration"`
	BeatsPerBar  int          `json:"beats_per_bar"`
	// RangePenalty is subtracted per voice whose proposed pitch lay
	// outside its range. Out of range actions are clamped and
	// penalized, never fatal.
	RangePenalty float64 `json:"range_penalty"`
	// Temperature for stochastic inference sampling, 0.1 to 2.0.
	Temperature float64 `json:"temperature"`
}

// satbRanges are the classic choir ranges for alto, tenor and bass.
// The soprano line is the melody and is not constrained.
var satbRanges = []VoiceRange{
	{Low: 55, High: 77}, // alto  G3..F5
	{Low: 48, High: 69}, // tenor C3..A4
	{Low: 40, High: 62}, // bass  E2..D4
}

// candidateOffsets are the per harmony voice pitch offsets, relative
// to the current melody note, that form the candidate action space.
// They follow the voicing tables of the four part harmonizer: thirds,
// fifths and fourths for the inner voices, octaves and compound
// intervals for the bass.
var candidateOffsets = [][]int{
	{-3, -4, -7, 5},      // alto
	{-7, -12, -15, -16},  // tenor
	{-12, -19, -24, -28}, // bass
}

// DefaultConfig returns an SATB style configuration for the given
// number of voices.
func DefaultConfig(numVoices int) Config {
	ranges := make([]VoiceRange, 0, numVoices-1)
	for i := 0; i < numVoices-1 && i < len(satbRanges); i++ {
		ranges = append(ranges, satbRanges[i])
	}
	return Config{
		NumVoices:    numVoices,
		Horizon:      DefaultHorizon,
		Tonic:        60, // C
		Scale:        music.MajorScale,
		VoiceRanges:  ranges,
		StepDuration: 0.25,
		BeatsPerBar:  4,
		RangePenalty: 1.0,
		Temperature:  1.0,
	}
}

// Validate fails fast on configuration problems, before any episode
// starts.
func (c Config) Validate() error {
	if c.NumVoices < 2 || c.NumVoices > 4 {
		return fmt.Errorf("%w: voice count %d outside 2..4", rewards.ErrConfiguration, c.NumVoices)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon %d must be positive", rewards.ErrConfiguration, c.Horizon)
	}
	if len(c.VoiceRanges) != c.NumVoices-1 {
		return fmt.Errorf("%w: %d voice ranges for %d harmony voices", rewards.ErrConfiguration, len(c.VoiceRanges), c.NumVoices-1)
	}
	for i, r := range c.VoiceRanges {
		if r.Low > r.High || r.Low < music.MinPitch || r.High > music.MaxPitch {
			return fmt.Errorf("%w: voice %d range [%d, %d] invalid", rewards.ErrConfiguration, i+1, r.Low, r.High)
		}
	}
	if c.Temperature != 0 && (c.Temperature < 0.1 || c.Temperature > 2.0) {
		return fmt.Errorf("%w: temperature %f outside 0.1..2.0", rewards.ErrConfiguration, c.Temperature)
	}
	return nil
}

// InferenceTemperature resolves the sampling temperature for an
// inference run. A negative override falls back to the configured
// value, zero and above is used as given.
func (c Config) InferenceTemperature(override float64) float64 {
	if override < 0 {
		return c.Temperature
	}
	return override
}

// numHarmonyVoices is NumVoices minus the melody.
func (c Config) numHarmonyVoices() int {
	return c.NumVoices - 1
}

// offsets returns the candidate offset table for this configuration's
// harmony voices.
func (c Config) offsets() [][]int {
	return candidateOffsets[:c.numHarmonyVoices()]
}

// ActionSlots is the size of the candidate action space, constant for
// a configuration. Value tables size their rows by it.
func (c Config) ActionSlots() int {
	slots := 1
	for _, offs := range c.offsets() {
		slots *= len(offs)
	}
	return slots
}

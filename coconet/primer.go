package coconet

import (
	"github.com/harmonlab/harmony-rl/music"
)

// PrimerVoices converts a service response into voices suitable for
// priming a harmonization episode. Timing follows the melody spacing so
// primed notes line up with the agent's own.
func PrimerVoices(resp *HarmonizeResponse, spacing float64) []*music.Voice {
	voices := make([]*music.Voice, len(resp.Voices))
	for i, pitches := range resp.Voices {
		v := music.NewVoice()
		for j, pitch := range pitches {
			v.Append(music.Note{
				Pitch:    pitch,
				Start:    float64(j) * spacing,
				Duration: spacing,
				Velocity: 80,
			})
		}
		voices[i] = v
	}
	return voices
}

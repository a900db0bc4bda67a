package policies

import (
	"strconv"
	"strings"

	"github.com/harmonlab/harmony-rl/rl"
)

// Fingerprint discretizes an observation into a fixed width hashable
// key. Components are normalized to the MIDI range, so scaling back by
// 127 and rounding recovers integer pitches exactly: neighbouring
// semitones stay distinct while float noise collapses.
func Fingerprint(obs rl.Observation) string {
	var b strings.Builder
	b.Grow(len(obs) * 6)
	for i, v := range obs {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatInt(int64(v*127+0.5), 10))
	}
	return b.String()
}

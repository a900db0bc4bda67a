package rewards

import "fmt"

// Kind identifies one reward rule in the catalog. The set is closed:
// weights are stored as a total mapping over all kinds and rule names
// are resolved against this enum at configuration time.
type Kind int

const (
	AvoidRepetition Kind = iota
	PreferArpeggios
	PreferScaleDegrees
	PreferTonic
	PreferLeadingTone
	PreferResolution
	PreferCommonChords
	PreferCommonProgressions
	PreferVoiceLeading
	PreferHarmonicCoherence
	PreferStrongBeats
	PreferWeakBeats
	PreferCommonRhythms
	PreferCommonDurations
	PreferCommonPitches
	PreferCommonIntervals
	PreferCounterpoint
	PreferFormalCoherence
	PreferStyleConsistency
	PreferContraryMotion
	PenalizeParallelMotion

	numKinds
)

// NumKinds is the size of the reward catalog.
const NumKinds = int(numKinds)

var kindNames = [numKinds]string{
	AvoidRepetition:          "avoid_repetition",
	PreferArpeggios:          "prefer_arpeggios",
	PreferScaleDegrees:       "prefer_scale_degrees",
	PreferTonic:              "prefer_tonic",
	PreferLeadingTone:        "prefer_leading_tone",
	PreferResolution:         "prefer_resolution",
	PreferCommonChords:       "prefer_common_chords",
	PreferCommonProgressions: "prefer_common_progressions",
	PreferVoiceLeading:       "prefer_voice_leading",
	PreferHarmonicCoherence:  "prefer_common_harmony",
	PreferStrongBeats:        "prefer_strong_beats",
	PreferWeakBeats:          "prefer_weak_beats",
	PreferCommonRhythms:      "prefer_common_rhythms",
	PreferCommonDurations:    "prefer_common_durations",
	PreferCommonPitches:      "prefer_common_pitches",
	PreferCommonIntervals:    "prefer_common_intervals",
	PreferCounterpoint:       "prefer_common_counterpoint",
	PreferFormalCoherence:    "prefer_common_form",
	PreferStyleConsistency:   "prefer_common_style",
	PreferContraryMotion:     "prefer_contrary_motion",
	PenalizeParallelMotion:   "penalize_parallel_motion",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a rule name to its Kind. Unknown names are a
// configuration error.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown reward rule %q", ErrConfiguration, name)
}

// Kinds lists every catalog kind in enum order.
func Kinds() []Kind {
	out := make([]Kind, NumKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

package music

// Scale degrees as pitch class offsets from the tonic.
var (
	MajorScale = []int{0, 2, 4, 5, 7, 9, 11}
	MinorScale = []int{0, 2, 3, 5, 7, 8, 10}
)

// Consonant and dissonant interval classes in semitones mod 12.
// The split matches common practice: unison, thirds, perfect fourth
// and fifth, minor sixth and octave are consonant.
var (
	ConsonantIntervals = map[int]bool{0: true, 3: true, 4: true, 7: true, 8: true}
	DissonantIntervals = map[int]bool{1: true, 2: true, 5: true, 6: true, 9: true, 10: true, 11: true}
)

// PitchClass reduces a MIDI pitch to its class 0..11.
func PitchClass(pitch int) int {
	pc := pitch % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// IntervalClass is the undirected interval between two pitches mod 12.
func IntervalClass(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d % 12
}

// IsConsonant reports whether the interval between two pitches falls
// in the consonant set.
func IsConsonant(a, b int) bool {
	return ConsonantIntervals[IntervalClass(a, b)]
}

// InScale reports whether pitch belongs to the scale rooted at tonic.
func InScale(pitch, tonic int, scale []int) bool {
	rel := PitchClass(pitch - tonic)
	for _, d := range scale {
		if rel == d {
			return true
		}
	}
	return false
}

// ScaleDegree returns the 1-based degree of pitch in the scale rooted
// at tonic, or 0 if the pitch is not in the scale.
func ScaleDegree(pitch, tonic int, scale []int) int {
	rel := PitchClass(pitch - tonic)
	for i, d := range scale {
		if rel == d {
			return i + 1
		}
	}
	return 0
}

// Motion is the relative movement of two voices between consecutive onsets.
type Motion int

const (
	MotionNone Motion = iota
	MotionContrary
	MotionParallel
	MotionOblique
)

func (m Motion) String() string {
	switch m {
	case MotionContrary:
		return "contrary"
	case MotionParallel:
		return "parallel"
	case MotionOblique:
		return "oblique"
	}
	return "none"
}

// ClassifyMotion classifies the joint movement of the melody and one
// harmony voice from their directional deltas. Both voices static is
// MotionNone, exactly one static is oblique, same sign is parallel and
// opposite sign is contrary.
func ClassifyMotion(prevMelody, melody, prevHarmony, harmony int) Motion {
	md := melody - prevMelody
	hd := harmony - prevHarmony
	switch {
	case md == 0 && hd == 0:
		return MotionNone
	case md == 0 || hd == 0:
		return MotionOblique
	case (md > 0) == (hd > 0):
		return MotionParallel
	default:
		return MotionContrary
	}
}

// ChordQuality of a pitch set, reduced to classes.
type ChordQuality int

const (
	ChordUnknown ChordQuality = iota
	ChordMajor
	ChordMinor
	ChordDiminished
)

// QualityOf inspects the sorted pitch classes of a chord and reports a
// recognized triad quality. Works on any inversion by testing each
// member as a candidate root.
func QualityOf(pitches []int) ChordQuality {
	if len(pitches) < 3 {
		return ChordUnknown
	}
	classes := make(map[int]bool)
	for _, p := range pitches {
		classes[PitchClass(p)] = true
	}
	for root := range classes {
		third := classes[(root+4)%12]
		minorThird := classes[(root+3)%12]
		fifth := classes[(root+7)%12]
		dimFifth := classes[(root+6)%12]
		switch {
		case third && fifth:
			return ChordMajor
		case minorThird && fifth:
			return ChordMinor
		case minorThird && dimFifth:
			return ChordDiminished
		}
	}
	return ChordUnknown
}

// ClampPitch restricts a pitch to the inclusive range [lo, hi].
func ClampPitch(pitch, lo, hi int) int {
	if pitch < lo {
		return lo
	}
	if pitch > hi {
		return hi
	}
	return pitch
}

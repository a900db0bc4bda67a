package music

import "fmt"

// MIDI pitch bounds of the 88-key piano range used throughout.
const (
	MinPitch = 21  // A0
	MaxPitch = 108 // C8
)

// Note is a single timed pitch. Notes are value types and are never
// modified once appended to a Voice.
type Note struct {
	Pitch    int     `json:"pitch"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Velocity int     `json:"velocity"`
}

// Voice is an ordered sequence of notes for one part.
// Onsets are non decreasing within a voice.
type Voice struct {
	Notes []Note `json:"notes"`
}

func NewVoice() *Voice {
	return &Voice{Notes: make([]Note, 0)}
}

// Append adds a note to the voice. Returns an error if the onset
// would move backwards in time.
func (v *Voice) Append(n Note) error {
	if l := len(v.Notes); l > 0 && n.Start < v.Notes[l-1].Start {
		return fmt.Errorf("onset %f before previous onset %f", n.Start, v.Notes[l-1].Start)
	}
	v.Notes = append(v.Notes, n)
	return nil
}

func (v *Voice) Len() int {
	return len(v.Notes)
}

// Last returns the most recent note, if any.
func (v *Voice) Last() (Note, bool) {
	if len(v.Notes) == 0 {
		return Note{}, false
	}
	return v.Notes[len(v.Notes)-1], true
}

// At returns the i-th note of the voice.
func (v *Voice) At(i int) (Note, bool) {
	if i < 0 || i >= len(v.Notes) {
		return Note{}, false
	}
	return v.Notes[i], true
}

// Pitches returns the pitch sequence of the voice.
func (v *Voice) Pitches() []int {
	ps := make([]int, len(v.Notes))
	for i, n := range v.Notes {
		ps[i] = n.Pitch
	}
	return ps
}

func (v *Voice) Copy() *Voice {
	c := &Voice{Notes: make([]Note, len(v.Notes))}
	copy(c.Notes, v.Notes)
	return c
}

// Sequence is a complete multi voice score. Voice 0 is the melody.
type Sequence struct {
	Voices []*Voice `json:"voices"`
}

func NewSequence(numVoices int) *Sequence {
	s := &Sequence{Voices: make([]*Voice, numVoices)}
	for i := range s.Voices {
		s.Voices[i] = NewVoice()
	}
	return s
}

func (s *Sequence) NumVoices() int {
	return len(s.Voices)
}

func (s *Sequence) Copy() *Sequence {
	c := &Sequence{Voices: make([]*Voice, len(s.Voices))}
	for i, v := range s.Voices {
		c.Voices[i] = v.Copy()
	}
	return c
}

// MelodyVoice builds a voice from a list of pitches with uniform spacing.
func MelodyVoice(pitches []int, spacing float64, velocity int) *Voice {
	v := NewVoice()
	for i, p := range pitches {
		v.Notes = append(v.Notes, Note{
			Pitch:    p,
			Start:    float64(i) * spacing,
			Duration: spacing,
			Velocity: velocity,
		})
	}
	return v
}

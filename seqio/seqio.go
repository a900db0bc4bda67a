// Package seqio reads and writes scores as timed note JSON. The format
// is the interchange surface for harmonization output: a list of
// voices, each a list of notes with pitch, onset, duration and
// velocity.
package seqio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/harmonlab/harmony-rl/music"
)

type fileFormat struct {
	Voices [][]music.Note `json:"voices"`
}

// Encode serializes a sequence to timed note JSON.
func Encode(seq *music.Sequence) ([]byte, error) {
	if seq == nil || len(seq.Voices) == 0 {
		return nil, fmt.Errorf("empty sequence")
	}
	out := fileFormat{Voices: make([][]music.Note, len(seq.Voices))}
	for i, v := range seq.Voices {
		out.Voices[i] = v.Notes
	}
	return json.MarshalIndent(out, "", "  ")
}

// Decode parses timed note JSON into a sequence, validating pitches
// and onset ordering.
func Decode(data []byte) (*music.Sequence, error) {
	var in fileFormat
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("failed to parse score: %s", err)
	}
	if len(in.Voices) == 0 {
		return nil, fmt.Errorf("score has no voices")
	}
	seq := &music.Sequence{Voices: make([]*music.Voice, len(in.Voices))}
	for i, notes := range in.Voices {
		v := music.NewVoice()
		for j, n := range notes {
			if n.Pitch < music.MinPitch || n.Pitch > music.MaxPitch {
				return nil, fmt.Errorf("voice %d note %d: pitch %d outside piano range", i, j, n.Pitch)
			}
			if err := v.Append(n); err != nil {
				return nil, fmt.Errorf("voice %d note %d: %s", i, j, err)
			}
		}
		seq.Voices[i] = v
	}
	return seq, nil
}

// WriteFile encodes a sequence and writes it to path.
func WriteFile(path string, seq *music.Sequence) error {
	data, err := Encode(seq)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads and decodes the score at path.
func ReadFile(path string) (*music.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// ReadMelody reads a score and returns its melody voice, for feeding
// saved material back into training.
func ReadMelody(path string) (*music.Voice, error) {
	seq, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seq.Voices[0], nil
}

package coconet

import "testing"

func TestPrimerVoices(t *testing.T) {
	resp := &HarmonizeResponse{Voices: [][]int{
		{57, 59, 60},
		{48, 50, 52},
	}}
	voices := PrimerVoices(resp, 0.25)
	if len(voices) != 2 {
		t.Fatalf("got %d voices, want 2", len(voices))
	}
	for v, voice := range voices {
		if voice.Len() != 3 {
			t.Fatalf("voice %d has %d notes, want 3", v, voice.Len())
		}
	}
	n, _ := voices[1].At(2)
	if n.Pitch != 52 || n.Start != 0.5 || n.Duration != 0.25 {
		t.Errorf("note %+v, want pitch 52 at 0.5 for 0.25", n)
	}
}

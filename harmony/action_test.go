package harmony

import (
	"testing"
)

func TestCandidateActionsDeterministic(t *testing.T) {
	cfg := DefaultConfig(4)
	first := candidateActions(cfg, 60)
	second := candidateActions(cfg, 60)
	if len(first) != cfg.ActionSlots() {
		t.Fatalf("candidate count %d, want %d", len(first), cfg.ActionSlots())
	}
	for i := range first {
		if first[i].Hash() != second[i].Hash() {
			t.Errorf("slot %d differs between enumerations: %s vs %s", i, first[i].Hash(), second[i].Hash())
		}
	}
}

func TestCandidateActionsWithinRanges(t *testing.T) {
	cfg := DefaultConfig(4)
	for _, melodyPitch := range []int{40, 60, 72, 100} {
		for _, a := range candidateActions(cfg, melodyPitch) {
			action := a.(*Action)
			if len(action.Pitches) != cfg.NumVoices-1 {
				t.Fatalf("action has %d pitches, want %d", len(action.Pitches), cfg.NumVoices-1)
			}
			for v, pitch := range action.Pitches {
				r := cfg.VoiceRanges[v]
				if !r.Contains(pitch) {
					t.Errorf("melody %d voice %d: pitch %d outside [%d, %d]", melodyPitch, v, pitch, r.Low, r.High)
				}
			}
		}
	}
}

func TestActionSlotsConstant(t *testing.T) {
	cfg := DefaultConfig(4)
	want := cfg.ActionSlots()
	for _, melodyPitch := range []int{30, 60, 90} {
		if got := len(candidateActions(cfg, melodyPitch)); got != want {
			t.Errorf("melody %d: %d candidates, want constant %d", melodyPitch, got, want)
		}
	}
	if got := DefaultConfig(2).ActionSlots(); got != 4 {
		t.Errorf("two voice action space %d, want 4", got)
	}
	if got := DefaultConfig(4).ActionSlots(); got != 64 {
		t.Errorf("four voice action space %d, want 64", got)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig(4).Validate(); err != nil {
		t.Errorf("default config should validate: %s", err)
	}
	bad := DefaultConfig(4)
	bad.NumVoices = 5
	if err := bad.Validate(); err == nil {
		t.Errorf("five voices should fail validation")
	}
	bad = DefaultConfig(4)
	bad.Horizon = 0
	if err := bad.Validate(); err == nil {
		t.Errorf("zero horizon should fail validation")
	}
	bad = DefaultConfig(4)
	bad.VoiceRanges = bad.VoiceRanges[:1]
	if err := bad.Validate(); err == nil {
		t.Errorf("missing voice ranges should fail validation")
	}
	bad = DefaultConfig(4)
	bad.Temperature = 5.0
	if err := bad.Validate(); err == nil {
		t.Errorf("temperature 5.0 should fail validation")
	}
}

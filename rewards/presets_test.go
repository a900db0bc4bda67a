package rewards

import (
	"errors"
	"testing"
)

// every registered preset must resolve against the catalog, otherwise
// PresetWeights panics at runtime
func TestPresetsResolve(t *testing.T) {
	for _, name := range StyleNames() {
		w, err := PresetWeights(name)
		if err != nil {
			t.Fatalf("preset %q failed to resolve: %s", name, err)
		}
		for _, k := range Kinds() {
			if w.Get(k) < 0 {
				t.Errorf("preset %q has negative weight for %s", name, k)
			}
		}
	}
}

func TestPresetOverlaysDefaults(t *testing.T) {
	w, err := PresetWeights("classical")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if w.Get(PreferContraryMotion) != 0.2 {
		t.Errorf("classical contrary motion weight %f, want 0.2", w.Get(PreferContraryMotion))
	}
	// rules the preset does not mention keep the defaults, not zero
	if w.Get(AvoidRepetition) != 0.1 {
		t.Errorf("unmentioned rule weight %f, want default 0.1", w.Get(AvoidRepetition))
	}
}

func TestPopToleratesParallelMotion(t *testing.T) {
	pop, err := PresetWeights("pop")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if pop.Get(PenalizeParallelMotion) != 0 {
		t.Errorf("pop should zero the parallel motion penalty, got %f", pop.Get(PenalizeParallelMotion))
	}
	classical, _ := PresetWeights("classical")
	if classical.Get(PenalizeParallelMotion) == 0 {
		t.Errorf("classical should keep a parallel motion penalty")
	}
}

func TestUnknownStyle(t *testing.T) {
	_, err := PresetWeights("grunge")
	if err == nil {
		t.Fatalf("expected error for unknown style")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("error should wrap ErrConfiguration, got %s", err)
	}
}

func TestConfigResolveWithOverrides(t *testing.T) {
	w, err := Config{
		Style:     "jazz",
		Overrides: map[string]float64{"prefer_arpeggios": 0.9},
	}.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if w.Get(PreferArpeggios) != 0.9 {
		t.Errorf("override lost: %f, want 0.9", w.Get(PreferArpeggios))
	}
	if w.Get(PreferCommonPitches) != 0.2 {
		t.Errorf("preset value lost: %f, want 0.2", w.Get(PreferCommonPitches))
	}
}

func TestStyleManagerSwitching(t *testing.T) {
	m, err := NewStyleManager(Config{Style: "classical"})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if m.Style() != "classical" {
		t.Errorf("style %q, want classical", m.Style())
	}
	before := m.Active()

	if err := m.SetStyle("pop"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if m.Active() == before {
		t.Errorf("switching style should change the active weights")
	}

	if err := m.SetStyle("grunge"); err == nil {
		t.Errorf("expected error switching to an unknown style")
	}
	if m.Style() != "pop" {
		t.Errorf("failed switch should not change the active style, got %q", m.Style())
	}

	if err := m.SetWeights(map[string]float64{"prefer_tonic": 0.7}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if m.Style() != "custom" {
		t.Errorf("style after explicit weights %q, want custom", m.Style())
	}
	if m.Active().Get(PreferTonic) != 0.7 {
		t.Errorf("explicit weight lost: %f, want 0.7", m.Active().Get(PreferTonic))
	}
}

package policies

import (
	"testing"

	"github.com/harmonlab/harmony-rl/rl"
)

func TestFingerprintStable(t *testing.T) {
	obs := rl.Observation{60.0 / 127, 62.0 / 127, 0.5}
	if Fingerprint(obs) != Fingerprint(obs.Copy()) {
		t.Errorf("equal observations should fingerprint identically")
	}
}

func TestFingerprintSeparatesSemitones(t *testing.T) {
	a := rl.Observation{60.0 / 127}
	b := rl.Observation{61.0 / 127}
	if Fingerprint(a) == Fingerprint(b) {
		t.Errorf("neighbouring semitones collapsed to %q", Fingerprint(a))
	}
}

func TestFingerprintCollapsesNoise(t *testing.T) {
	a := rl.Observation{60.0 / 127}
	b := rl.Observation{60.0/127 + 1e-9}
	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("float noise should collapse: %q vs %q", Fingerprint(a), Fingerprint(b))
	}
}

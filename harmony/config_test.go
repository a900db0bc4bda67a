package harmony

import "testing"

func TestInferenceTemperature(t *testing.T) {
	cfg := DefaultConfig(4)

	if got := cfg.InferenceTemperature(-1); got != cfg.Temperature {
		t.Errorf("negative override resolved to %f, want the configured %f", got, cfg.Temperature)
	}
	if got := cfg.InferenceTemperature(0); got != 0 {
		t.Errorf("explicit greedy override resolved to %f, want 0", got)
	}
	if got := cfg.InferenceTemperature(0.5); got != 0.5 {
		t.Errorf("override resolved to %f, want 0.5", got)
	}
}

func TestConfigValidateTemperature(t *testing.T) {
	cfg := DefaultConfig(4)
	cfg.Temperature = 5.0
	if err := cfg.Validate(); err == nil {
		t.Errorf("temperature outside 0.1..2.0 should fail validation")
	}
	cfg.Temperature = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("greedy temperature should validate, got: %s", err)
	}
}

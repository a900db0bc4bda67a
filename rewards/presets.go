package rewards

import (
	"fmt"
	"sort"
)

// stylePresets are the registered named weightings. Each preset is an
// overlay on the uniform defaults, following the original preset
// tables: classical leans on harmony and counterpoint, jazz on
// arpeggios and interval color, pop on familiar pitches and chords
// with parallel motion tolerated, baroque on counterpoint and form.
var stylePresets = map[string]map[string]float64{
	"classical": {
		"prefer_common_chords":       0.2,
		"prefer_common_progressions": 0.2,
		"prefer_voice_leading":       0.2,
		"prefer_common_harmony":      0.2,
		"prefer_common_counterpoint": 0.2,
		"prefer_contrary_motion":     0.2,
	},
	"jazz": {
		"prefer_arpeggios":           0.2,
		"prefer_common_pitches":      0.2,
		"prefer_common_intervals":    0.2,
		"prefer_common_chords":       0.2,
		"prefer_common_progressions": 0.2,
		"penalize_parallel_motion":   0.05,
	},
	"pop": {
		"prefer_common_pitches":      0.3,
		"prefer_common_chords":       0.3,
		"prefer_common_progressions": 0.3,
		"prefer_common_rhythms":      0.1,
		"penalize_parallel_motion":   0.0,
	},
	"baroque": {
		"prefer_common_counterpoint": 0.3,
		"prefer_voice_leading":       0.3,
		"prefer_common_harmony":      0.2,
		"prefer_common_form":         0.2,
		"prefer_leading_tone":        0.2,
	},
}

// StyleNames lists the registered presets.
func StyleNames() []string {
	names := make([]string, 0, len(stylePresets))
	for name := range stylePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetWeights resolves a style name to its full weight vector.
func PresetWeights(style string) (Weights, error) {
	overlay, ok := stylePresets[style]
	if !ok {
		return Weights{}, fmt.Errorf("%w: unknown style %q", ErrConfiguration, style)
	}
	w, err := DefaultWeights().Merge(overlay)
	if err != nil {
		// presets are validated by TestPresetsResolve, a failure here
		// is a programming error
		panic(err)
	}
	return w, nil
}

// Config is the user facing reward configuration: a style preset,
// optionally overlaid with explicit per rule weights. Unspecified
// rules keep the preset's values, never zero.
type Config struct {
	Style     string             `json:"style"`
	Overrides map[string]float64 `json:"overrides,omitempty"`
}

// Resolve validates the configuration against the catalog and returns
// the effective weights.
func (c Config) Resolve() (Weights, error) {
	base := DefaultWeights()
	if c.Style != "" {
		var err error
		base, err = PresetWeights(c.Style)
		if err != nil {
			return Weights{}, err
		}
	}
	if len(c.Overrides) == 0 {
		return base, nil
	}
	return base.Merge(c.Overrides)
}

// StyleManager holds the preset registry view plus the weights in
// effect for a session. It is an explicit value handed to whoever
// scores, not process global state. Switching style mid training takes
// effect on the next scored step and never rescores recorded steps.
type StyleManager struct {
	active Weights
	style  string
}

// NewStyleManager resolves the initial configuration.
func NewStyleManager(cfg Config) (*StyleManager, error) {
	w, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	name := cfg.Style
	if name == "" {
		name = "default"
	}
	return &StyleManager{active: w, style: name}, nil
}

// Active returns the weights currently in effect.
func (m *StyleManager) Active() Weights {
	return m.active
}

// Style returns the name of the active preset ("default" or "custom"
// when no preset is active).
func (m *StyleManager) Style() string {
	return m.style
}

// SetStyle switches to a registered preset.
func (m *StyleManager) SetStyle(style string) error {
	w, err := PresetWeights(style)
	if err != nil {
		return err
	}
	m.active = w
	m.style = style
	return nil
}

// SetWeights overlays explicit weights on the active vector.
func (m *StyleManager) SetWeights(overlay map[string]float64) error {
	w, err := m.active.Merge(overlay)
	if err != nil {
		return err
	}
	m.active = w
	m.style = "custom"
	return nil
}

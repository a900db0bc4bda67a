package rewards

import (
	"math"
	"testing"

	"github.com/harmonlab/harmony-rl/music"
)

func testContext() *Context {
	return &Context{
		Tonic:        60,
		Scale:        music.MajorScale,
		Step:         4,
		Horizon:      32,
		BeatsPerBar:  4,
		Melody:       64,
		PrevMelody:   62,
		MelodyWindow: []int{60, 62},
		PrevHarmony:  []int{57, 52, 48},
		HarmonyHistory: [][]int{
			{60, 57},
			{55, 52},
			{48, 48},
		},
		StepDuration: 0.25,
	}
}

// every rule stays within the clip bounds on a spread of contexts and
// actions, including degenerate ones
func TestRuleBounds(t *testing.T) {
	contexts := []*Context{
		testContext(),
		{Tonic: 60, Melody: 60, PrevMelody: NoPitch, Horizon: 32, StepDuration: 0.25},
		{Tonic: 69, Scale: music.MinorScale, Step: 31, Horizon: 32, Melody: 81, PrevMelody: 80,
			PrevHarmony: []int{NoPitch, NoPitch}, HarmonyHistory: [][]int{{}, {}}, StepDuration: 3.0},
	}
	actions := [][]int{
		{60, 55, 48},
		{61, 61, 61},
		{21, 108},
		{},
	}
	for _, ctx := range contexts {
		for _, action := range actions {
			for _, k := range Kinds() {
				got := RuleFor(k)(ctx, action)
				if got < RuleMin || got > RuleMax {
					t.Errorf("rule %s returned %f outside [%f, %f]", k, got, RuleMin, RuleMax)
				}
				if math.IsNaN(got) {
					t.Errorf("rule %s returned NaN", k)
				}
			}
		}
	}
}

func TestContraryMotionRule(t *testing.T) {
	ctx := testContext() // melody moved up 62 -> 64

	// all three voices move down: contrary
	contrary := RuleFor(PreferContraryMotion)(ctx, []int{55, 50, 45})
	if contrary != 1.0 {
		t.Errorf("all contrary should score 1.0, got %f", contrary)
	}
	// all three voices hold: oblique, half credit
	oblique := RuleFor(PreferContraryMotion)(ctx, []int{57, 52, 48})
	if oblique != 0.5 {
		t.Errorf("all oblique should score 0.5, got %f", oblique)
	}
	// all three voices move up with the melody: parallel, no credit
	parallel := RuleFor(PreferContraryMotion)(ctx, []int{59, 54, 50})
	if parallel != 0.0 {
		t.Errorf("all parallel should score 0.0, got %f", parallel)
	}
	if !(contrary > oblique && oblique > parallel) {
		t.Errorf("contrary (%f) > oblique (%f) > parallel (%f) expected", contrary, oblique, parallel)
	}
}

func TestParallelMotionRule(t *testing.T) {
	ctx := testContext()

	parallel := RuleFor(PenalizeParallelMotion)(ctx, []int{59, 54, 50})
	if parallel != -1.0 {
		t.Errorf("all parallel should score -1.0, got %f", parallel)
	}
	oblique := RuleFor(PenalizeParallelMotion)(ctx, []int{57, 52, 48})
	if oblique != 0.25 {
		t.Errorf("all oblique should score 0.25, got %f", oblique)
	}
	contrary := RuleFor(PenalizeParallelMotion)(ctx, []int{55, 50, 45})
	if contrary != 0.0 {
		t.Errorf("all contrary should score 0.0, got %f", contrary)
	}
}

func TestRulesAbstainAtEpisodeStart(t *testing.T) {
	ctx := &Context{
		Tonic:          60,
		Melody:         60,
		PrevMelody:     NoPitch,
		Horizon:        32,
		PrevHarmony:    []int{NoPitch, NoPitch, NoPitch},
		HarmonyHistory: [][]int{{}, {}, {}},
		StepDuration:   0.25,
	}
	for _, k := range []Kind{PreferContraryMotion, PenalizeParallelMotion, PreferCounterpoint, PreferResolution} {
		if got := RuleFor(k)(ctx, []int{55, 52, 48}); got != 0 {
			t.Errorf("rule %s should abstain with no previous pitches, got %f", k, got)
		}
	}
}

func TestScaleDegreesRule(t *testing.T) {
	ctx := testContext()
	if got := RuleFor(PreferScaleDegrees)(ctx, []int{60, 64, 67}); got != 1.0 {
		t.Errorf("fully diatonic action should score 1.0, got %f", got)
	}
	if got := RuleFor(PreferScaleDegrees)(ctx, []int{61, 63, 66}); got != -1.0 {
		t.Errorf("fully chromatic action should score -1.0, got %f", got)
	}
}

func TestCommonChordsRule(t *testing.T) {
	ctx := testContext() // melody 64
	// 60+64+67+55(G) forms a C major chord with the melody
	if got := RuleFor(PreferCommonChords)(ctx, []int{60, 55, 48}); got != 1.0 {
		t.Errorf("C major sonority should score 1.0, got %f", got)
	}
	// chromatic cluster
	if got := RuleFor(PreferCommonChords)(ctx, []int{63, 62, 61}); got >= 1.0 {
		t.Errorf("cluster should not score like a triad, got %f", got)
	}
}

func TestCounterpointForbidsParallelFifths(t *testing.T) {
	ctx := &Context{
		Tonic:          60,
		Melody:         64,
		PrevMelody:     62,
		Horizon:        32,
		PrevHarmony:    []int{55}, // perfect fifth below prev melody
		HarmonyHistory: [][]int{{55}},
		StepDuration:   0.25,
	}
	// harmony follows up to the fifth below the new melody note
	if got := RuleFor(PreferCounterpoint)(ctx, []int{57}); got != -1.0 {
		t.Errorf("parallel perfect fifths should score -1.0, got %f", got)
	}
	// contrary motion into a consonance
	if got := RuleFor(PreferCounterpoint)(ctx, []int{48}); got != 0.5 {
		t.Errorf("contrary motion into consonance should score 0.5, got %f", got)
	}
}

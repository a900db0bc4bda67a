package analysis

import (
	"testing"

	"github.com/harmonlab/harmony-rl/rl"
)

func traceWith(rewards []float64, obs [][]float64) *rl.Trace {
	t := rl.NewTrace()
	for i, r := range rewards {
		var o rl.Observation
		if i < len(obs) {
			o = obs[i]
		}
		t.Append(rl.Transition{Step: i, Obs: o, Reward: r})
	}
	return t
}

func TestRewardCurve(t *testing.T) {
	a := NewRewardCurve()
	a.Analyze(0, 0, "x", traceWith([]float64{1, 2}, nil))
	a.Analyze(0, 1, "x", traceWith([]float64{3}, nil))

	ds := a.DataSet().([]float64)
	if len(ds) != 2 || ds[0] != 3.0 || ds[1] != 3.0 {
		t.Errorf("reward curve %v, want [3 3]", ds)
	}

	a.Reset()
	if len(a.DataSet().([]float64)) != 0 {
		t.Errorf("reset should clear the dataset")
	}
}

func TestCoverageCumulative(t *testing.T) {
	a := NewCoverage()
	a.Analyze(0, 0, "x", traceWith([]float64{0, 0}, [][]float64{{0.1}, {0.2}}))
	a.Analyze(0, 1, "x", traceWith([]float64{0, 0}, [][]float64{{0.1}, {0.3}}))

	ds := a.DataSet().([]int)
	if len(ds) != 2 || ds[0] != 2 || ds[1] != 3 {
		t.Errorf("coverage %v, want [2 3]", ds)
	}
}

func TestMotionProfile(t *testing.T) {
	trace := rl.NewTrace()
	// melody rises each step, top harmony voice falls: contrary
	pitches := [][2]int{{60, 57}, {62, 55}, {64, 53}}
	for i, p := range pitches {
		prev := 0
		if i > 0 {
			prev = pitches[i-1][0]
		}
		trace.Append(rl.Transition{
			Step: i,
			Info: rl.StepInfo{
				Step:            i,
				MelodyPitch:     p[0],
				PrevMelodyPitch: prev,
				WrittenPitches:  []int{p[1]},
			},
		})
	}

	a := NewMotion()
	a.Analyze(0, 0, "x", trace)
	ds := a.DataSet().([]MotionProfile)
	if len(ds) != 1 {
		t.Fatalf("got %d profiles, want 1", len(ds))
	}
	if ds[0].Contrary != 1.0 || ds[0].Parallel != 0 {
		t.Errorf("profile %+v, want all contrary", ds[0])
	}
}

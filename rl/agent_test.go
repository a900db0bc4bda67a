package rl

import (
	"context"
	"errors"
	"strconv"
	"testing"
)

type fakeAction struct{ id int }

func (a fakeAction) Hash() string { return strconv.Itoa(a.id) }

// fakeEnv terminates after a fixed number of steps with reward 1 per
// step.
type fakeEnv struct {
	limit  int
	step   int
	resets int
}

func (e *fakeEnv) Reset() (Observation, error) {
	e.step = 0
	e.resets++
	return Observation{0}, nil
}

func (e *fakeEnv) Actions() []Action {
	return []Action{fakeAction{id: 0}, fakeAction{id: 1}}
}

func (e *fakeEnv) Step(a Action) (Observation, float64, bool, StepInfo, error) {
	e.step++
	done := e.step >= e.limit
	return Observation{float64(e.step)}, 1.0, done, StepInfo{Step: e.step - 1}, nil
}

// recordingLearner counts the callbacks it receives.
type recordingLearner struct {
	learned  int
	episodes int
	lastLen  int
}

func (l *recordingLearner) SelectAction(obs Observation, actions []Action) (int, bool) {
	return 0, true
}
func (l *recordingLearner) Learn(exp Experience) { l.learned++ }
func (l *recordingLearner) FinishEpisode(episode int, trace *Trace) {
	l.episodes++
	l.lastLen = trace.Len()
}
func (l *recordingLearner) Reset() {}

func TestAgentEpisodeLoop(t *testing.T) {
	env := &fakeEnv{limit: 5}
	learner := &recordingLearner{}
	agent := NewAgent(&AgentConfig{Episodes: 3, Learner: learner, Environment: env})

	traces, err := agent.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %s", err)
	}
	if len(traces) != 3 {
		t.Fatalf("got %d traces, want 3", len(traces))
	}
	for i, trace := range traces {
		if trace.Len() != 5 {
			t.Errorf("trace %d has %d transitions, want 5", i, trace.Len())
		}
		if trace.TotalReward() != 5.0 {
			t.Errorf("trace %d total reward %f, want 5.0", i, trace.TotalReward())
		}
	}
	if env.resets != 3 {
		t.Errorf("environment reset %d times, want 3", env.resets)
	}
	if learner.learned != 15 {
		t.Errorf("learner saw %d transitions, want 15", learner.learned)
	}
	if learner.episodes != 3 || learner.lastLen != 5 {
		t.Errorf("learner finished %d episodes (last trace %d), want 3 and 5", learner.episodes, learner.lastLen)
	}
}

func TestAgentCancellation(t *testing.T) {
	env := &fakeEnv{limit: 100}
	learner := &recordingLearner{}
	agent := NewAgent(&AgentConfig{Episodes: 1, Learner: learner, Environment: env})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := agent.RunEpisode(ctx, 0)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	// the partial episode never reaches the learner
	if learner.episodes != 0 {
		t.Errorf("cancelled episode was finished into the learner")
	}
}

func TestTraceAccessors(t *testing.T) {
	trace := NewTrace()
	for i := 0; i < 4; i++ {
		trace.Append(Transition{Step: i, Reward: float64(i)})
	}
	if trace.TotalReward() != 6.0 {
		t.Errorf("total reward %f, want 6.0", trace.TotalReward())
	}
	last, ok := trace.Last()
	if !ok || last.Step != 3 {
		t.Errorf("last transition step %d (%v), want 3", last.Step, ok)
	}
	if _, ok := trace.Get(10); ok {
		t.Errorf("out of bounds get should fail")
	}
	sliced := trace.Slice(1, 3)
	if sliced.Len() != 2 || sliced.TotalReward() != 3.0 {
		t.Errorf("slice has %d transitions with reward %f, want 2 and 3.0", sliced.Len(), sliced.TotalReward())
	}
}

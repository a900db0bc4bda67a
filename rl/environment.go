package rl

import "errors"

// Observation is a fixed arity numeric encoding of the environment
// state. The arity is constant for a configured environment so that
// learners with a fixed input size can consume it.
type Observation []float64

// Copy returns an independent copy of the observation.
func (o Observation) Copy() Observation {
	c := make(Observation, len(o))
	copy(c, o)
	return c
}

// Action is one candidate decision. The hash indexes value tables and
// must be deterministic.
type Action interface {
	Hash() string
}

// StepInfo carries per step metadata out of the environment: what was
// actually written, range violations and non fatal warnings.
type StepInfo struct {
	Step            int      `json:"step"`
	MelodyPitch     int      `json:"melody_pitch"`
	PrevMelodyPitch int      `json:"prev_melody_pitch"`
	WrittenPitches  []int    `json:"written_pitches"`
	OutOfRange      int      `json:"out_of_range"`
	TotalReward     float64  `json:"total_reward"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Environment is a finite horizon sequential decision process. One
// instance is stepped by exactly one agent interaction at a time; the
// harmonization state it owns is never shared across episodes.
type Environment interface {
	// Reset starts a new episode and returns the initial observation.
	Reset() (Observation, error)
	// Actions enumerates the candidate actions for the current step.
	// The slot order is deterministic, value tables index by it.
	Actions() []Action
	// Step applies one action and returns the next observation, the
	// reward for the step, whether the episode reached its horizon,
	// and step metadata.
	Step(Action) (Observation, float64, bool, StepInfo, error)
}

// Experience is one transition handed to a learner.
type Experience struct {
	Step   int
	Obs    Observation
	Slot   int
	Action Action
	Reward float64
	Next   Observation
	Done   bool
}

// Learner selects actions and improves from experience. Learners are
// trainable purely against the Environment contract; they never see
// reward internals.
type Learner interface {
	// SelectAction picks a slot among the candidate actions.
	SelectAction(obs Observation, actions []Action) (int, bool)
	// Learn consumes one transition.
	Learn(Experience)
	// FinishEpisode is called once per completed episode with the full
	// trace. Partial traces of cancelled episodes are never passed.
	FinishEpisode(episode int, trace *Trace)
	// Reset discards everything learned.
	Reset()
}

// Checkpointer is implemented by learners whose state round trips
// through a byte snapshot.
type Checkpointer interface {
	Snapshot() ([]byte, error)
	Restore([]byte) error
}

// ErrCancelled reports an episode aborted through its context. The
// partial trace is discarded, never scored into the learner.
var ErrCancelled = errors.New("episode cancelled")

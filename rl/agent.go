package rl

import "context"

// AgentConfig binds a learner to an environment for a training run.
type AgentConfig struct {
	Episodes    int
	Learner     Learner
	Environment Environment
}

// Agent drives the learner/environment interaction loop, one episode
// at a time. Episodes of a single agent never overlap: every step
// mutates the environment's episode state.
type Agent struct {
	config      *AgentConfig
	learner     Learner
	environment Environment
}

func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		learner:     config.Learner,
		environment: config.Environment,
	}
}

// Run executes the configured number of episodes and returns the
// traces. Cancellation is coarse: the in progress episode is discarded
// and no partial trace reaches the learner.
func (a *Agent) Run(ctx context.Context) ([]*Trace, error) {
	traces := make([]*Trace, 0, a.config.Episodes)
	for i := 0; i < a.config.Episodes; i++ {
		trace, err := a.RunEpisode(ctx, i)
		if err != nil {
			return traces, err
		}
		traces = append(traces, trace)
	}
	return traces, nil
}

// RunEpisode plays one episode from reset to terminal step and hands
// the completed trace to the learner.
func (a *Agent) RunEpisode(ctx context.Context, episode int) (*Trace, error) {
	obs, err := a.environment.Reset()
	if err != nil {
		return nil, err
	}
	trace := NewTrace()

	for step := 0; ; step++ {
		select {
		case <-ctx.Done():
			return nil, ErrCancelled
		default:
		}

		actions := a.environment.Actions()
		if len(actions) == 0 {
			break
		}
		slot, ok := a.learner.SelectAction(obs, actions)
		if !ok {
			break
		}
		action := actions[slot]
		next, reward, done, info, err := a.environment.Step(action)
		if err != nil {
			return nil, err
		}

		a.learner.Learn(Experience{
			Step:   step,
			Obs:    obs,
			Slot:   slot,
			Action: action,
			Reward: reward,
			Next:   next,
			Done:   done,
		})
		trace.Append(Transition{
			Step:   step,
			Obs:    obs,
			Slot:   slot,
			Action: action.Hash(),
			Reward: reward,
			Next:   next,
			Info:   info,
		})
		obs = next
		if done {
			break
		}
	}

	a.learner.FinishEpisode(episode, trace)
	return trace, nil
}

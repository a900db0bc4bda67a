package rl

// Transition is one recorded step of an episode.
type Transition struct {
	Step   int         `json:"step"`
	Obs    Observation `json:"obs"`
	Slot   int         `json:"slot"`
	Action string      `json:"action"`
	Reward float64     `json:"reward"`
	Next   Observation `json:"next"`
	Info   StepInfo    `json:"info"`
}

// Trace records an episode as a sequence of transitions together with
// the per step reward signal.
type Trace struct {
	Transitions []Transition `json:"transitions"`
}

func NewTrace() *Trace {
	return &Trace{Transitions: make([]Transition, 0)}
}

func (t *Trace) Append(tr Transition) {
	t.Transitions = append(t.Transitions, tr)
}

func (t *Trace) Len() int {
	return len(t.Transitions)
}

func (t *Trace) Get(i int) (Transition, bool) {
	if i < 0 || i >= len(t.Transitions) {
		return Transition{}, false
	}
	return t.Transitions[i], true
}

func (t *Trace) Last() (Transition, bool) {
	if len(t.Transitions) == 0 {
		return Transition{}, false
	}
	return t.Transitions[len(t.Transitions)-1], true
}

// TotalReward sums the rewards of the whole episode.
func (t *Trace) TotalReward() float64 {
	total := 0.0
	for _, tr := range t.Transitions {
		total += tr.Reward
	}
	return total
}

// Rewards returns the per step reward trace.
func (t *Trace) Rewards() []float64 {
	out := make([]float64, len(t.Transitions))
	for i, tr := range t.Transitions {
		out[i] = tr.Reward
	}
	return out
}

// Slice returns the transitions in [from, to) as a new trace.
func (t *Trace) Slice(from, to int) *Trace {
	s := NewTrace()
	for i := from; i < to && i < len(t.Transitions); i++ {
		s.Append(t.Transitions[i])
	}
	return s
}

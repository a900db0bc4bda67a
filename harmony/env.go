package harmony

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/harmonlab/harmony-rl/music"
	"github.com/harmonlab/harmony-rl/rewards"
	"github.com/harmonlab/harmony-rl/rl"
)

// Phase is the environment lifecycle state.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseReady
	PhaseStepping
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseStepping:
		return "stepping"
	case PhaseTerminal:
		return "terminal"
	}
	return "uninitialized"
}

var (
	// ErrTerminal is returned by Step after the horizon is reached and
	// before the next Reset.
	ErrTerminal = errors.New("episode is terminal")
	// ErrNotReady is returned by Step and FinalSequence before Reset.
	ErrNotReady = errors.New("environment not reset")
)

// MelodySource supplies the melody (and optional primer) for the next
// episode. Any blocking collaborator call happens inside the source,
// before the environment sees the primer.
type MelodySource func() (*music.Voice, *music.Sequence, error)

// Environment is the harmonization decision process. It owns one
// episode's state exclusively; independent environments share nothing
// and may run in parallel.
type Environment struct {
	cfg    Config
	agg    *rewards.Aggregator
	styles *rewards.StyleManager
	source MelodySource
	rng    *rand.Rand

	phase       Phase
	melody      *music.Voice
	primer      []*music.Voice
	harmony     []*music.Voice
	step        int
	limit       int
	total       float64
	rewardTrace []float64
	warnings    []string
}

var _ rl.Environment = &Environment{}

// New validates the configuration and builds an environment bound to
// an explicit style manager. No process wide style state exists.
func New(cfg Config, styles *rewards.StyleManager) (*Environment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if styles == nil {
		return nil, fmt.Errorf("%w: nil style manager", rewards.ErrConfiguration)
	}
	return &Environment{
		cfg:    cfg,
		agg:    rewards.NewAggregator(),
		styles: styles,
		rng:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		phase:  PhaseUninitialized,
	}, nil
}

// SetSource installs the melody provider used by Reset.
func (e *Environment) SetSource(src MelodySource) {
	e.source = src
}

// SetRand replaces the random source used for generated training
// melodies, for reproducible runs.
func (e *Environment) SetRand(rng *rand.Rand) {
	e.rng = rng
}

// Styles exposes the bound style manager, so callers can switch
// weights mid training. The switch applies from the next scored step.
func (e *Environment) Styles() *rewards.StyleManager {
	return e.styles
}

// Config returns the environment configuration.
func (e *Environment) Config() Config {
	return e.cfg
}

// Phase reports the lifecycle state.
func (e *Environment) Phase() Phase {
	return e.phase
}

// Reset starts an episode from the configured source, falling back to
// a generated C major training melody when no source is installed.
func (e *Environment) Reset() (rl.Observation, error) {
	if e.source == nil {
		return e.ResetWith(e.randomMelody(), nil)
	}
	melody, primer, err := e.source()
	if err != nil {
		return nil, err
	}
	return e.ResetWith(melody, primer)
}

// ResetWith binds the episode to a melody and an optional primer (for
// example a Coconet harmonization to refine). Valid from any phase.
func (e *Environment) ResetWith(melody *music.Voice, primer *music.Sequence) (rl.Observation, error) {
	if melody == nil || melody.Len() == 0 {
		return nil, fmt.Errorf("%w: empty melody", rewards.ErrConfiguration)
	}
	e.melody = melody
	e.step = 0
	e.total = 0
	e.rewardTrace = make([]float64, 0, e.cfg.Horizon)
	e.warnings = nil

	e.limit = e.cfg.Horizon
	if melody.Len() < e.limit {
		e.limit = melody.Len()
	}

	e.harmony = make([]*music.Voice, e.cfg.numHarmonyVoices())
	for i := range e.harmony {
		e.harmony[i] = music.NewVoice()
	}
	e.bindPrimer(primer)

	e.phase = PhaseReady
	return e.observation(), nil
}

// bindPrimer normalizes the primer to the configured voice count,
// recovering from mismatches by truncation and padding. Mismatches are
// warnings in the episode metadata, never errors.
func (e *Environment) bindPrimer(primer *music.Sequence) {
	e.primer = make([]*music.Voice, e.cfg.numHarmonyVoices())
	if primer == nil {
		return
	}
	supplied := primer.NumVoices() - 1 // voice 0 is the melody slot
	if supplied < 0 {
		supplied = 0
	}
	if supplied > e.cfg.numHarmonyVoices() {
		e.warn(fmt.Sprintf("primer has %d harmony voices, configuration takes %d, extra voices dropped", supplied, e.cfg.numHarmonyVoices()))
		supplied = e.cfg.numHarmonyVoices()
	}
	for v := 0; v < supplied; v++ {
		pv := primer.Voices[v+1]
		if pv == nil || pv.Len() == 0 {
			continue
		}
		if pv.Len() > e.limit {
			e.warn(fmt.Sprintf("primer voice %d longer than horizon, %d notes truncated unscored", v+1, pv.Len()-e.limit))
			trimmed := music.NewVoice()
			trimmed.Notes = append(trimmed.Notes, pv.Notes[:e.limit]...)
			pv = trimmed
		} else if pv.Len() < e.limit {
			e.warn(fmt.Sprintf("primer voice %d shorter than melody, remaining steps agent generated", v+1))
		}
		e.primer[v] = pv
	}
}

func (e *Environment) warn(msg string) {
	e.warnings = append(e.warnings, msg)
}

// Warnings returns the primer mismatch warnings of the episode.
func (e *Environment) Warnings() []string {
	return e.warnings
}

// Actions enumerates candidate voicings for the current step.
func (e *Environment) Actions() []rl.Action {
	if e.phase != PhaseReady && e.phase != PhaseStepping {
		return nil
	}
	melodyNote, ok := e.melody.At(e.step)
	if !ok {
		return nil
	}
	return candidateActions(e.cfg, melodyNote.Pitch)
}

// Step applies one candidate voicing. Out of range pitches are clamped
// into their voice range and penalized instead of rejected, so a
// learner exploring invalid regions keeps training. Primer supplied
// notes override the proposal for their voice and keep their exact
// timing. The reward is computed from the state before mutation and
// the effective action.
func (e *Environment) Step(action rl.Action) (rl.Observation, float64, bool, rl.StepInfo, error) {
	switch e.phase {
	case PhaseUninitialized:
		return nil, 0, false, rl.StepInfo{}, ErrNotReady
	case PhaseTerminal:
		return nil, 0, false, rl.StepInfo{}, ErrTerminal
	}

	a, ok := action.(*Action)
	if !ok || len(a.Pitches) != e.cfg.numHarmonyVoices() {
		return nil, 0, false, rl.StepInfo{}, fmt.Errorf("%w: action must carry one pitch per harmony voice", rewards.ErrConfiguration)
	}
	melodyNote, _ := e.melody.At(e.step)
	prevMelody := rewards.NoPitch
	if prev, ok := e.melody.At(e.step - 1); ok {
		prevMelody = prev.Pitch
	}

	outOfRange := 0
	effective := make([]int, len(a.Pitches))
	written := make([]music.Note, len(a.Pitches))
	for v, proposed := range a.Pitches {
		r := e.cfg.VoiceRanges[v]
		var note music.Note
		primed := false
		if pv := e.primer[v]; pv != nil {
			if pn, ok := pv.At(e.step); ok {
				note = pn
				primed = true
			}
		}
		if primed {
			// primer pitches are written verbatim, the range check
			// applies to what actually sounds
			if !r.Contains(note.Pitch) {
				outOfRange++
			}
		} else {
			pitch := music.ClampPitch(proposed, r.Low, r.High)
			if pitch != proposed {
				outOfRange++
			}
			note = music.Note{
				Pitch:    pitch,
				Start:    melodyNote.Start,
				Duration: melodyNote.Duration,
				Velocity: 80,
			}
		}
		effective[v] = note.Pitch
		written[v] = note
	}

	ctx := e.rewardContext(melodyNote.Pitch, prevMelody)
	reward := e.agg.Score(ctx, effective, e.styles.Active())
	reward -= float64(outOfRange) * e.cfg.RangePenalty

	for v, note := range written {
		if err := e.harmony[v].Append(note); err != nil {
			return nil, 0, false, rl.StepInfo{}, err
		}
	}
	e.total += reward
	e.rewardTrace = append(e.rewardTrace, reward)

	info := rl.StepInfo{
		Step:            e.step,
		MelodyPitch:     melodyNote.Pitch,
		PrevMelodyPitch: prevMelody,
		WrittenPitches:  effective,
		OutOfRange:      outOfRange,
		TotalReward:     e.total,
	}
	if e.step == 0 {
		info.Warnings = e.warnings
	}

	e.step++
	done := e.step >= e.limit
	if done {
		e.phase = PhaseTerminal
	} else {
		e.phase = PhaseStepping
	}
	return e.observation(), reward, done, info, nil
}

// FinalSequence returns the completed score, melody first, with the
// original timing preserved. Valid only in the terminal phase.
func (e *Environment) FinalSequence() (*music.Sequence, error) {
	if e.phase != PhaseTerminal {
		return nil, fmt.Errorf("%w: final sequence requested in phase %s", ErrNotReady, e.phase)
	}
	seq := &music.Sequence{Voices: make([]*music.Voice, 0, e.cfg.NumVoices)}
	melody := music.NewVoice()
	melody.Notes = append(melody.Notes, e.melody.Notes[:e.limit]...)
	seq.Voices = append(seq.Voices, melody)
	for _, v := range e.harmony {
		seq.Voices = append(seq.Voices, v.Copy())
	}
	return seq, nil
}

// RewardTrace returns the per step rewards recorded so far.
func (e *Environment) RewardTrace() []float64 {
	out := make([]float64, len(e.rewardTrace))
	copy(out, e.rewardTrace)
	return out
}

// observation encodes the state as a fixed arity vector: a four note
// melody context window, the current melody pitch, the latest pitch
// per harmony voice, the normalized step index and the tonic class.
func (e *Environment) observation() rl.Observation {
	nh := e.cfg.numHarmonyVoices()
	obs := make(rl.Observation, 0, 4+1+nh+2)

	for i := e.step - 4; i < e.step; i++ {
		if n, ok := e.melody.At(i); ok {
			obs = append(obs, float64(n.Pitch)/127)
		} else {
			obs = append(obs, 0)
		}
	}
	cur := e.step
	if cur >= e.limit {
		cur = e.limit - 1
	}
	if n, ok := e.melody.At(cur); ok {
		obs = append(obs, float64(n.Pitch)/127)
	} else {
		obs = append(obs, 0)
	}
	for _, v := range e.harmony {
		if n, ok := v.Last(); ok {
			obs = append(obs, float64(n.Pitch)/127)
		} else {
			obs = append(obs, 0)
		}
	}
	obs = append(obs, float64(e.step)/float64(e.cfg.Horizon))
	obs = append(obs, float64(music.PitchClass(e.cfg.Tonic))/12)
	return obs
}

// rewardContext assembles the read only scoring view from the state
// before the candidate action is applied.
func (e *Environment) rewardContext(melodyPitch, prevMelody int) *rewards.Context {
	window := make([]int, 0, 4)
	for i := e.step - 4; i < e.step; i++ {
		if n, ok := e.melody.At(i); ok {
			window = append(window, n.Pitch)
		}
	}
	nh := e.cfg.numHarmonyVoices()
	prevHarmony := make([]int, nh)
	history := make([][]int, nh)
	for v, voice := range e.harmony {
		prevHarmony[v] = rewards.NoPitch
		if n, ok := voice.Last(); ok {
			prevHarmony[v] = n.Pitch
		}
		start := voice.Len() - 4
		if start < 0 {
			start = 0
		}
		hist := make([]int, 0, 4)
		for i := start; i < voice.Len(); i++ {
			hist = append(hist, voice.Notes[i].Pitch)
		}
		history[v] = hist
	}
	return &rewards.Context{
		Tonic:          e.cfg.Tonic,
		Scale:          e.cfg.Scale,
		Step:           e.step,
		Horizon:        e.limit,
		BeatsPerBar:    e.cfg.BeatsPerBar,
		Melody:         melodyPitch,
		PrevMelody:     prevMelody,
		MelodyWindow:   window,
		PrevHarmony:    prevHarmony,
		HarmonyHistory: history,
		StepDuration:   e.cfg.StepDuration,
	}
}

// trainingScale is the C major octave the generated melodies draw
// from, the same pool the original trainer used.
var trainingScale = []int{60, 62, 64, 65, 67, 69, 71, 72}

// randomMelody builds a training melody of horizon length.
func (e *Environment) randomMelody() *music.Voice {
	pitches := make([]int, e.cfg.Horizon)
	for i := range pitches {
		pitches[i] = trainingScale[e.rng.Intn(len(trainingScale))]
	}
	return music.MelodyVoice(pitches, e.cfg.StepDuration, 80)
}

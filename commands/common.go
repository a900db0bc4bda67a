package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/harmonlab/harmony-rl/coconet"
	"github.com/harmonlab/harmony-rl/harmony"
	"github.com/harmonlab/harmony-rl/music"
	"github.com/harmonlab/harmony-rl/policies"
	"github.com/harmonlab/harmony-rl/rewards"
	"github.com/harmonlab/harmony-rl/rl"
	"github.com/harmonlab/harmony-rl/seqio"
)

// buildEnvironment assembles an environment from the persistent flags.
func buildEnvironment(styleName string, overrides map[string]float64) (*harmony.Environment, error) {
	styles, err := rewards.NewStyleManager(rewards.Config{
		Style:     styleName,
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}
	cfg := harmony.DefaultConfig(voices)
	cfg.Horizon = horizon
	return harmony.New(cfg, styles)
}

// melodySource builds the episode melody provider: a fixed melody from
// a score file, optionally primed by the harmonization service, or nil
// for generated training melodies.
func melodySource(melodyFile, coconetAddr, cacheAddr string) (harmony.MelodySource, error) {
	if melodyFile == "" && coconetAddr == "" {
		return nil, nil
	}
	var melody *music.Voice
	if melodyFile != "" {
		var err error
		melody, err = seqio.ReadMelody(melodyFile)
		if err != nil {
			return nil, err
		}
	}

	var harmonizer coconet.Harmonizer
	if coconetAddr != "" {
		harmonizer = coconet.NewClient(coconet.ClientConfig{Addr: coconetAddr})
		if cacheAddr != "" {
			harmonizer = coconet.NewCachedHarmonizer(harmonizer, cacheAddr, "harmony-rl", 24*time.Hour)
		}
	}

	return func() (*music.Voice, *music.Sequence, error) {
		if melody == nil {
			return nil, nil, fmt.Errorf("harmonization service priming needs a melody file")
		}
		if harmonizer == nil {
			return melody, nil, nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		resp, err := harmonizer.Harmonize(ctx, coconet.HarmonizeRequest{
			Melody:    melody.Pitches(),
			NumVoices: voices,
		})
		if err != nil {
			// degrade to unprimed episodes when the service is down
			fmt.Printf("harmonization service unavailable, continuing without primer: %s\n", err)
			return melody, nil, nil
		}
		spacing := 0.25
		if n, ok := melody.At(0); ok {
			spacing = n.Duration
		}
		primer := &music.Sequence{Voices: append([]*music.Voice{melody}, coconet.PrimerVoices(resp, spacing)...)}
		return melody, primer, nil
	}, nil
}

// newLearner builds a learner by name, sized to the environment's
// action space.
func newLearner(kind string, env *harmony.Environment) (rl.Learner, error) {
	slots := env.Config().ActionSlots()
	switch kind {
	case "qlearner":
		cfg := policies.DefaultQLearnerConfig(slots)
		cfg.Seed = seed
		return policies.NewQLearner(cfg), nil
	case "reinforce":
		cfg := policies.DefaultReinforceConfig(slots)
		cfg.Seed = seed
		return policies.NewReinforce(cfg), nil
	case "random":
		return policies.NewRandom(seed), nil
	}
	return nil, fmt.Errorf("unknown learner %q", kind)
}

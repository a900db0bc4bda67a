package commands

import (
	"context"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/harmonlab/harmony-rl/policies"
	"github.com/harmonlab/harmony-rl/rl"
	"github.com/harmonlab/harmony-rl/seqio"
)

// Harmonize runs one inference episode with a trained policy and
// writes the resulting score.
func Harmonize(learnerKind, melodyFile, coconetAddr, cacheAddr, checkpointName, redisAddr, outFile string, temperature float64, ctx context.Context) error {
	env, err := buildEnvironment(style, nil)
	if err != nil {
		return err
	}
	source, err := melodySource(melodyFile, coconetAddr, cacheAddr)
	if err != nil {
		return err
	}
	if source != nil {
		env.SetSource(source)
	}

	learner, err := newLearner(learnerKind, env)
	if err != nil {
		return err
	}
	if checkpointName != "" {
		var store policies.Store
		if redisAddr != "" {
			rs := policies.NewRedisStore(redisAddr, "harmony-rl")
			defer rs.Close()
			store = rs
		} else {
			store = policies.NewFileStore(path.Join(saveDir, "checkpoints"))
		}
		if err := policies.LoadLearner(ctx, store, checkpointName, learner); err != nil {
			return fmt.Errorf("failed to load checkpoint: %s", err)
		}
	}

	// inference runs with exploration off unless a temperature is set
	switch l := learner.(type) {
	case *policies.QLearner:
		l.SetEpsilon(0)
	case *policies.Reinforce:
		l.SetTemperature(env.Config().InferenceTemperature(temperature))
	}

	agent := rl.NewAgent(&rl.AgentConfig{
		Episodes:    1,
		Learner:     learner,
		Environment: env,
	})
	trace, err := agent.RunEpisode(ctx, 0)
	if err != nil {
		return err
	}
	fmt.Printf("Harmonized %d steps, total reward %.3f\n", trace.Len(), trace.TotalReward())

	seq, err := env.FinalSequence()
	if err != nil {
		return err
	}
	if err := seqio.WriteFile(outFile, seq); err != nil {
		return err
	}
	fmt.Printf("Wrote score to %s\n", outFile)
	return nil
}

func HarmonizeCommand() *cobra.Command {
	var learnerKind string
	var melodyFile string
	var coconetAddr string
	var cacheAddr string
	var checkpointName string
	var redisAddr string
	var outFile string
	var temperature float64

	cmd := &cobra.Command{
		Use:  "harmonize",
		Long: "Harmonize a melody with a trained policy and write the score",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Harmonize(learnerKind, melodyFile, coconetAddr, cacheAddr, checkpointName, redisAddr, outFile, temperature, context.Background())
		},
	}
	cmd.PersistentFlags().StringVar(&learnerKind, "learner", "qlearner", "Learner kind the checkpoint was trained with")
	cmd.PersistentFlags().StringVar(&melodyFile, "melody", "", "Score file to take the melody from")
	cmd.PersistentFlags().StringVar(&coconetAddr, "coconet", "", "Address of the harmonization service for priming")
	cmd.PersistentFlags().StringVar(&cacheAddr, "coconet-cache", "", "Redis address for caching harmonization responses")
	cmd.PersistentFlags().StringVar(&checkpointName, "checkpoint", "", "Name of the trained policy to load")
	cmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address for checkpoint storage instead of files")
	cmd.PersistentFlags().StringVarP(&outFile, "out", "o", "harmonized.json", "Output score file")
	cmd.PersistentFlags().Float64Var(&temperature, "temperature", -1, "Sampling temperature for policy gradient inference, 0 is greedy, negative uses the environment default")
	return cmd
}

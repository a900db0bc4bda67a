package commands

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/harmonlab/harmony-rl/analysis"
	"github.com/harmonlab/harmony-rl/policies"
	"github.com/harmonlab/harmony-rl/rl"
)

func Train(learnerKind, melodyFile, coconetAddr, cacheAddr, checkpointName, redisAddr string, ctx context.Context) error {
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

	os.MkdirAll(path.Join(saveDir, "traces"), 0755)
	name := learnerKind + "-" + style
	rewardCurve := analysis.NewRewardCurve()
	coverage := analysis.NewCoverage()
	experiment := rl.NewExperiment(name, learner, env)

	err = experiment.Run(&rl.RunConfig{
		CurrentRun:   0,
		Episodes:     episodes,
		Analyzers:    []rl.Analyzer{rewardCurve, coverage},
		RecordTraces: true,
		RecordPath:   saveDir,
		Context:      ctx,
	})
	if err != nil {
		return err
	}

	plotDir := path.Join(saveDir, "plots")
	analysis.RewardPlotter(plotDir)(0, episodes, []string{name}, []rl.DataSet{rewardCurve.DataSet()})
	analysis.CoveragePlotter(plotDir)(0, episodes, []string{name}, []rl.DataSet{coverage.DataSet()})

	if checkpointName != "" {
		var store policies.Store
		if redisAddr != "" {
			rs := policies.NewRedisStore(redisAddr, "harmony-rl")
			defer rs.Close()
			store = rs
		} else {
			store = policies.NewFileStore(path.Join(saveDir, "checkpoints"))
		}
		if err := policies.SaveLearner(ctx, store, checkpointName, learner); err != nil {
			return fmt.Errorf("failed to save checkpoint: %s", err)
		}
		fmt.Printf("Saved checkpoint %q\n", checkpointName)
	}
	return nil
}

func TrainCommand() *cobra.Command {
	var learnerKind string
	var melodyFile string
	var coconetAddr string
	var cacheAddr string
	var checkpointName string
	var redisAddr string

	cmd := &cobra.Command{
		Use:  "train",
		Long: "Train a harmonization policy against the configured style",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Train(learnerKind, melodyFile, coconetAddr, cacheAddr, checkpointName, redisAddr, context.Background())
		},
	}
	cmd.PersistentFlags().StringVar(&learnerKind, "learner", "qlearner", "Learner to train: qlearner, reinforce or random")
	cmd.PersistentFlags().StringVar(&melodyFile, "melody", "", "Score file to take the training melody from")
	cmd.PersistentFlags().StringVar(&coconetAddr, "coconet", "", "Address of the harmonization service for episode priming")
	cmd.PersistentFlags().StringVar(&cacheAddr, "coconet-cache", "", "Redis address for caching harmonization responses")
	cmd.PersistentFlags().StringVar(&checkpointName, "checkpoint", "", "Name to save the trained policy under")
	cmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address for checkpoint storage instead of files")
	return cmd
}

package commands

import (
	"context"
	"path"

	"github.com/spf13/cobra"

	"github.com/harmonlab/harmony-rl/analysis"
	"github.com/harmonlab/harmony-rl/rl"
)

// Compare trains one experiment per listed style under identical
// budgets and plots their curves side by side.
func Compare(learnerKind string, styleNames []string, ctx context.Context) error {
	c := rl.NewComparison(&rl.ComparisonConfig{
		Runs:         runs,
		Episodes:     episodes,
		RecordPath:   saveDir,
		RecordTraces: false,
	})
	plotDir := path.Join(saveDir, "plots")
	c.AddAnalysis("Reward", analysis.NewRewardCurve(), analysis.RewardPlotter(plotDir))
	c.AddAnalysis("Coverage", analysis.NewCoverage(), analysis.CoveragePlotter(plotDir))
	c.AddAnalysis("Motion", analysis.NewMotion(), analysis.MotionPlotter(plotDir))

	for _, styleName := range styleNames {
		env, err := buildEnvironment(styleName, nil)
		if err != nil {
			return err
		}
		learner, err := newLearner(learnerKind, env)
		if err != nil {
			return err
		}
		c.AddExperiment(rl.NewExperiment(learnerKind+"-"+styleName, learner, env))
	}
	return c.Run(ctx)
}

func CompareCommand() *cobra.Command {
	var learnerKind string
	var styleNames []string

	cmd := &cobra.Command{
		Use:  "compare",
		Long: "Train the same learner under several style presets and compare the curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Compare(learnerKind, styleNames, context.Background())
		},
	}
	cmd.PersistentFlags().StringVar(&learnerKind, "learner", "qlearner", "Learner to train: qlearner, reinforce or random")
	cmd.PersistentFlags().StringSliceVar(&styleNames, "styles", []string{"classical", "pop"}, "Style presets to compare")
	return cmd
}

// Package commands wires the training, harmonization and inspection
// entry points into a single command tree.
package commands

import "github.com/spf13/cobra"

var (
	episodes int
	horizon  int
	saveDir  string
	runs     int
	style    string
	voices   int
	seed     uint64
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use: "harmony-rl",
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", 2000, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", 32, "Horizon of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveDir, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().IntVar(&runs, "runs", 1, "Number of experiment runs")
	rootCommand.PersistentFlags().StringVar(&style, "style", "classical", "Style preset for the reward weights")
	rootCommand.PersistentFlags().IntVar(&voices, "voices", 4, "Total number of voices, melody included")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed, 0 picks one from the clock")
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(HarmonizeCommand())
	rootCommand.AddCommand(StylesCommand())
	rootCommand.AddCommand(CompareCommand())
	rootCommand.AddCommand(ExploreCommand())
	return rootCommand
}

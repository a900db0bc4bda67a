package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harmonlab/harmony-rl/explorer"
)

// Example invocation - ./harmony-rl explore results/checkpoints/policy.json results/traces/qlearner-classical_0.jsonl
func ExploreCommand() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:  "explore [checkpoint] [trace_output]",
		Long: "Explore the learned values of a checkpoint and the recorded traces",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := explorer.NewExplorer(args[0], args[1])
			if err != nil {
				return err
			}
			if httpAddr != "" {
				ctx, cancel := context.WithCancel(context.Background())
				defer cancel()
				explorer.NewServer(exp, httpAddr).Start(ctx)
				fmt.Printf("Explorer listening on %s\n", httpAddr)
			}
			exp.Interact()
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&httpAddr, "http", "", "Also serve the explorer over HTTP at this address")
	return cmd
}

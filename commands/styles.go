package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/harmonlab/harmony-rl/rewards"
)

func StylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "styles",
		Long: "List the registered style presets and their reward weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range rewards.StyleNames() {
				w, err := rewards.PresetWeights(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s:\n", name)
				m := w.Map()
				keys := make([]string, 0, len(m))
				for k := range m {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Printf("  %s: %.3f\n", k, m[k])
				}
			}
			return nil
		},
	}
}

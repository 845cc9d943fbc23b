package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

func newScoreCommand(jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:     "score GUESS SECRET",
		Short:   "Print the feedback SECRET gives GUESS",
		Example: "  wordle-filter score EERIE THREE   # EERIE:ybgbg",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := solver.Scored(args[0], args[1])
			if err != nil {
				return err
			}
			if *jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"pattern": g.String(),
					"colors":  g.Colors(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), g.String())
			return nil
		},
	}
}

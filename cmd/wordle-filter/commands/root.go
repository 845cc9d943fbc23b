package commands

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	var (
		verbose    bool
		jsonOutput bool
	)

	rootCmd := &cobra.Command{
		Use:   "wordle-filter",
		Short: "Narrow a Wordle dictionary using colored guesses",
		Long: `wordle-filter keeps the dictionary words that agree with every guess
and its colored feedback.

Guesses are written WORD:pattern, one letter of pattern per box:
  g  green   the letter is in this box
  y  yellow  the letter is elsewhere
  b  gray    no (more) of this letter; "." and "-" also mean gray`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(newFilterCommand(&jsonOutput))
	rootCmd.AddCommand(newScoreCommand(&jsonOutput))
	rootCmd.AddCommand(newHashPasswordCommand())

	return rootCmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

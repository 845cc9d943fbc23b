package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
	"github.com/robalobadob/wordle/apps/solver-server/internal/words"
)

type filterOutput struct {
	Count   int      `json:"count"`
	Words   []string `json:"words"`
	Dropped []string `json:"dropped,omitempty"`
}

func newFilterCommand(jsonOutput *bool) *cobra.Command {
	var (
		dictPath string
		width    int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "filter [WORD:pattern...]",
		Short: "List the words consistent with the given guesses",
		Example: `  # Words still possible after two guesses
  wordle-filter filter ROBOT:bbbgb SALON:bbygg

  # Use a custom word list and show at most 10 words
  wordle-filter filter --dict ./words.txt --limit 10 CRANE:bybbb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				d   *words.Dictionary
				err error
			)
			if dictPath == "" {
				d, err = words.Embedded()
			} else {
				d, err = words.ReadFile(dictPath)
			}
			if err != nil {
				return fmt.Errorf("load dictionary: %w", err)
			}

			history := make(solver.History, 0, len(args))
			for _, a := range args {
				g, err := solver.ParseGuess(a)
				if err != nil {
					return fmt.Errorf("guess %q: %w", a, err)
				}
				history = append(history, g)
			}

			res := solver.New(width).Filter(d.Words, history)
			log.Debug().
				Str("origin", d.Origin).
				Int("considered", res.Considered).
				Int("used", res.Used).
				Int("remaining", len(res.Words)).
				Msg("filtered")

			out := filterOutput{Count: len(res.Words), Words: res.Words}
			for _, e := range res.Dropped {
				out.Dropped = append(out.Dropped, e.Error())
			}
			if limit > 0 && len(out.Words) > limit {
				out.Words = out.Words[:limit]
			}

			w := cmd.OutOrStdout()
			if *jsonOutput {
				return printJSON(w, out)
			}
			for _, e := range out.Dropped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", e)
			}
			for _, word := range out.Words {
				fmt.Fprintln(w, word)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d candidate(s)\n", out.Count)
			return nil
		},
	}

	cmd.Flags().StringVar(&dictPath, "dict", "", "dictionary file, one word per line (default: built-in list)")
	cmd.Flags().IntVar(&width, "width", 0, "word length (default: most common length in the dictionary)")
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many words (0 = all)")

	return cmd
}

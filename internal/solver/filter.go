// internal/solver/filter.go
//
// Dictionary filter: reduces a dictionary snapshot to the words consistent
// with every usable guess in a history.
//
// Notes:
//   - Pure: no globals, no I/O, no locking. An Engine is a plain value and
//     may be shared between goroutines.
//   - Each guess is compiled once and reused across all candidates.
//   - Guesses that cannot be compiled are reported in Result.Dropped and
//     otherwise ignored; nothing aborts a filter.
//   - Surviving entries are returned exactly as they appear in the
//     dictionary, in dictionary order.

package solver

import (
	"errors"
	"slices"

	"github.com/samber/lo"
)

// Engine filters dictionaries for a fixed board width.
// A zero Width means the most common word length of the dictionary being
// filtered, or of the complete guesses when the dictionary is empty.
type Engine struct {
	Width int
}

// New returns an Engine for boards of the given width.
func New(width int) Engine { return Engine{Width: width} }

// Result is the outcome of one calculation.
type Result struct {
	Words      []string     // the solution set, dictionary order
	Considered int          // dictionary entries examined
	Used       int          // guesses that contributed constraints
	Dropped    []GuessError // guesses left out, with the reason
}

// Incomplete reports how many guesses were skipped for empty boxes.
func (r Result) Incomplete() int {
	return lo.CountBy(r.Dropped, func(e GuessError) bool {
		return errors.Is(e.Err, ErrIncompleteGuess)
	})
}

// Invalid reports how many guesses were dropped for a bad shape.
func (r Result) Invalid() int {
	return lo.CountBy(r.Dropped, func(e GuessError) bool {
		return errors.Is(e.Err, ErrInvalidGuessShape)
	})
}

// Compile compiles every guess of h, separating usable constraints from
// guesses that must be skipped. Without a fixed Width the board width is
// the most common length among the complete guesses.
func (e Engine) Compile(h History) ([]*Constraint, []GuessError) {
	width := e.Width
	if width <= 0 {
		width = inferWidth(nil, h)
	}
	return compileAll(h, width)
}

func compileAll(h History, width int) ([]*Constraint, []GuessError) {
	var (
		out     []*Constraint
		dropped []GuessError
	)
	for i, g := range h {
		c, err := Compile(g, width)
		if err != nil {
			dropped = append(dropped, GuessError{Index: i, Err: err})
			continue
		}
		out = append(out, c)
	}
	return out, dropped
}

// Filter returns the words of dictionary consistent with every usable
// guess in h. With no usable guesses the dictionary is returned unchanged.
func (e Engine) Filter(dictionary []string, h History) Result {
	width := e.Width
	if width <= 0 {
		width = inferWidth(dictionary, h)
	}
	constraints, dropped := compileAll(h, width)
	res := Result{
		Considered: len(dictionary),
		Used:       len(constraints),
		Dropped:    dropped,
	}
	if len(constraints) == 0 {
		res.Words = slices.Clone(dictionary)
		if res.Words == nil {
			res.Words = []string{}
		}
		return res
	}
	res.Words = lo.Filter(dictionary, func(entry string, _ int) bool {
		w, err := Normalize(entry)
		if err != nil {
			return false
		}
		for _, c := range constraints {
			if !c.Allows(w) {
				return false
			}
		}
		return true
	})
	return res
}

// inferWidth picks the most common normalized dictionary length. Ties,
// and an empty dictionary, are settled by the lengths of the complete
// guesses, then by the shorter length, so guess order never matters.
func inferWidth(dictionary []string, h History) int {
	byDict := lo.CountValues(lo.FilterMap(dictionary, func(entry string, _ int) (int, bool) {
		w, err := Normalize(entry)
		return len(w), err == nil
	}))
	byGuess := lo.CountValues(lo.FilterMap(h, func(g Guess, _ int) (int, bool) {
		return len(g), len(g) > 0 && g.Complete()
	}))
	primary := byDict
	if len(primary) == 0 {
		primary = byGuess
	}

	best := 0
	for n := range primary {
		switch {
		case best == 0,
			primary[n] > primary[best],
			primary[n] == primary[best] && byGuess[n] > byGuess[best],
			primary[n] == primary[best] && byGuess[n] == byGuess[best] && n < best:
			best = n
		}
	}
	return best
}

// FilterDictionary is Engine{}.Filter without the bookkeeping: the board
// width is the dictionary's most common word length.
func FilterDictionary(dictionary []string, h History) []string {
	return Engine{}.Filter(dictionary, h).Words
}

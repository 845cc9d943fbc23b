package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGuessShape: the guess does not fit the board (wrong length
	// or a box holding something other than A–Z).
	ErrInvalidGuessShape = errors.New("invalid guess shape")
	// ErrIncompleteGuess: at least one box is still empty.
	ErrIncompleteGuess = errors.New("incomplete guess")
	// ErrMalformedEntry: a dictionary entry holds non-letters after normalization.
	ErrMalformedEntry = errors.New("malformed dictionary entry")
)

// GuessError records why a guess was left out of a calculation.
type GuessError struct {
	Index int // position in the history
	Err   error
}

func (e GuessError) Error() string {
	return fmt.Sprintf("guess %d: %v", e.Index, e.Err)
}

func (e GuessError) Unwrap() error { return e.Err }

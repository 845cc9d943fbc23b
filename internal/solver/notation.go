package solver

import (
	"fmt"
	"strings"
)

// ParseGuess reads the compact "WORD:pattern" form used by the CLI and API.
//
// Pattern characters:
//
//	g        green
//	y        yellow
//	b . -    gray
//	?        unset
//
// A "_" in WORD is an empty box. Without ":pattern" every box is unset.
func ParseGuess(s string) (Guess, error) {
	word, pattern, hasPattern := strings.Cut(strings.TrimSpace(s), ":")
	if word == "" {
		return nil, fmt.Errorf("%w: empty word", ErrInvalidGuessShape)
	}
	if !hasPattern {
		return NewGuess(word, nil), nil
	}
	if len(pattern) != len(word) {
		return nil, fmt.Errorf("%w: pattern %q does not match %q", ErrInvalidGuessShape, pattern, word)
	}
	colors := make([]Color, len(pattern))
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case 'g', 'G':
			colors[i] = Exact
		case 'y', 'Y':
			colors[i] = Present
		case 'b', 'B', '.', '-':
			colors[i] = Absent
		case '?':
			colors[i] = Unset
		default:
			return nil, fmt.Errorf("%w: unknown pattern character %q", ErrInvalidGuessShape, pattern[i])
		}
	}
	return NewGuess(word, colors), nil
}

// String renders g in the form ParseGuess reads.
func (g Guess) String() string {
	var b strings.Builder
	b.WriteString(g.Word())
	b.WriteByte(':')
	for _, box := range g {
		switch box.Color {
		case Exact:
			b.WriteByte('g')
		case Present:
			b.WriteByte('y')
		case Absent:
			b.WriteByte('b')
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

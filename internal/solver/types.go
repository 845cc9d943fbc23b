// internal/solver/types.go
//
// Core type definitions for the constraint engine.
// Defines:
//   - Letter: one board box's character (A–Z) or the Empty sentinel.
//   - Color:  per-box feedback (unset/gray/yellow/green).
//   - Box, Guess, History: the board as handed over by the UI layer.

package solver

import "strings"

// Letter is a single uppercase ASCII letter, or Empty for an unfilled box.
type Letter byte

// Empty marks a box the player has not typed into yet.
const Empty Letter = 0

// LetterOf converts a byte to a Letter, uppercasing a–z.
// Anything that is not an ASCII letter is returned unchanged so that the
// engine can reject it later.
func LetterOf(b byte) Letter {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return Letter(b)
}

// Valid reports whether l is A–Z.
func (l Letter) Valid() bool { return l >= 'A' && l <= 'Z' }

// String renders the letter, using "_" for Empty.
func (l Letter) String() string {
	if l == Empty {
		return "_"
	}
	return string(rune(l))
}

// Color represents the feedback attached to a single box.
// Possible values:
//   - "":       no feedback chosen yet (treated as gray when the box has a letter).
//   - "gray":   the letter has no further unaccounted occurrences in the secret.
//   - "yellow": the letter is in the secret, but not at this position.
//   - "green":  the letter is in the secret at exactly this position.
type Color string

const (
	Unset   Color = ""
	Absent  Color = "gray"
	Present Color = "yellow"
	Exact   Color = "green"
)

// Next returns the color a box takes when the player clicks it.
// Unset and Exact both advance to Absent so the cycle never returns to Unset.
func (c Color) Next() Color {
	switch c {
	case Absent:
		return Present
	case Present:
		return Exact
	default:
		return Absent
	}
}

// effective maps Unset to Absent.
func (c Color) effective() Color {
	if c == Unset {
		return Absent
	}
	return c
}

// Valid reports whether c is one of the four known colors.
func (c Color) Valid() bool {
	switch c {
	case Unset, Absent, Present, Exact:
		return true
	}
	return false
}

// ParseColor accepts the canonical names plus the spellings used by the
// web board CSS classes and the common game vocabulary.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Unset, true
	case "gray", "grey", "absent", "miss", "not-found", "b", "-", ".":
		return Absent, true
	case "yellow", "present", "found-yellow", "y":
		return Present, true
	case "green", "exact", "hit", "correct", "found-green", "g":
		return Exact, true
	}
	return Unset, false
}

// Box is one board position: a letter and the feedback it received.
type Box struct {
	Letter Letter
	Color  Color
}

// Guess is one row of the board.
type Guess []Box

// NewGuess builds a guess from a word and a parallel list of colors.
// Missing colors are left Unset; "_" or " " in word become Empty boxes.
func NewGuess(word string, colors []Color) Guess {
	g := make(Guess, len(word))
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch == '_' || ch == ' ' {
			g[i].Letter = Empty
		} else {
			g[i].Letter = LetterOf(ch)
		}
		if i < len(colors) {
			g[i].Color = colors[i]
		}
	}
	return g
}

// Word returns the guess letters as a string ("_" for empty boxes).
func (g Guess) Word() string {
	var b strings.Builder
	b.Grow(len(g))
	for _, box := range g {
		b.WriteString(box.Letter.String())
	}
	return b.String()
}

// Colors returns the per-box colors.
func (g Guess) Colors() []Color {
	out := make([]Color, len(g))
	for i, box := range g {
		out[i] = box.Color
	}
	return out
}

// Complete reports whether every box holds a letter.
func (g Guess) Complete() bool {
	for _, box := range g {
		if box.Letter == Empty {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the guess.
func (g Guess) Clone() Guess {
	return append(Guess(nil), g...)
}

// History is the ordered list of guesses a player has entered.
type History []Guess

// Clone returns a deep copy of the history.
func (h History) Clone() History {
	out := make(History, len(h))
	for i, g := range h {
		out[i] = g.Clone()
	}
	return out
}

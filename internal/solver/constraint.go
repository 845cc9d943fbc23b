// internal/solver/constraint.go
//
// Per-guess letter classification.
//
// A guess is compiled once into one rule per distinct letter. For a letter ℓ
// whose board positions split into green/yellow/gray sets of sizes g, y, x,
// a candidate holding ℓ c times passes iff:
//   - candidate[p] == ℓ for every green p,
//   - candidate[p] != ℓ for every yellow or gray p,
//   - c >= g+y,
//   - c == g+y when x > 0 (a gray copy caps the count).
//
// Counting per letter, rather than testing each box on its own, is what keeps
// repeated letters correct: "ROBOT" scored against "LEMON" yields one green O
// and one gray O, which admits exactly the words holding a single O.

package solver

import "fmt"

// letterRule holds the classification of one distinct guess letter.
type letterRule struct {
	letter byte
	green  []int // positions that must hold letter
	banned []int // yellow and gray positions that must not
	min    int   // g + y
	capped bool  // x > 0: count must equal min
}

// Constraint is a compiled guess, reusable across every candidate.
type Constraint struct {
	width int
	rules []letterRule
}

// Compile classifies the boxes of g by letter and color.
//
// Errors:
//   - ErrInvalidGuessShape if len(g) != width or a box holds a non-letter.
//   - ErrIncompleteGuess if any box is empty.
//
// Unset colors on filled boxes count as gray.
func Compile(g Guess, width int) (*Constraint, error) {
	if len(g) != width {
		return nil, fmt.Errorf("%w: %d letters, board is %d", ErrInvalidGuessShape, len(g), width)
	}
	if !g.Complete() {
		return nil, ErrIncompleteGuess
	}

	// Index rules by letter, keeping first-appearance order.
	var slot [26]int
	c := &Constraint{width: width}
	for p, box := range g {
		l := LetterOf(byte(box.Letter))
		if !l.Valid() {
			return nil, fmt.Errorf("%w: box %d holds %q", ErrInvalidGuessShape, p, byte(box.Letter))
		}
		if !box.Color.Valid() {
			return nil, fmt.Errorf("%w: box %d has color %q", ErrInvalidGuessShape, p, string(box.Color))
		}
		k := int(l - 'A')
		if slot[k] == 0 {
			c.rules = append(c.rules, letterRule{letter: byte(l)})
			slot[k] = len(c.rules)
		}
		r := &c.rules[slot[k]-1]
		switch box.Color.effective() {
		case Exact:
			r.green = append(r.green, p)
			r.min++
		case Present:
			r.banned = append(r.banned, p)
			r.min++
		case Absent:
			r.banned = append(r.banned, p)
			r.capped = true
		}
	}
	return c, nil
}

// Allows reports whether a normalized (uppercase A–Z) candidate is
// consistent with the compiled guess.
func (c *Constraint) Allows(candidate string) bool {
	if len(candidate) != c.width {
		return false
	}
	for i := range c.rules {
		if !c.rules[i].allows(candidate) {
			return false
		}
	}
	return true
}

func (r *letterRule) allows(w string) bool {
	for _, p := range r.green {
		if w[p] != r.letter {
			return false
		}
	}
	for _, p := range r.banned {
		if w[p] == r.letter {
			return false
		}
	}
	n := 0
	for i := 0; i < len(w); i++ {
		if w[i] == r.letter {
			n++
		}
	}
	if n < r.min {
		return false
	}
	return !r.capped || n == r.min
}

// ClassifyCandidate reports whether candidate is consistent with g.
//
// The board width is taken from the guess itself. A guess that cannot
// constrain anything (empty boxes, non-letters) rejects nothing, matching
// how FilterDictionary drops such guesses; a malformed candidate is never
// consistent.
func ClassifyCandidate(g Guess, candidate string) bool {
	w, err := Normalize(candidate)
	if err != nil {
		return false
	}
	c, err := Compile(g, len(g))
	if err != nil {
		return true
	}
	return c.Allows(w)
}

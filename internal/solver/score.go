package solver

import "fmt"

// Score produces the feedback a secret word gives to a guess, using the
// standard two-pass rule.
//
// Pass 1:
//   - Mark exact matches green.
//   - Count the secret letters left unmatched.
//
// Pass 2:
//   - Left to right, mark each remaining guess letter yellow while unmatched
//     copies remain, decrementing the count; otherwise gray.
//
// Both words are normalized first. Words of different lengths yield
// ErrInvalidGuessShape.
func Score(guess, secret string) ([]Color, error) {
	g, err := Normalize(guess)
	if err != nil {
		return nil, err
	}
	s, err := Normalize(secret)
	if err != nil {
		return nil, err
	}
	if len(g) != len(s) {
		return nil, fmt.Errorf("%w: guess has %d letters, secret %d", ErrInvalidGuessShape, len(g), len(s))
	}

	n := len(g)
	out := make([]Color, n)
	var counts [26]int

	for i := 0; i < n; i++ {
		if g[i] == s[i] {
			out[i] = Exact
		} else {
			counts[s[i]-'A']++
		}
	}
	for i := 0; i < n; i++ {
		if out[i] == Exact {
			continue
		}
		if k := g[i] - 'A'; counts[k] > 0 {
			out[i] = Present
			counts[k]--
		} else {
			out[i] = Absent
		}
	}
	return out, nil
}

// Scored returns guess annotated with the feedback secret would give it.
func Scored(guess, secret string) (Guess, error) {
	colors, err := Score(guess, secret)
	if err != nil {
		return nil, err
	}
	w, _ := Normalize(guess)
	return NewGuess(w, colors), nil
}

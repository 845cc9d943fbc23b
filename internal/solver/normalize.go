package solver

import (
	"fmt"
	"strings"
)

// Normalize uppercases a dictionary entry and strips surrounding whitespace,
// including the stray "\r" left by CRLF word lists.
// It returns ErrMalformedEntry when anything but A–Z remains.
func Normalize(entry string) (string, error) {
	w := strings.ToUpper(strings.TrimSpace(strings.Trim(entry, "\r\n")))
	if w == "" {
		return "", fmt.Errorf("%w: empty", ErrMalformedEntry)
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return "", fmt.Errorf("%w: %q", ErrMalformedEntry, entry)
		}
	}
	return w, nil
}

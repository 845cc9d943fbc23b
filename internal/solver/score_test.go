package solver

import (
	"errors"
	"slices"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		guess, secret string
		want          []Color
	}{
		{"ROBOT", "LEMON", colors(Absent, Absent, Absent, Exact, Absent)},
		{"SASSY", "SASSY", colors(Exact, Exact, Exact, Exact, Exact)},
		{"SPEED", "ABIDE", colors(Absent, Absent, Present, Absent, Present)},
		{"speed", "abide\r", colors(Absent, Absent, Present, Absent, Present)},
		{"EERIE", "THREE", colors(Present, Absent, Exact, Absent, Exact)},
		{"LEVEL", "HELLO", colors(Present, Exact, Absent, Absent, Present)},
	}
	for _, tc := range tests {
		t.Run(tc.guess+"/"+tc.secret, func(t *testing.T) {
			got, err := Score(tc.guess, tc.secret)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScore_Errors(t *testing.T) {
	if _, err := Score("CRANE", "CRANES"); !errors.Is(err, ErrInvalidGuessShape) {
		t.Errorf("length mismatch: %v", err)
	}
	if _, err := Score("CR4NE", "CRANE"); !errors.Is(err, ErrMalformedEntry) {
		t.Errorf("malformed guess: %v", err)
	}
}

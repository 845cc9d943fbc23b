package solver

import "testing"

func TestColorNext(t *testing.T) {
	tests := []struct{ from, to Color }{
		{Unset, Absent},
		{Absent, Present},
		{Present, Exact},
		{Exact, Absent},
	}
	for _, tc := range tests {
		if got := tc.from.Next(); got != tc.to {
			t.Errorf("%q.Next() = %q, want %q", tc.from, got, tc.to)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]Color{
		"":             Unset,
		"gray":         Absent,
		"GREY":         Absent,
		"not-found":    Absent,
		"found-yellow": Present,
		"yellow":       Present,
		"found-green":  Exact,
		"hit":          Exact,
	}
	for in, want := range tests {
		got, ok := ParseColor(in)
		if !ok || got != want {
			t.Errorf("ParseColor(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseColor("purple"); ok {
		t.Error("purple should not parse")
	}
}

func TestNewGuess(t *testing.T) {
	g := NewGuess("ab_d", []Color{Exact})
	if g.Word() != "AB_D" {
		t.Errorf("Word() = %q", g.Word())
	}
	if g[0].Color != Exact || g[1].Color != Unset {
		t.Errorf("colors = %v", g.Colors())
	}
	if g.Complete() {
		t.Error("guess with an underscore is not complete")
	}
}

func TestHistoryClone(t *testing.T) {
	h := History{NewGuess("CRANE", nil)}
	c := h.Clone()
	c[0][0].Color = Exact
	if h[0][0].Color != Unset {
		t.Error("Clone shares boxes with the original")
	}
}

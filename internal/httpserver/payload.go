package httpserver

import (
	"strings"

	"github.com/robalobadob/wordle/apps/solver-server/internal/board"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

// guessPayload is one row as sent by clients: either a word with a
// parallel color list, or the compact "WORD:pattern" form.
type guessPayload struct {
	Word    string   `json:"word" validate:"required_without=Pattern,max=32"`
	Colors  []string `json:"colors" validate:"max=32"`
	Pattern string   `json:"pattern" validate:"required_without=Word,max=65"`
}

// toGuess converts the payload. Unparsable input yields a guess the engine
// will drop as an invalid shape, so a bad row never fails the whole request.
func (p guessPayload) toGuess() solver.Guess {
	if p.Pattern != "" {
		g, err := solver.ParseGuess(p.Pattern)
		if err != nil {
			return solver.Guess{}
		}
		return g
	}
	return solver.NewGuess(strings.TrimSpace(p.Word), parseColors(p.Colors))
}

// parseColors maps color names; unknown names are kept verbatim and later
// rejected by the engine.
func parseColors(in []string) []solver.Color {
	if in == nil {
		return nil
	}
	out := make([]solver.Color, len(in))
	for i, s := range in {
		c, ok := solver.ParseColor(s)
		if !ok {
			c = solver.Color(s)
		}
		out[i] = c
	}
	return out
}

// droppedGuess reports a row left out of a calculation.
type droppedGuess struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// resultRes is the JSON shape of a calculation.
type resultRes struct {
	Count     int            `json:"count"`
	Words     []string       `json:"words"`
	Truncated bool           `json:"truncated,omitempty"`
	Used      int            `json:"used"`
	Dropped   []droppedGuess `json:"dropped"`
}

func toResultRes(res solver.Result, limit int) resultRes {
	out := resultRes{
		Count:   len(res.Words),
		Words:   res.Words,
		Used:    res.Used,
		Dropped: make([]droppedGuess, 0, len(res.Dropped)),
	}
	if limit > 0 && len(out.Words) > limit {
		out.Words = out.Words[:limit]
		out.Truncated = true
	}
	for _, d := range res.Dropped {
		out.Dropped = append(out.Dropped, droppedGuess{Index: d.Index, Error: d.Err.Error()})
	}
	return out
}

// rowView is the JSON shape of one board row.
type rowView struct {
	Word     string         `json:"word"`
	Colors   []solver.Color `json:"colors"`
	Pattern  string         `json:"pattern"`
	Complete bool           `json:"complete"`
}

// boardView is the JSON shape of a board.
type boardView struct {
	SessionID string    `json:"sessionId"`
	Width     int       `json:"width"`
	Rows      int       `json:"rows"`
	Guesses   []rowView `json:"guesses"`
}

func toBoardView(b *board.Board) boardView {
	v := boardView{SessionID: b.ID, Width: b.Width, Rows: b.Rows, Guesses: make([]rowView, 0, len(b.Guesses))}
	for _, g := range b.Guesses {
		v.Guesses = append(v.Guesses, rowView{
			Word:     g.Word(),
			Colors:   g.Colors(),
			Pattern:  g.String(),
			Complete: g.Complete(),
		})
	}
	return v
}

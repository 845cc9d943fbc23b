// internal/board/types.go
//
// Board state owned by the UI layer: the rows a player has typed and the
// colors they clicked. The constraint engine only ever sees a copy of it
// (Board.History).

package board

import (
	"errors"
	"time"

	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

var (
	ErrBoardFull      = errors.New("board is full")
	ErrBadWord        = errors.New("word does not fit the board")
	ErrRowOutOfRange  = errors.New("row out of range")
	ErrColOutOfRange  = errors.New("column out of range")
	ErrBadColor       = errors.New("unknown color")
	ErrColorsMismatch = errors.New("colors do not match word length")
)

// Board holds the state of a single solving session.
type Board struct {
	ID        string         // Session identifier (uuid).
	Width     int            // Letters per row (typically 5).
	Rows      int            // Maximum number of rows (typically 6).
	Guesses   []solver.Guess // Rows entered so far, in order.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// internal/board/board.go
//
// Board editing operations.
// Responsibilities:
//   - Create boards with default dimensions (6x5).
//   - Add, replace and remove rows; type into single boxes.
//   - Cycle a box's color the way clicking a tile does.
//   - Hand the engine an independent copy of the rows.
//
// Rows may contain empty boxes ("_"); the engine skips such rows when
// calculating, so a half-typed row never rejects the whole dictionary.

package board

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

const (
	DefaultRows  = 6
	DefaultWidth = 5
)

// New constructs an empty board. Non-positive dimensions fall back to the defaults.
func New(width, rows int) *Board {
	if width <= 0 {
		width = DefaultWidth
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	now := time.Now().UTC()
	return &Board{
		ID:        uuid.NewString(),
		Width:     width,
		Rows:      rows,
		Guesses:   []solver.Guess{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddGuess appends a row with every color unset and returns its index.
func (b *Board) AddGuess(word string) (int, error) {
	if len(b.Guesses) >= b.Rows {
		return -1, ErrBoardFull
	}
	if err := b.checkWord(word); err != nil {
		return -1, err
	}
	b.Guesses = append(b.Guesses, solver.NewGuess(word, nil))
	b.touch()
	return len(b.Guesses) - 1, nil
}

// SetGuess replaces a row. colors may be nil (all unset) or one per letter.
func (b *Board) SetGuess(row int, word string, colors []solver.Color) error {
	if err := b.checkRow(row); err != nil {
		return err
	}
	if err := b.checkWord(word); err != nil {
		return err
	}
	if colors != nil && len(colors) != len(word) {
		return ErrColorsMismatch
	}
	for _, c := range colors {
		if !c.Valid() {
			return fmt.Errorf("%w: %q", ErrBadColor, string(c))
		}
	}
	b.Guesses[row] = solver.NewGuess(word, colors)
	b.touch()
	return nil
}

// RemoveGuess deletes a row, shifting later rows up.
func (b *Board) RemoveGuess(row int) error {
	if err := b.checkRow(row); err != nil {
		return err
	}
	b.Guesses = append(b.Guesses[:row], b.Guesses[row+1:]...)
	b.touch()
	return nil
}

// SetLetter types a letter into one box; solver.Empty clears it.
// The box keeps its color.
func (b *Board) SetLetter(row, col int, l solver.Letter) error {
	if err := b.checkBox(row, col); err != nil {
		return err
	}
	if l != solver.Empty && !l.Valid() {
		return ErrBadWord
	}
	b.Guesses[row][col].Letter = l
	b.touch()
	return nil
}

// CycleColor advances a box to its next color and returns it.
func (b *Board) CycleColor(row, col int) (solver.Color, error) {
	if err := b.checkBox(row, col); err != nil {
		return solver.Unset, err
	}
	box := &b.Guesses[row][col]
	box.Color = box.Color.Next()
	b.touch()
	return box.Color, nil
}

// History returns a copy of the rows for the engine.
func (b *Board) History() solver.History {
	return solver.History(b.Guesses).Clone()
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	c.Guesses = b.History()
	return &c
}

func (b *Board) touch() { b.UpdatedAt = time.Now().UTC() }

// checkWord accepts exactly Width characters, each a letter or "_".
func (b *Board) checkWord(word string) error {
	if len(word) != b.Width {
		return fmt.Errorf("%w: %d letters, board is %d", ErrBadWord, len(word), b.Width)
	}
	for i := 0; i < len(word); i++ {
		if word[i] == '_' {
			continue
		}
		if !solver.LetterOf(word[i]).Valid() {
			return fmt.Errorf("%w: %q", ErrBadWord, word)
		}
	}
	return nil
}

func (b *Board) checkRow(row int) error {
	if row < 0 || row >= len(b.Guesses) {
		return ErrRowOutOfRange
	}
	return nil
}

func (b *Board) checkBox(row, col int) error {
	if err := b.checkRow(row); err != nil {
		return err
	}
	if col < 0 || col >= len(b.Guesses[row]) {
		return ErrColOutOfRange
	}
	return nil
}

// internal/words/words.go
//
// Dictionary source for the constraint engine.
//
// Responsibilities:
//   - Load a newline-delimited word list from a configured file, or fall back
//     to the embedded default list (assets/dictionary.txt).
//   - Normalize entries (uppercase, CR/whitespace stripped) and skip blank,
//     comment and malformed lines.
//   - Hand out immutable Dictionary snapshots; Reload swaps the snapshot
//     atomically so calculations already running keep the one they started with.
//
// File format:
//   - one word per line, case-insensitive, LF or CRLF line endings
//   - lines starting with "#" are comments
//   - entries of other lengths are kept; they simply never match a board
//
// Environment variables (read by internal/config):
//   WORDS_DICTIONARY_FILE=/path/to/dictionary.txt

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/samber/lo"

	"github.com/robalobadob/wordle/apps/solver-server/assets"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

// ErrEmpty is returned when a list holds no usable words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is a fully materialized, read-only word list.
type Dictionary struct {
	Origin    string   // file path, or "embedded"
	Words     []string // normalized entries in file order (duplicates kept)
	Malformed int      // lines skipped because they held non-letters
}

// Len returns the number of usable entries.
func (d *Dictionary) Len() int { return len(d.Words) }

// CountWidth returns how many entries have exactly width letters.
func (d *Dictionary) CountWidth(width int) int {
	return lo.CountBy(d.Words, func(w string) bool { return len(w) == width })
}

// Contains reports whether w (any case) is in the dictionary.
func (d *Dictionary) Contains(w string) bool {
	n, err := solver.Normalize(w)
	if err != nil {
		return false
	}
	return lo.Contains(d.Words, n)
}

// Parse reads one word per line from r.
func Parse(r io.Reader, origin string) (*Dictionary, error) {
	d := &Dictionary{Origin: origin}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w, err := solver.Normalize(line)
		if err != nil {
			d.Malformed++
			continue
		}
		d.Words = append(d.Words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", origin, err)
	}
	if len(d.Words) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// ReadFile loads a dictionary from path.
func ReadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// Embedded loads the dictionary compiled into the binary.
func Embedded() (*Dictionary, error) {
	f, err := assets.OpenDictionary()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, "embedded")
}

// Source owns the current dictionary snapshot.
type Source struct {
	path string
	cur  atomic.Pointer[Dictionary]
}

// NewSource returns a Source reading from path, or from the embedded list
// when path is empty. Call Reload before Current.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// NewStaticSource wraps an already loaded dictionary (tests, CLI).
func NewStaticSource(d *Dictionary) *Source {
	s := &Source{}
	s.cur.Store(d)
	return s
}

// Reload reads the list again and swaps it in. On error the previous
// snapshot stays current.
func (s *Source) Reload() (*Dictionary, error) {
	var (
		d   *Dictionary
		err error
	)
	if s.path == "" {
		d, err = Embedded()
	} else {
		d, err = ReadFile(s.path)
	}
	if err != nil {
		return nil, err
	}
	s.cur.Store(d)
	return d, nil
}

// Current returns the active snapshot, or an empty dictionary before the
// first successful Reload.
func (s *Source) Current() *Dictionary {
	if d := s.cur.Load(); d != nil {
		return d
	}
	return &Dictionary{}
}

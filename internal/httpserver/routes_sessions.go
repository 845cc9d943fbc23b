// internal/httpserver/routes_sessions.go
//
// Board sessions. A session is a board in the store plus a signed token
// naming it. All /sessions/current routes act on the caller's board.

package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver-server/internal/board"
	"github.com/robalobadob/wordle/apps/solver-server/internal/calclog"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
	"github.com/robalobadob/wordle/apps/solver-server/internal/store"
)

func (s *Server) mountSessions() {
	s.r.With(s.rateLimit).Post("/sessions", s.handleCreateSession)

	s.r.Route("/sessions/current", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleGetSession)
		r.Delete("/", s.handleDeleteSession)
		r.Post("/guesses", s.handleAddGuess)
		r.Put("/guesses/{row}", s.handleSetGuess)
		r.Delete("/guesses/{row}", s.handleRemoveGuess)
		r.Put("/guesses/{row}/boxes/{col}", s.handleSetLetter)
		r.Post("/guesses/{row}/boxes/{col}/cycle", s.handleCycleColor)
		r.With(s.rateLimit).Post("/calculate", s.handleCalculate)
	})
}

// sessionRes is returned by POST /sessions.
type sessionRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Board     boardView `json:"board"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	b := board.New(s.opts.Width, s.opts.Rows)
	if err := s.opts.Store.Save(r.Context(), b); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save board")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	tok, exp, err := s.signSessionToken(b.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_error")
		return
	}
	setSessionCookie(w, tok, exp, s.opts.SecureCookies)
	s.opts.Metrics.SetActiveSessions(s.opts.Store.Len())
	hlog.FromRequest(r).Info().Str("session", b.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, sessionRes{SessionID: b.ID, Token: tok, ExpiresAt: exp, Board: toBoardView(b)})
}

// loadBoard fetches the caller's board, writing the error response itself.
func (s *Server) loadBoard(w http.ResponseWriter, r *http.Request) (*board.Board, bool) {
	b, err := s.opts.Store.Get(r.Context(), sessionID(r.Context()))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session_not_found")
		return nil, false
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("load board")
		writeError(w, http.StatusInternalServerError, "server_error")
		return nil, false
	}
	return b, true
}

// mutate applies fn to the caller's board and saves it. On success the
// new board is written to the response.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, status int, fn func(b *board.Board) error) {
	s.boardMu.Lock()
	defer s.boardMu.Unlock()

	b, ok := s.loadBoard(w, r)
	if !ok {
		return
	}
	if err := fn(b); err != nil {
		writeBoardError(w, err)
		return
	}
	if err := s.opts.Store.Save(r.Context(), b); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save board")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, status, toBoardView(b))
}

func writeBoardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, board.ErrBoardFull):
		writeError(w, http.StatusConflict, "board_full")
	case errors.Is(err, board.ErrRowOutOfRange):
		writeError(w, http.StatusNotFound, "row_not_found")
	case errors.Is(err, board.ErrColOutOfRange):
		writeError(w, http.StatusNotFound, "box_not_found")
	case errors.Is(err, board.ErrBadWord):
		writeError(w, http.StatusBadRequest, "bad_word")
	case errors.Is(err, board.ErrBadColor):
		writeError(w, http.StatusBadRequest, "bad_color")
	case errors.Is(err, board.ErrColorsMismatch):
		writeError(w, http.StatusBadRequest, "colors_mismatch")
	default:
		writeError(w, http.StatusBadRequest, "bad_request")
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	b, ok := s.loadBoard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toBoardView(b))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.opts.Store.Delete(r.Context(), sessionID(r.Context())); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	setSessionCookie(w, "", time.Unix(0, 0), s.opts.SecureCookies)
	s.opts.Metrics.SetActiveSessions(s.opts.Store.Len())
	w.WriteHeader(http.StatusNoContent)
}

// wordReq carries a typed word, optionally with colors.
type wordReq struct {
	Word   string   `json:"word" validate:"required,max=32"`
	Colors []string `json:"colors" validate:"max=32"`
}

func (s *Server) handleAddGuess(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	s.mutate(w, r, http.StatusCreated, func(b *board.Board) error {
		row, err := b.AddGuess(req.Word)
		if err != nil || req.Colors == nil {
			return err
		}
		return b.SetGuess(row, req.Word, parseColors(req.Colors))
	})
}

func (s *Server) handleSetGuess(w http.ResponseWriter, r *http.Request) {
	row, ok := urlInt(r, "row")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_row")
		return
	}
	var req wordReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	s.mutate(w, r, http.StatusOK, func(b *board.Board) error {
		return b.SetGuess(row, req.Word, parseColors(req.Colors))
	})
}

func (s *Server) handleRemoveGuess(w http.ResponseWriter, r *http.Request) {
	row, ok := urlInt(r, "row")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_row")
		return
	}
	s.mutate(w, r, http.StatusOK, func(b *board.Board) error {
		return b.RemoveGuess(row)
	})
}

// letterReq sets or clears (empty string) one box.
type letterReq struct {
	Letter string `json:"letter" validate:"omitempty,len=1,alpha"`
}

func (s *Server) handleSetLetter(w http.ResponseWriter, r *http.Request) {
	row, okRow := urlInt(r, "row")
	col, okCol := urlInt(r, "col")
	if !okRow || !okCol {
		writeError(w, http.StatusBadRequest, "bad_box")
		return
	}
	var req letterReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	l := solver.Empty
	if req.Letter != "" {
		l = solver.LetterOf(req.Letter[0])
	}
	s.mutate(w, r, http.StatusOK, func(b *board.Board) error {
		return b.SetLetter(row, col, l)
	})
}

func (s *Server) handleCycleColor(w http.ResponseWriter, r *http.Request) {
	row, okRow := urlInt(r, "row")
	col, okCol := urlInt(r, "col")
	if !okRow || !okCol {
		writeError(w, http.StatusBadRequest, "bad_box")
		return
	}
	s.mutate(w, r, http.StatusOK, func(b *board.Board) error {
		_, err := b.CycleColor(row, col)
		return err
	})
}

// calculateReq optionally caps the number of words returned.
type calculateReq struct {
	Limit int `json:"limit" validate:"min=0"`
}

// handleCalculate filters the current dictionary snapshot by the board.
// An empty body is allowed, including a chunked one.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateReq
	if r.ContentLength != 0 {
		if err := s.decode(r, &req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad_request")
			return
		}
	}
	b, ok := s.loadBoard(w, r)
	if !ok {
		return
	}
	dict := s.opts.Words.Current().Words
	res := s.calculate(r, calclog.SourceSession, b.ID, dict, b.History())
	writeJSON(w, http.StatusOK, toResultRes(res, req.Limit))
}

// limiterIdle is how long a client's rate-limit bucket outlives its last
// request.
const limiterIdle = 10 * time.Minute

// SweepSessions drops boards idle for longer than idle, checking every
// interval until ctx is done.
func (s *Server) SweepSessions(ctx context.Context, idle, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			n, err := s.opts.Store.Sweep(ctx, now.Add(-idle))
			if err != nil {
				log.Warn().Err(err).Msg("session sweep")
				continue
			}
			if n > 0 {
				log.Info().Int("removed", n).Msg("idle sessions swept")
			}
			s.opts.Metrics.SetActiveSessions(s.opts.Store.Len())
			s.limits.prune(now.Add(-limiterIdle))
		}
	}
}

// internal/httpserver/routes_solve.go
//
// Stateless endpoints:
//   - POST /solve      → filter the dictionary with a full guess list
//   - POST /feedback   → colors a secret word would give a guess
//   - GET  /dictionary → active dictionary stats

package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/solver-server/internal/calclog"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

func (s *Server) mountSolve() {
	s.r.With(s.rateLimit).Post("/solve", s.handleSolve)
	s.r.Post("/feedback", s.handleFeedback)
	s.r.Get("/dictionary", s.handleDictionary)
}

// solveReq is the request payload for POST /solve.
// Dictionary, when given, replaces the server's word list for this call.
type solveReq struct {
	Guesses    []guessPayload `json:"guesses" validate:"max=64,dive"`
	Dictionary []string       `json:"dictionary" validate:"max=100000"`
	Limit      int            `json:"limit" validate:"min=0"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	history := make(solver.History, 0, len(req.Guesses))
	for _, p := range req.Guesses {
		history = append(history, p.toGuess())
	}
	dict := req.Dictionary
	if dict == nil {
		dict = s.opts.Words.Current().Words
	}

	res := s.calculate(r, calclog.SourceSolve, "", dict, history)
	writeJSON(w, http.StatusOK, toResultRes(res, req.Limit))
}

// calculate runs the engine and records metrics and the calculation log.
func (s *Server) calculate(r *http.Request, source, sessionID string, dict []string, h solver.History) solver.Result {
	start := time.Now()
	res := s.engine.Filter(dict, h)
	elapsed := time.Since(start)

	s.opts.Metrics.RecordCalculation(source, res, elapsed)
	logger := hlog.FromRequest(r)
	logger.Debug().
		Str("source", source).
		Int("considered", res.Considered).
		Int("remaining", len(res.Words)).
		Int("used", res.Used).
		Int("dropped", len(res.Dropped)).
		Dur("elapsed", elapsed).
		Msg("calculated")

	if s.opts.CalcLog != nil {
		err := s.opts.CalcLog.Insert(r.Context(), calclog.Entry{
			SessionID:      sessionID,
			Source:         source,
			GuessesUsed:    res.Used,
			GuessesDropped: len(res.Dropped),
			Considered:     res.Considered,
			Remaining:      len(res.Words),
			ElapsedMicros:  elapsed.Microseconds(),
		})
		if err != nil {
			logger.Warn().Err(err).Msg("record calculation")
		}
	}
	return res
}

// feedbackReq/Res payloads for POST /feedback.
type feedbackReq struct {
	Guess  string `json:"guess" validate:"required,max=32"`
	Secret string `json:"secret" validate:"required,max=32"`
}
type feedbackRes struct {
	Colors  []solver.Color `json:"colors"`
	Pattern string         `json:"pattern"`
	Known   bool           `json:"known"` // secret is in the active dictionary
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := s.decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}
	g, err := solver.Scored(req.Guess, req.Secret)
	if err != nil {
		code := "invalid"
		if errors.Is(err, solver.ErrInvalidGuessShape) {
			code = "length_mismatch"
		}
		writeError(w, http.StatusBadRequest, code)
		return
	}
	writeJSON(w, http.StatusOK, feedbackRes{
		Colors:  g.Colors(),
		Pattern: g.String(),
		Known:   s.opts.Words.Current().Contains(req.Secret),
	})
}

// dictionaryRes is returned by GET /dictionary.
type dictionaryRes struct {
	Origin    string `json:"origin"`
	Words     int    `json:"words"`
	Width     int    `json:"width"`
	OfWidth   int    `json:"ofWidth"`
	Malformed int    `json:"malformed"`
}

func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	d := s.opts.Words.Current()
	writeJSON(w, http.StatusOK, dictionaryRes{
		Origin:    d.Origin,
		Words:     d.Len(),
		Width:     s.opts.Width,
		OfWidth:   d.CountWidth(s.opts.Width),
		Malformed: d.Malformed,
	})
}

// urlInt reads a non-negative integer URL parameter.
func urlInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// internal/httpserver/routes_stats.go
//
// Calculation stats and dictionary administration:
//   - GET  /stats/calculations       → recent calculations + summary
//   - POST /admin/dictionary/reload  → reread the word list (basic auth)

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver-server/internal/calclog"
)

func (s *Server) mountStats() {
	s.r.Get("/stats/calculations", s.handleCalcStats)
	s.r.With(s.requireAdmin).Post("/admin/dictionary/reload", s.handleReload)
}

type calcStatsRes struct {
	Summary calclog.Summary `json:"summary"`
	Recent  []calclog.Entry `json:"recent"`
}

func (s *Server) handleCalcStats(w http.ResponseWriter, r *http.Request) {
	if s.opts.CalcLog == nil {
		writeError(w, http.StatusServiceUnavailable, "stats_disabled")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 500 {
			writeError(w, http.StatusBadRequest, "bad_limit")
			return
		}
		limit = n
	}

	var res calcStatsRes
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		res.Summary, err = s.opts.CalcLog.Summary(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.Recent, err = s.opts.CalcLog.Recent(ctx, limit)
		return err
	})
	if err := g.Wait(); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("calculation stats")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if res.Recent == nil {
		res.Recent = []calclog.Entry{}
	}
	writeJSON(w, http.StatusOK, res)
}

type reloadRes struct {
	Origin    string `json:"origin"`
	Words     int    `json:"words"`
	Malformed int    `json:"malformed"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	d, err := s.opts.Words.Reload()
	s.opts.Metrics.RecordReload(err)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("dictionary reload")
		writeError(w, http.StatusUnprocessableEntity, "reload_failed")
		return
	}
	s.opts.Metrics.SetDictionarySize(d.Len())
	hlog.FromRequest(r).Info().Str("origin", d.Origin).Int("words", d.Len()).Msg("dictionary reloaded")
	writeJSON(w, http.StatusOK, reloadRes{Origin: d.Origin, Words: d.Len(), Malformed: d.Malformed})
}

// main.go
//
// Entry point for the Wordle solver server.
// Startup order: .env → config → logging → dictionary → SQLite → HTTP.
// The server and the idle-session sweeper share one errgroup; SIGINT or
// SIGTERM cancels both and the HTTP server drains for up to 10s.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver-server/internal/calclog"
	"github.com/robalobadob/wordle/apps/solver-server/internal/config"
	"github.com/robalobadob/wordle/apps/solver-server/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver-server/internal/metrics"
	"github.com/robalobadob/wordle/apps/solver-server/internal/sqlitedb"
	"github.com/robalobadob/wordle/apps/solver-server/internal/store"
	"github.com/robalobadob/wordle/apps/solver-server/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogging(cfg)

	src := words.NewSource(cfg.DictionaryFile)
	dict, err := src.Reload()
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.DictionaryFile).Msg("failed to load dictionary")
	}
	log.Info().Str("origin", dict.Origin).Int("words", dict.Len()).Int("malformed", dict.Malformed).Msg("dictionary loaded")

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open db")
	}
	defer db.Close()
	if err := sqlitedb.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	m := metrics.New("wordle_solver")
	m.SetDictionarySize(dict.Len())

	srv := httpserver.New(httpserver.Options{
		Store:             store.NewMemoryStore(),
		CalcLog:           calclog.NewStore(db),
		Words:             src,
		Metrics:           m,
		Width:             cfg.BoardWidth,
		Rows:              cfg.BoardRows,
		JWTSecret:         cfg.JWTSecret,
		JWTExpiry:         cfg.JWTExpiry(),
		AdminUser:         cfg.AdminUser,
		AdminPasswordHash: cfg.AdminPasswordHash,
		ClientOrigin:      cfg.ClientOrigin,
		SecureCookies:     cfg.SecureCookies,
		RateLimitRPS:      cfg.RateLimitRPS,
		RateLimitBurst:    cfg.RateLimitBurst,
	})
	hs := srv.HTTPServer(":" + cfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("starting solver-server")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return srv.SweepSessions(ctx, cfg.SessionIdleTimeout, time.Minute)
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// setupLogging applies the configured level and output format.
func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

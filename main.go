package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/OwenDdev/WNP-A02/internal/history"
	"github.com/OwenDdev/WNP-A02/internal/httpserver"
	"github.com/OwenDdev/WNP-A02/internal/puzzle"
	"github.com/OwenDdev/WNP-A02/internal/tcpserver"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	pool, err := puzzle.NewPool(os.Getenv("PUZZLES_DIR"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle pool")
	}
	log.Info().Int("puzzles", pool.Size()).Str("source", pool.Source()).Msg("puzzle pool loaded")

	// Round history: SQLite when the DB opens, in-memory otherwise. A broken
	// database degrades stats, never gameplay.
	var hist history.Store
	if db, err := openDB(getEnv("DB_PATH", "./data/app.db")); err != nil {
		log.Warn().Err(err).Msg("database unavailable, using in-memory history")
		hist = history.NewMemoryStore()
	} else if err := migrate(db); err != nil {
		log.Warn().Err(err).Msg("migration failed, using in-memory history")
		hist = history.NewMemoryStore()
	} else {
		hist = history.NewSQLiteStore(db)
	}

	// Diagnostics sidecar.
	httpPort := getEnv("HTTP_PORT", "7778")
	go func() {
		log.Info().Str("port", httpPort).Msg("starting http sidecar")
		if err := httpserver.New(pool, hist).Start(":" + httpPort); err != nil {
			log.Error().Err(err).Msg("http sidecar exited")
		}
	}()

	// Game server.
	srv := tcpserver.New(pool, hist)
	port := getEnv("PORT", "7777")
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(":" + port) }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown incomplete")
		}
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

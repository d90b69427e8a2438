package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/interiorhome/auth"
	"github.com/diewo77/interiorhome/internal/config"
	"github.com/diewo77/interiorhome/internal/db"
	"github.com/diewo77/interiorhome/internal/logger"
	"github.com/diewo77/interiorhome/internal/server"

	"github.com/joho/godotenv"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	if *migrateOnlyFlag {
		if _, err := db.ConnectAndMigrate(cfg.DatabaseDSN); err != nil {
			logger.L.Fatal().Err(err).Msg("migrate-only failed")
		}
		logger.L.Info().Msg("migrations completed; exiting as requested")
		return
	}

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		// A store failure at startup is fatal; there is no retry loop
		// beyond the one inside ConnectAndMigrate.
		logger.L.Fatal().Err(err).Msg("database connection failed")
	}

	sessions := auth.NewManager(cfg.SessionTTL)
	handler := server.New(dbConn, sessions)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		logger.L.Info().Str("env", cfg.Env).Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.L.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L.Error().Err(err).Msg("error during shutdown")
	}
	logger.L.Info().Msg("server stopped")
}

// cmd/webhook/main.go
//
// Standalone webhook receiver. Deployments that terminate gateway callbacks
// separately from the main API can run this binary against the same database.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/khoulefall/padelcourt/internal/api"
	"github.com/khoulefall/padelcourt/internal/db"
	"github.com/khoulefall/padelcourt/internal/webhook"
)

const shutdownTimeout = 15 * time.Second

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	environment := getEnv("ENVIRONMENT", "development")
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	port := getEnv("PORT", "8081")
	dbPath := getEnv("DATABASE_PATH", "data/padelcourt.db")
	secret := os.Getenv("LOMI_WEBHOOK_SECRET")
	if secret == "" {
		log.Fatal().Msg("LOMI_WEBHOOK_SECRET is required")
	}

	database, err := db.New(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("/webhooks/lomi", webhook.New(database, secret))

	server := &http.Server{
		Addr: ":" + port,
		Handler: api.ChainMiddleware(
			mux,
			api.WithLogging,
			api.WithRecovery,
			api.WithRequestID,
		),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("Starting webhook server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down webhook server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Webhook server terminated with error")
		os.Exit(1)
	}
}

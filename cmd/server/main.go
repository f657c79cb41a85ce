// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/khoulefall/padelcourt/internal/api/admin"
	"github.com/khoulefall/padelcourt/internal/api/auth"
	"github.com/khoulefall/padelcourt/internal/api/courts"
	"github.com/khoulefall/padelcourt/internal/api/payments"
	"github.com/khoulefall/padelcourt/internal/api/reservations"
	"github.com/khoulefall/padelcourt/internal/config"
	"github.com/khoulefall/padelcourt/internal/db"
	"github.com/khoulefall/padelcourt/internal/email"
	"github.com/khoulefall/padelcourt/internal/lomi"
	"github.com/khoulefall/padelcourt/internal/scheduler"
	"github.com/khoulefall/padelcourt/internal/webhook"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	var sender email.EmailSender
	if cfg.Email.Enabled {
		sesClient, err := email.NewSESClient(
			cfg.Email.AccessKeyID,
			cfg.Email.SecretAccessKey,
			cfg.Email.Region,
			cfg.Email.Sender,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create SES client")
		}
		sender = sesClient
	}

	var gateway payments.SessionCreator
	if !cfg.Lomi.Simulation {
		gateway = lomi.NewClient(cfg.Lomi.APIURL, cfg.Lomi.APIKey)
	} else {
		log.Info().Msg("Payment gateway running in simulation mode")
	}

	auth.Init(cfg, database.Queries)
	auth.InitHandlers()
	courts.InitHandlers(database.Queries)
	reservations.InitHandlers(database, cfg, sender)
	payments.InitHandlers(database, cfg, gateway)
	admin.InitHandlers(database.Queries)

	if err := scheduler.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	pendingTTL := time.Duration(cfg.Booking.PendingTTLHours) * time.Hour
	if err := scheduler.RegisterExpiryJob(database, pendingTTL); err != nil {
		log.Fatal().Err(err).Msg("Failed to register expiry job")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	server := newServer(cfg, webhook.New(database, cfg.Lomi.WebhookSecret))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown error")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

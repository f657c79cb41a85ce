package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/khoulefall/padelcourt/internal/db"
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
)

const expiryJobTimeout = 2 * time.Minute

// RegisterExpiryJob registers the recurring task that cancels reservations
// left pending past their payment window.
func RegisterExpiryJob(database *db.DB, pendingTTL time.Duration) error {
	if database == nil {
		return fmt.Errorf("expiry job requires database")
	}
	if pendingTTL <= 0 {
		return fmt.Errorf("expiry job requires positive pending TTL")
	}

	jobName := "pending_reservation_expiry"
	cronExpr := "*/15 * * * *"
	jobLogger := log.With().
		Str("component", "pending_reservation_expiry_job").
		Str("job_name", jobName).
		Logger()

	_, err := AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), expiryJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		if err := ExpirePendingReservations(ctx, database, pendingTTL, &jobLogger); err != nil {
			jobLogger.Error().Err(err).Msg("Pending reservation expiry run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("add pending reservation expiry job: %w", err)
	}

	return nil
}

// ExpirePendingReservations cancels every reservation still pending past the
// TTL and marks its payment failed. Each reservation is handled in its own
// transaction so one bad row does not block the rest.
func ExpirePendingReservations(ctx context.Context, database *db.DB, pendingTTL time.Duration, logger *zerolog.Logger) error {
	cutoff := time.Now().UTC().Add(-pendingTTL)

	stale, err := database.Queries.ListStalePendingReservations(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list stale pending reservations: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	expired := 0
	for _, reservation := range stale {
		err := database.RunInTx(ctx, func(q *dbgen.Queries) error {
			affected, err := q.CancelReservation(ctx, reservation.ID)
			if err != nil {
				return err
			}
			if affected == 0 {
				// Someone confirmed or cancelled it since the listing.
				return nil
			}
			_, err = q.FailPaymentByReservation(ctx, reservation.ID)
			return err
		})
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("Failed to expire pending reservation")
			}
			continue
		}
		expired++
	}

	if logger != nil && expired > 0 {
		logger.Info().Int("expired", expired).Time("cutoff", cutoff).Msg("Expired stale pending reservations")
	}
	return nil
}

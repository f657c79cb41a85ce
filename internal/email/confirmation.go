package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
)

const confirmationEmailTimeout = 5 * time.Second

// SendReservationConfirmation emails the reservation owner asynchronously.
// Delivery failures are logged, never surfaced to the caller.
func SendReservationConfirmation(ctx context.Context, q *dbgen.Queries, sender EmailSender, reservation dbgen.Reservation, logger *zerolog.Logger) {
	if sender == nil || q == nil {
		return
	}

	user, err := q.GetUserByID(ctx, reservation.UserID)
	if err != nil {
		if logger != nil {
			logger.Error().Err(err).Int64("user_id", reservation.UserID).Msg("Failed to load user for confirmation email")
		}
		return
	}
	recipient := strings.TrimSpace(user.Email)
	if recipient == "" {
		return
	}

	court, err := q.GetCourtByID(ctx, reservation.CourtID)
	if err != nil {
		if logger != nil {
			logger.Error().Err(err).Int64("court_id", reservation.CourtID).Msg("Failed to load court for confirmation email")
		}
		return
	}

	subject := fmt.Sprintf("Reservation confirmed: %s", court.Name)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation is confirmed.\n\nCourt: %s\nFrom: %s\nTo: %s\nTotal: %d XOF\n\nSee you on the court!\n",
		user.Name,
		court.Name,
		reservation.StartTime.Format("Mon 2 Jan 2006 15:04"),
		reservation.EndTime.Format("Mon 2 Jan 2006 15:04"),
		reservation.TotalPrice,
	)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), confirmationEmailTimeout)
		defer cancel()
		if err := sender.Send(sendCtx, recipient, subject, body); err != nil && logger != nil {
			logger.Error().Err(err).Str("recipient", recipient).Msg("Failed to send confirmation email")
		}
	}()
}

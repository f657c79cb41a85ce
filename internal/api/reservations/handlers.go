// internal/api/reservations/handlers.go
package reservations

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/khoulefall/padelcourt/internal/api/apiutil"
	"github.com/khoulefall/padelcourt/internal/api/authz"
	"github.com/khoulefall/padelcourt/internal/config"
	"github.com/khoulefall/padelcourt/internal/db"
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
	"github.com/khoulefall/padelcourt/internal/email"
	"github.com/khoulefall/padelcourt/internal/models"
)

const (
	reservationsQueryTimeout = 5 * time.Second
	minReservationDuration   = time.Hour
	slotGranularity          = 15 * time.Minute
)

var errSlotTaken = errors.New("slot already reserved")

var (
	database    *db.DB
	appConfig   *config.Config
	emailSender email.EmailSender
)

// InitHandlers must be called during server startup before handling requests.
// The email sender may be nil, in which case confirmations are skipped.
func InitHandlers(d *db.DB, cfg *config.Config, sender email.EmailSender) {
	database = d
	appConfig = cfg
	emailSender = sender
}

type createReservationRequest struct {
	CourtID   int64  `json:"court_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Method    string `json:"method"`
}

type reservationResponse struct {
	Reservation dbgen.Reservation `json:"reservation"`
	Payment     dbgen.Payment     `json:"payment"`
}

// POST /api/v1/reservations
func HandleReservationCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}

	var req createReservationRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.CourtID <= 0 {
		http.Error(w, "court_id must be greater than 0", http.StatusBadRequest)
		return
	}

	start, err := apiutil.ParseTimeField(req.StartTime, "start_time")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	end, err := apiutil.ParseTimeField(req.EndTime, "end_time")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validateSlot(start, end); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	method, err := models.ParsePaymentMethod(strings.TrimSpace(req.Method))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	court, err := database.Queries.GetCourtByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Court not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("court_id", req.CourtID).Msg("Failed to load court")
		http.Error(w, "Failed to load court", http.StatusInternalServerError)
		return
	}
	if status, parseErr := models.ParseCourtStatus(court.Status); parseErr != nil || !status.Bookable() {
		http.Error(w, "Court is not available for booking", http.StatusConflict)
		return
	}

	// Price is fixed at creation time and never recomputed, even if the
	// court's hourly rate changes later.
	totalPrice := court.PricePerHour * int64(end.Sub(start)/time.Minute) / 60

	var (
		reservation dbgen.Reservation
		payment     dbgen.Payment
	)
	err = database.RunInTx(ctx, func(q *dbgen.Queries) error {
		overlaps, err := q.CountOverlappingReservations(ctx, dbgen.CountOverlappingReservationsParams{
			CourtID:   court.ID,
			EndTime:   end,
			StartTime: start,
		})
		if err != nil {
			return err
		}
		if overlaps > 0 {
			return errSlotTaken
		}

		reservation, err = q.CreateReservation(ctx, dbgen.CreateReservationParams{
			CourtID:    court.ID,
			UserID:     user.ID,
			StartTime:  start,
			EndTime:    end,
			TotalPrice: totalPrice,
			Status:     string(models.ReservationPending),
		})
		if err != nil {
			return err
		}

		payment, err = q.CreatePayment(ctx, dbgen.CreatePaymentParams{
			ReservationID: reservation.ID,
			UserID:        user.ID,
			Amount:        totalPrice,
			Currency:      appConfig.Lomi.Currency,
			Method:        string(method),
			Status:        string(models.PaymentPending),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) {
			http.Error(w, "Time slot is already reserved", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Int64("court_id", court.ID).Msg("Failed to create reservation")
		http.Error(w, "Failed to create reservation", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("reservation_id", reservation.ID).
		Int64("court_id", court.ID).
		Int64("user_id", user.ID).
		Int64("total_price", totalPrice).
		Str("method", string(method)).
		Msg("Reservation created")

	if err := apiutil.WriteJSON(w, http.StatusCreated, reservationResponse{Reservation: reservation, Payment: payment}); err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("Failed to write reservation response")
	}
}

// GET /api/v1/my/reservations
func HandleMyReservations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	reservations, err := database.Queries.ListReservationsByUser(ctx, user.ID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to list reservations")
		http.Error(w, "Failed to load reservations", http.StatusInternalServerError)
		return
	}

	if reservations == nil {
		reservations = []dbgen.Reservation{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"reservations": reservations}); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write reservations response")
	}
}

// GET /api/v1/reservations?status=&from=&to=
func HandleReservationsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	var status string
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		parsed, err := models.ParseReservationStatus(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		status = string(parsed)
	}

	after := time.Unix(0, 0).UTC()
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		parsed, err := apiutil.ParseDateField(raw, "from")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		after = parsed
	}

	before := time.Now().UTC().AddDate(10, 0, 0)
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		parsed, err := apiutil.ParseDateField(raw, "to")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		before = parsed.AddDate(0, 0, 1) // inclusive end date
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	reservations, err := database.Queries.ListReservationsFiltered(ctx, dbgen.ListReservationsFilteredParams{
		Status: status,
		After:  after,
		Before: before,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list reservations")
		http.Error(w, "Failed to load reservations", http.StatusInternalServerError)
		return
	}

	if reservations == nil {
		reservations = []dbgen.Reservation{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"reservations": reservations}); err != nil {
		logger.Error().Err(err).Msg("Failed to write reservations response")
	}
}

// POST /api/v1/reservations/{id}/confirm
func HandleReservationConfirm(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	reservationID, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "reservation id")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	if _, err := database.Queries.GetReservationByID(ctx, reservationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to load reservation")
		http.Error(w, "Failed to load reservation", http.StatusInternalServerError)
		return
	}

	// Confirming settles the on-spot payment in the same transaction. A
	// pending online payment is settled by the gateway webhook instead.
	err = database.RunInTx(ctx, func(q *dbgen.Queries) error {
		affected, err := q.ConfirmReservationIfPending(ctx, reservationID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return models.ErrInvalidTransition
		}

		payment, err := q.GetPaymentByReservationID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		if payment.Method == string(models.PaymentOnSpot) {
			_, err = q.CompletePaymentByReservation(ctx, reservationID)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			http.Error(w, "Reservation is not pending", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to confirm reservation")
		http.Error(w, "Failed to confirm reservation", http.StatusInternalServerError)
		return
	}

	reservation, err := database.Queries.GetReservationByID(ctx, reservationID)
	if err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to reload reservation")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	email.SendReservationConfirmation(ctx, database.Queries, emailSender, reservation, logger)

	if err := apiutil.WriteJSON(w, http.StatusOK, reservation); err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to write confirm response")
	}
}

// POST /api/v1/reservations/{id}/cancel
func HandleReservationCancel(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}

	reservationID, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "reservation id")
	if err != nil {
		http.Error(w, "Invalid reservation ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reservationsQueryTimeout)
	defer cancel()

	reservation, err := database.Queries.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to load reservation")
		http.Error(w, "Failed to load reservation", http.StatusInternalServerError)
		return
	}

	if !authz.CanManageReservation(user, reservation.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	current, err := models.ParseReservationStatus(reservation.Status)
	if err != nil || !current.CanTransitionTo(models.ReservationCancelled) {
		http.Error(w, "Reservation cannot be cancelled", http.StatusConflict)
		return
	}

	affected, err := database.Queries.CancelReservation(ctx, reservationID)
	if err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to cancel reservation")
		http.Error(w, "Failed to cancel reservation", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.Error(w, "Reservation cannot be cancelled", http.StatusConflict)
		return
	}

	logger.Info().
		Int64("reservation_id", reservationID).
		Int64("user_id", user.ID).
		Msg("Reservation cancelled")

	cancelled, err := database.Queries.GetReservationByID(ctx, reservationID)
	if err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to reload reservation")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, cancelled); err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Msg("Failed to write cancel response")
	}
}

func validateSlot(start, end time.Time) error {
	if !end.After(start) {
		return apiutil.FieldError{Field: "end_time", Reason: "must be after start_time"}
	}
	if end.Sub(start) < minReservationDuration {
		return apiutil.FieldError{Field: "end_time", Reason: "reservation must last at least 1 hour"}
	}
	if !start.Truncate(slotGranularity).Equal(start) || !end.Truncate(slotGranularity).Equal(end) {
		return apiutil.FieldError{Field: "start_time", Reason: "times must fall on 15-minute boundaries"}
	}
	if start.Before(time.Now()) {
		return apiutil.FieldError{Field: "start_time", Reason: "must be in the future"}
	}
	return nil
}

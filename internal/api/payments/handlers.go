// internal/api/payments/handlers.go
package payments

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/khoulefall/padelcourt/internal/api/apiutil"
	"github.com/khoulefall/padelcourt/internal/api/authz"
	"github.com/khoulefall/padelcourt/internal/config"
	"github.com/khoulefall/padelcourt/internal/db"
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
	"github.com/khoulefall/padelcourt/internal/lomi"
	"github.com/khoulefall/padelcourt/internal/models"
)

const (
	paymentsQueryTimeout = 5 * time.Second

	// Simulated checkouts succeed at this rate when no explicit outcome
	// is requested, mirroring the demo gateway.
	simulatedSuccessRate = 0.8

	providerLomi       = "lomi"
	providerSimulation = "simulation"
)

// SessionCreator abstracts the live gateway for tests.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, params lomi.CheckoutParams) (lomi.CheckoutSession, error)
}

var (
	database  *db.DB
	appConfig *config.Config
	gateway   SessionCreator
)

// InitHandlers must be called during server startup before handling requests.
// The gateway may be nil when simulation mode is enabled.
func InitHandlers(d *db.DB, cfg *config.Config, g SessionCreator) {
	database = d
	appConfig = cfg
	gateway = g
}

type checkoutRequest struct {
	ReservationID int64 `json:"reservation_id"`
}

type simulateRequest struct {
	Outcome string `json:"outcome"`
}

// POST /api/v1/payments/checkout
func HandleCheckoutCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil || appConfig == nil {
		logger.Error().Msg("Payment handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}

	var req checkoutRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ReservationID <= 0 {
		http.Error(w, "reservation_id must be greater than 0", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), paymentsQueryTimeout)
	defer cancel()

	reservation, err := database.Queries.GetReservationByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Reservation not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("reservation_id", req.ReservationID).Msg("Failed to load reservation")
		http.Error(w, "Failed to load reservation", http.StatusInternalServerError)
		return
	}

	if !authz.CanManageReservation(user, reservation.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	payment, err := database.Queries.GetPaymentByReservationID(ctx, reservation.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "No payment for reservation", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("Failed to load payment")
		http.Error(w, "Failed to load payment", http.StatusInternalServerError)
		return
	}

	if payment.Method != string(models.PaymentOnline) {
		http.Error(w, "Reservation is paid on the spot", http.StatusConflict)
		return
	}
	if payment.Status != string(models.PaymentPending) {
		http.Error(w, "Payment is already settled", http.StatusConflict)
		return
	}

	var session lomi.CheckoutSession
	provider := providerLomi
	if appConfig.Lomi.Simulation || gateway == nil {
		provider = providerSimulation
		session = lomi.SimulatedSession(appConfig.App.BaseURL, payment.Amount, payment.Currency, reservation.ID)
	} else {
		owner, err := database.Queries.GetUserByID(ctx, reservation.UserID)
		if err != nil {
			logger.Error().Err(err).Int64("user_id", reservation.UserID).Msg("Failed to load reservation owner")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		session, err = gateway.CreateCheckoutSession(ctx, lomi.CheckoutParams{
			Amount:            payment.Amount,
			CurrencyCode:      payment.Currency,
			SuccessURL:        appConfig.App.BaseURL + "/payment-success",
			CancelURL:         appConfig.App.BaseURL + "/payment-cancelled",
			ReservationID:     reservation.ID,
			ExpirationMinutes: appConfig.Lomi.ExpirationMinutes,
			Title:             "Court reservation",
			Description:       "Padel court booking",
			CustomerEmail:     owner.Email,
			CustomerName:      owner.Name,
			CustomerPhone:     owner.Phone.String,
		})
		if err != nil {
			var gwErr *lomi.GatewayError
			if errors.As(err, &gwErr) {
				logger.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("Gateway rejected checkout session")
				http.Error(w, "Payment gateway unavailable", http.StatusBadGateway)
				return
			}
			logger.Error().Err(err).Int64("reservation_id", reservation.ID).Msg("Failed to create checkout session")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	if _, err := database.Queries.UpdatePaymentSession(ctx, dbgen.UpdatePaymentSessionParams{
		Provider:          apiutil.ToNullString(provider),
		ProviderSessionID: apiutil.ToNullString(session.SessionID),
		PaymentUrl:        apiutil.ToNullString(session.URL),
		ID:                payment.ID,
	}); err != nil {
		logger.Error().Err(err).Int64("payment_id", payment.ID).Msg("Failed to store checkout session")
		http.Error(w, "Failed to store checkout session", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("payment_id", payment.ID).
		Int64("reservation_id", reservation.ID).
		Str("provider", provider).
		Msg("Checkout session created")

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"checkout_url": session.URL}); err != nil {
		logger.Error().Err(err).Int64("payment_id", payment.ID).Msg("Failed to write checkout response")
	}
}

// POST /api/v1/payments/{id}/simulate
func HandlePaymentSimulate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Payment handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}

	paymentID, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "payment id")
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	var req simulateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}
	outcome := strings.TrimSpace(req.Outcome)
	if outcome != "" && outcome != "success" && outcome != "failure" {
		http.Error(w, "outcome must be success or failure", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), paymentsQueryTimeout)
	defer cancel()

	payment, err := database.Queries.GetPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Payment not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("payment_id", paymentID).Msg("Failed to load payment")
		http.Error(w, "Failed to load payment", http.StatusInternalServerError)
		return
	}

	if !authz.CanManageReservation(user, payment.UserID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if payment.Status != string(models.PaymentPending) {
		http.Error(w, "Payment is already settled", http.StatusConflict)
		return
	}

	succeeded := outcome == "success"
	if outcome == "" {
		succeeded = rand.Float64() < simulatedSuccessRate
	}

	// A successful simulated payment has the same effect as the live
	// webhook: the payment completes and the pending reservation confirms.
	err = database.RunInTx(ctx, func(q *dbgen.Queries) error {
		if succeeded {
			if _, err := q.CompletePaymentByReservation(ctx, payment.ReservationID); err != nil {
				return err
			}
			_, err := q.ConfirmReservationIfPending(ctx, payment.ReservationID)
			return err
		}
		_, err := q.FailPaymentByReservation(ctx, payment.ReservationID)
		return err
	})
	if err != nil {
		logger.Error().Err(err).Int64("payment_id", paymentID).Msg("Failed to apply simulated outcome")
		http.Error(w, "Failed to apply simulated outcome", http.StatusInternalServerError)
		return
	}

	updatedPayment, err := database.Queries.GetPaymentByID(ctx, paymentID)
	if err != nil {
		logger.Error().Err(err).Int64("payment_id", paymentID).Msg("Failed to reload payment")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	reservation, err := database.Queries.GetReservationByID(ctx, payment.ReservationID)
	if err != nil {
		logger.Error().Err(err).Int64("reservation_id", payment.ReservationID).Msg("Failed to reload reservation")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("payment_id", paymentID).
		Bool("succeeded", succeeded).
		Msg("Simulated payment settled")

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"payment_status":     updatedPayment.Status,
		"reservation_status": reservation.Status,
	}); err != nil {
		logger.Error().Err(err).Int64("payment_id", paymentID).Msg("Failed to write simulate response")
	}
}

// GET /api/v1/admin/payments
func HandlePaymentsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if database == nil {
		logger.Error().Msg("Payment handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	limit := int64(50)
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := apiutil.ParsePositiveInt64Field(raw, "limit")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	offset := int64(0)
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		parsed, err := apiutil.ParseNonNegativeInt64Field(raw, "offset")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		offset = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), paymentsQueryTimeout)
	defer cancel()

	payments, err := database.Queries.ListPayments(ctx, dbgen.ListPaymentsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list payments")
		http.Error(w, "Failed to load payments", http.StatusInternalServerError)
		return
	}

	if payments == nil {
		payments = []dbgen.Payment{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"payments": payments}); err != nil {
		logger.Error().Err(err).Msg("Failed to write payments response")
	}
}

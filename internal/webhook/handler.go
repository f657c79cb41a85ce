// Package webhook verifies and applies lomi. payment callbacks.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/khoulefall/padelcourt/internal/db"
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
)

const (
	signatureHeader     = "lomi-signature"
	eventPaymentSuccess = "payment.success"
	eventPaymentFailed  = "payment.failed"
	webhookQueryTimeout = 10 * time.Second
	maxBodyBytes        = 1 << 20
)

// Handler applies verified gateway events to reservations and payments.
type Handler struct {
	database *db.DB
	secret   string
}

func New(database *db.DB, secret string) *Handler {
	return &Handler{database: database, secret: secret}
}

type event struct {
	Type string `json:"type"`
	Data struct {
		Metadata struct {
			// The gateway echoes metadata values back as strings or
			// numbers depending on how the session was created.
			ReservationID json.Number `json:"reservationId"`
		} `json:"metadata"`
	} `json:"data"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !h.verifySignature(body, r.Header.Get(signatureHeader)) {
		logger.Warn().Msg("Webhook signature mismatch")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	var evt event
	if err := json.Unmarshal(body, &evt); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	switch evt.Type {
	case eventPaymentSuccess, eventPaymentFailed:
	default:
		// Unknown event types are acknowledged so the gateway stops
		// retrying them.
		w.WriteHeader(http.StatusOK)
		return
	}

	reservationID, err := strconv.ParseInt(evt.Data.Metadata.ReservationID.String(), 10, 64)
	if err != nil || reservationID <= 0 {
		// The event is not about one of our reservations; nothing to do.
		logger.Warn().Str("type", evt.Type).Msg("Webhook event without reservation metadata")
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), webhookQueryTimeout)
	defer cancel()

	if evt.Type == eventPaymentSuccess {
		err = h.database.RunInTx(ctx, func(q *dbgen.Queries) error {
			// Guarded updates: a confirmed reservation is a no-op, a
			// cancelled one never resurrects.
			if _, err := q.ConfirmReservationIfPending(ctx, reservationID); err != nil {
				return err
			}
			_, err := q.CompletePaymentByReservation(ctx, reservationID)
			return err
		})
	} else {
		_, err = h.database.Queries.FailPaymentByReservation(ctx, reservationID)
	}
	if err != nil {
		logger.Error().Err(err).Int64("reservation_id", reservationID).Str("type", evt.Type).Msg("Failed to apply webhook event")
		http.Error(w, "Failed to process event", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("reservation_id", reservationID).Str("type", evt.Type).Msg("Webhook event applied")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) verifySignature(body []byte, signature string) bool {
	if h.secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

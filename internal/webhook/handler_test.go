package webhook_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/khoulefall/padelcourt/internal/db"
	"github.com/khoulefall/padelcourt/internal/testutil"
	"github.com/khoulefall/padelcourt/internal/webhook"
)

const testSecret = "whsec_test"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postEvent(t *testing.T, h *webhook.Handler, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/lomi", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("lomi-signature", signature)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func seedOnlineBooking(t *testing.T, database *db.DB) (reservationID, paymentID int64) {
	t.Helper()

	user := testutil.SeedUser(t, database, "player@example.com", "client")
	court := testutil.SeedCourt(t, database, "Court 1", 6000)
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	reservation := testutil.SeedReservation(t, database, court.ID, user.ID, start, 1, 6000, "pending")
	payment := testutil.SeedPayment(t, database, reservation.ID, user.ID, 6000, "online", "pending")
	return reservation.ID, payment.ID
}

func eventBody(t *testing.T, eventType string, reservationID any) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"type": eventType,
		"data": map[string]any{
			"metadata": map[string]any{"reservationId": reservationID},
		},
	})
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return body
}

func TestWebhookPaymentSuccess(t *testing.T) {
	database := testutil.NewTestDB(t)
	reservationID, paymentID := seedOnlineBooking(t, database)
	h := webhook.New(database, testSecret)

	body := eventBody(t, "payment.success", reservationID)
	rec := postEvent(t, h, body, sign(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	ctx := context.Background()
	reservation, err := database.Queries.GetReservationByID(ctx, reservationID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if reservation.Status != "confirmed" {
		t.Errorf("expected reservation confirmed, got %q", reservation.Status)
	}

	payment, err := database.Queries.GetPaymentByID(ctx, paymentID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if payment.Status != "completed" {
		t.Errorf("expected payment completed, got %q", payment.Status)
	}
	if !payment.PaymentDate.Valid {
		t.Error("expected payment_date to be set")
	}
}

func TestWebhookPaymentSuccessStringID(t *testing.T) {
	database := testutil.NewTestDB(t)
	reservationID, _ := seedOnlineBooking(t, database)
	h := webhook.New(database, testSecret)

	body := eventBody(t, "payment.success", fmt.Sprintf("%d", reservationID))
	rec := postEvent(t, h, body, sign(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	reservation, err := database.Queries.GetReservationByID(context.Background(), reservationID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if reservation.Status != "confirmed" {
		t.Errorf("expected reservation confirmed, got %q", reservation.Status)
	}
}

func TestWebhookPaymentFailed(t *testing.T) {
	database := testutil.NewTestDB(t)
	reservationID, paymentID := seedOnlineBooking(t, database)
	h := webhook.New(database, testSecret)

	body := eventBody(t, "payment.failed", reservationID)
	rec := postEvent(t, h, body, sign(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	ctx := context.Background()
	payment, err := database.Queries.GetPaymentByID(ctx, paymentID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if payment.Status != "failed" {
		t.Errorf("expected payment failed, got %q", payment.Status)
	}

	reservation, err := database.Queries.GetReservationByID(ctx, reservationID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if reservation.Status != "pending" {
		t.Errorf("expected reservation still pending, got %q", reservation.Status)
	}
}

func TestWebhookBadSignature(t *testing.T) {
	database := testutil.NewTestDB(t)
	reservationID, _ := seedOnlineBooking(t, database)
	h := webhook.New(database, testSecret)

	body := eventBody(t, "payment.success", reservationID)
	rec := postEvent(t, h, body, "deadbeef")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	reservation, err := database.Queries.GetReservationByID(context.Background(), reservationID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if reservation.Status != "pending" {
		t.Errorf("expected reservation untouched, got %q", reservation.Status)
	}
}

func TestWebhookMissingSignature(t *testing.T) {
	database := testutil.NewTestDB(t)
	h := webhook.New(database, testSecret)

	body := eventBody(t, "payment.success", 1)
	rec := postEvent(t, h, body, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWebhookInvalidJSON(t *testing.T) {
	database := testutil.NewTestDB(t)
	h := webhook.New(database, testSecret)

	body := []byte("{not json")
	rec := postEvent(t, h, body, sign(body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWebhookUnknownEventType(t *testing.T) {
	database := testutil.NewTestDB(t)
	h := webhook.New(database, testSecret)

	body := eventBody(t, "invoice.created", 1)
	rec := postEvent(t, h, body, sign(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for ignored event, got %d", rec.Code)
	}
}

func TestWebhookMissingReservationID(t *testing.T) {
	database := testutil.NewTestDB(t)
	h := webhook.New(database, testSecret)

	body := []byte(`{"type":"payment.success","data":{"metadata":{}}}`)
	rec := postEvent(t, h, body, sign(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 no-op, got %d", rec.Code)
	}
}

func TestWebhookMethodNotAllowed(t *testing.T) {
	database := testutil.NewTestDB(t)
	h := webhook.New(database, testSecret)

	req := httptest.NewRequest(http.MethodGet, "/webhooks/lomi", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestWebhookReplayIsHarmless(t *testing.T) {
	database := testutil.NewTestDB(t)
	reservationID, paymentID := seedOnlineBooking(t, database)
	h := webhook.New(database, testSecret)

	body := eventBody(t, "payment.success", reservationID)
	for i := 0; i < 3; i++ {
		rec := postEvent(t, h, body, sign(body))
		if rec.Code != http.StatusOK {
			t.Fatalf("replay %d: expected 200, got %d", i, rec.Code)
		}
	}

	ctx := context.Background()
	reservation, err := database.Queries.GetReservationByID(ctx, reservationID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if reservation.Status != "confirmed" {
		t.Errorf("expected reservation confirmed, got %q", reservation.Status)
	}
	payment, err := database.Queries.GetPaymentByID(ctx, paymentID)
	if err != nil {
		t.Fatalf("get payment: %v", err)
	}
	if payment.Status != "completed" {
		t.Errorf("expected payment completed, got %q", payment.Status)
	}
}

func TestWebhookCancelledNeverResurrects(t *testing.T) {
	database := testutil.NewTestDB(t)
	reservationID, _ := seedOnlineBooking(t, database)
	h := webhook.New(database, testSecret)

	ctx := context.Background()
	if _, err := database.Queries.CancelReservation(ctx, reservationID); err != nil {
		t.Fatalf("cancel reservation: %v", err)
	}

	body := eventBody(t, "payment.success", reservationID)
	rec := postEvent(t, h, body, sign(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	reservation, err := database.Queries.GetReservationByID(ctx, reservationID)
	if err != nil {
		t.Fatalf("get reservation: %v", err)
	}
	if reservation.Status != "cancelled" {
		t.Errorf("expected reservation to stay cancelled, got %q", reservation.Status)
	}
}

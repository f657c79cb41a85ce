package admin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/khoulefall/padelcourt/internal/api/admin"
	"github.com/khoulefall/padelcourt/internal/api/authz"
	"github.com/khoulefall/padelcourt/internal/db"
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
	"github.com/khoulefall/padelcourt/internal/testutil"
)

func adminRequest(t *testing.T, user dbgen.User, method, target string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	ctx := authz.ContextWithUser(req.Context(), &authz.AuthUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
	return req.WithContext(ctx)
}

func seedActivity(t *testing.T, database *db.DB) (adminUser dbgen.User) {
	t.Helper()

	adminUser = testutil.SeedUser(t, database, "admin@example.com", "admin")
	player := testutil.SeedUser(t, database, "player@example.com", "client")

	court := testutil.SeedCourt(t, database, "Court 1", 6000)
	closed := testutil.SeedCourt(t, database, "Court 2", 8000)
	_, err := database.Queries.UpdateCourtStatus(context.Background(), dbgen.UpdateCourtStatusParams{
		Status: "maintenance",
		ID:     closed.ID,
	})
	if err != nil {
		t.Fatalf("close court: %v", err)
	}

	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	testutil.SeedReservation(t, database, court.ID, player.ID, start, 1, 6000, "confirmed")
	testutil.SeedReservation(t, database, court.ID, player.ID, start.Add(2*time.Hour), 1, 4000, "pending")
	testutil.SeedReservation(t, database, court.ID, player.ID, start.Add(4*time.Hour), 1, 5000, "cancelled")
	return adminUser
}

func TestDashboard(t *testing.T) {
	database := testutil.NewTestDB(t)
	admin.InitHandlers(database.Queries)
	adminUser := seedActivity(t, database)

	rec := httptest.NewRecorder()
	admin.HandleDashboard(rec, adminRequest(t, adminUser, http.MethodGet, "/api/v1/admin/dashboard"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ReservationsToday   int64 `json:"reservations_today"`
		AvailableCourts     int64 `json:"available_courts"`
		TotalUsers          int64 `json:"total_users"`
		MonthRevenue        int64 `json:"month_revenue"`
		PendingReservations int64 `json:"pending_reservations"`
		DailyRevenue        []struct {
			Date    string `json:"date"`
			Revenue int64  `json:"revenue"`
		} `json:"daily_revenue"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.ReservationsToday != 3 {
		t.Errorf("expected 3 reservations created today, got %d", resp.ReservationsToday)
	}
	if resp.AvailableCourts != 1 {
		t.Errorf("expected 1 available court, got %d", resp.AvailableCourts)
	}
	if resp.TotalUsers != 2 {
		t.Errorf("expected 2 users, got %d", resp.TotalUsers)
	}
	if resp.MonthRevenue != 6000 {
		t.Errorf("expected month revenue 6000, got %d", resp.MonthRevenue)
	}
	if resp.PendingReservations != 1 {
		t.Errorf("expected 1 pending reservation, got %d", resp.PendingReservations)
	}
	if len(resp.DailyRevenue) != 7 {
		t.Fatalf("expected 7 daily revenue entries, got %d", len(resp.DailyRevenue))
	}
	if got := resp.DailyRevenue[6].Revenue; got != 6000 {
		t.Errorf("expected today's revenue 6000, got %d", got)
	}
}

func TestDashboardRequiresAdmin(t *testing.T) {
	database := testutil.NewTestDB(t)
	admin.InitHandlers(database.Queries)
	player := testutil.SeedUser(t, database, "player@example.com", "client")

	rec := httptest.NewRecorder()
	admin.HandleDashboard(rec, adminRequest(t, player, http.MethodGet, "/api/v1/admin/dashboard"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestFinancialMonth(t *testing.T) {
	database := testutil.NewTestDB(t)
	admin.InitHandlers(database.Queries)
	adminUser := seedActivity(t, database)

	rec := httptest.NewRecorder()
	admin.HandleFinancial(rec, adminRequest(t, adminUser, http.MethodGet, "/api/v1/admin/financial?period=month"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Period       string `json:"period"`
		TotalRevenue int64  `json:"total_revenue"`
		ByStatus     []struct {
			Status           string `json:"status"`
			ReservationCount int64  `json:"reservation_count"`
			TotalRevenue     int64  `json:"total_revenue"`
		} `json:"by_status"`
		ByCourt []struct {
			CourtName    string `json:"court_name"`
			TotalRevenue int64  `json:"total_revenue"`
		} `json:"by_court"`
		ByMonth []struct {
			Month        string `json:"month"`
			TotalRevenue int64  `json:"total_revenue"`
		} `json:"by_month"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Period != "month" {
		t.Errorf("expected period month, got %q", resp.Period)
	}
	// Cancelled reservations are excluded from the total.
	if resp.TotalRevenue != 10000 {
		t.Errorf("expected total revenue 10000, got %d", resp.TotalRevenue)
	}

	byStatus := make(map[string]int64)
	for _, row := range resp.ByStatus {
		byStatus[row.Status] = row.TotalRevenue
	}
	if byStatus["confirmed"] != 6000 || byStatus["pending"] != 4000 || byStatus["cancelled"] != 5000 {
		t.Errorf("unexpected by_status breakdown: %v", byStatus)
	}

	if len(resp.ByCourt) != 2 {
		t.Fatalf("expected 2 court rows, got %d", len(resp.ByCourt))
	}
	if resp.ByCourt[0].CourtName != "Court 1" || resp.ByCourt[0].TotalRevenue != 10000 {
		t.Errorf("expected Court 1 with revenue 10000 first, got %+v", resp.ByCourt[0])
	}

	if len(resp.ByMonth) != 1 {
		t.Fatalf("expected 1 month row, got %d", len(resp.ByMonth))
	}
	wantMonth := time.Now().UTC().Format("2006-01")
	if resp.ByMonth[0].Month != wantMonth || resp.ByMonth[0].TotalRevenue != 10000 {
		t.Errorf("expected month %s with revenue 10000, got %+v", wantMonth, resp.ByMonth[0])
	}
}

func TestFinancialDefaultsToMonth(t *testing.T) {
	database := testutil.NewTestDB(t)
	admin.InitHandlers(database.Queries)
	adminUser := seedActivity(t, database)

	rec := httptest.NewRecorder()
	admin.HandleFinancial(rec, adminRequest(t, adminUser, http.MethodGet, "/api/v1/admin/financial"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Period string `json:"period"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Period != "month" {
		t.Errorf("expected default period month, got %q", resp.Period)
	}
}

func TestFinancialInvalidPeriod(t *testing.T) {
	database := testutil.NewTestDB(t)
	admin.InitHandlers(database.Queries)
	adminUser := testutil.SeedUser(t, database, "admin@example.com", "admin")

	rec := httptest.NewRecorder()
	admin.HandleFinancial(rec, adminRequest(t, adminUser, http.MethodGet, "/api/v1/admin/financial?period=quarter"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestFinancialRequiresAdmin(t *testing.T) {
	database := testutil.NewTestDB(t)
	admin.InitHandlers(database.Queries)
	player := testutil.SeedUser(t, database, "player@example.com", "client")

	rec := httptest.NewRecorder()
	admin.HandleFinancial(rec, adminRequest(t, player, http.MethodGet, "/api/v1/admin/financial?period=week"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

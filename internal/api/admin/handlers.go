// Package admin serves the dashboard and financial reporting endpoints.
package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/khoulefall/padelcourt/internal/api/apiutil"
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
)

var queries *dbgen.Queries

const adminQueryTimeout = 10 * time.Second

func InitHandlers(q *dbgen.Queries) {
	queries = q
}

type dailyRevenue struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
}

type dashboardResponse struct {
	ReservationsToday   int64          `json:"reservations_today"`
	AvailableCourts     int64          `json:"available_courts"`
	TotalUsers          int64          `json:"total_users"`
	MonthRevenue        int64          `json:"month_revenue"`
	Currency            string         `json:"currency"`
	DailyRevenue        []dailyRevenue `json:"daily_revenue"`
	PendingReservations int64          `json:"pending_reservations"`
}

// HandleDashboard returns today's booking activity and a trailing revenue
// series for the admin landing page.
func HandleDashboard(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if queries == nil {
		logger.Error().Msg("Admin handlers not initialized")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	reservationsToday, err := queries.CountReservationsBetween(ctx, dbgen.CountReservationsBetweenParams{
		After:  today,
		Before: today.AddDate(0, 0, 1),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count today's reservations")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	availableCourts, err := queries.CountCourtsByStatus(ctx, "available")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count available courts")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	totalUsers, err := queries.CountUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count users")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	monthRevenue, err := queries.SumConfirmedRevenueBetween(ctx, dbgen.SumConfirmedRevenueBetweenParams{
		After:  monthStart,
		Before: monthStart.AddDate(0, 1, 0),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to sum month revenue")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	pendingCount, err := queries.CountReservationsByStatus(ctx, "pending")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count pending reservations")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Trailing week, oldest day first, today included.
	daily := make([]dailyRevenue, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		dayStart := today.AddDate(0, 0, -offset)
		revenue, err := queries.SumConfirmedRevenueBetween(ctx, dbgen.SumConfirmedRevenueBetweenParams{
			After:  dayStart,
			Before: dayStart.AddDate(0, 0, 1),
		})
		if err != nil {
			logger.Error().Err(err).Msg("Failed to sum daily revenue")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		daily = append(daily, dailyRevenue{Date: dayStart.Format("2006-01-02"), Revenue: revenue})
	}

	apiutil.WriteJSON(w, http.StatusOK, dashboardResponse{
		ReservationsToday:   reservationsToday,
		AvailableCourts:     availableCourts,
		TotalUsers:          totalUsers,
		MonthRevenue:        monthRevenue,
		Currency:            "XOF",
		DailyRevenue:        daily,
		PendingReservations: pendingCount,
	})
}

type financialResponse struct {
	Period       string                               `json:"period"`
	From         string                               `json:"from"`
	To           string                               `json:"to"`
	TotalRevenue int64                                `json:"total_revenue"`
	Currency     string                               `json:"currency"`
	ByStatus     []dbgen.SumRevenueByStatusBetweenRow `json:"by_status"`
	ByCourt      []dbgen.SumRevenueByCourtBetweenRow  `json:"by_court"`
	ByMonth      []dbgen.SumRevenueByMonthBetweenRow  `json:"by_month"`
}

// periodBounds maps a reporting period to calendar-anchored UTC bounds.
func periodBounds(period string, now time.Time) (after, before time.Time, ok bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	before = today.AddDate(0, 0, 1)
	switch period {
	case "week":
		return today.AddDate(0, 0, -6), before, true
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), before, true
	case "year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC), before, true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// HandleFinancial returns revenue aggregations for the requested period.
func HandleFinancial(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	if queries == nil {
		logger.Error().Msg("Admin handlers not initialized")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}
	after, before, ok := periodBounds(period, time.Now().UTC())
	if !ok {
		http.Error(w, "Invalid period: must be week, month or year", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), adminQueryTimeout)
	defer cancel()

	total, err := queries.SumReservationRevenueBetween(ctx, dbgen.SumReservationRevenueBetweenParams{
		After:  after,
		Before: before,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to sum total revenue")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	byStatus, err := queries.SumRevenueByStatusBetween(ctx, dbgen.SumRevenueByStatusBetweenParams{
		After:  after,
		Before: before,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to aggregate revenue by status")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	byCourt, err := queries.SumRevenueByCourtBetween(ctx, dbgen.SumRevenueByCourtBetweenParams{
		After:  after,
		Before: before,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to aggregate revenue by court")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	byMonth, err := queries.SumRevenueByMonthBetween(ctx, dbgen.SumRevenueByMonthBetweenParams{
		After:  after,
		Before: before,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to aggregate revenue by month")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if byStatus == nil {
		byStatus = []dbgen.SumRevenueByStatusBetweenRow{}
	}
	if byCourt == nil {
		byCourt = []dbgen.SumRevenueByCourtBetweenRow{}
	}
	if byMonth == nil {
		byMonth = []dbgen.SumRevenueByMonthBetweenRow{}
	}

	apiutil.WriteJSON(w, http.StatusOK, financialResponse{
		Period:       period,
		From:         after.Format("2006-01-02"),
		To:           before.AddDate(0, 0, -1).Format("2006-01-02"),
		TotalRevenue: total,
		Currency:     "XOF",
		ByStatus:     byStatus,
		ByCourt:      byCourt,
		ByMonth:      byMonth,
	})
}

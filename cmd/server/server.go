// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/khoulefall/padelcourt/internal/api"
	"github.com/khoulefall/padelcourt/internal/api/admin"
	"github.com/khoulefall/padelcourt/internal/api/auth"
	"github.com/khoulefall/padelcourt/internal/api/courts"
	"github.com/khoulefall/padelcourt/internal/api/payments"
	"github.com/khoulefall/padelcourt/internal/api/reservations"
	"github.com/khoulefall/padelcourt/internal/config"
	"github.com/khoulefall/padelcourt/internal/webhook"
)

func newServer(cfg *config.Config, webhookHandler *webhook.Handler) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	registerRoutes(router, webhookHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, webhookHandler *webhook.Handler) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth routes
	mux.HandleFunc("POST /api/v1/auth/register", auth.HandleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.HandleLogout)
	mux.HandleFunc("GET /api/v1/auth/me", auth.HandleMe)

	// Court routes
	mux.HandleFunc("GET /api/v1/courts", courts.HandleCourtsList)
	mux.HandleFunc("GET /api/v1/courts/{id}", courts.HandleCourtGet)
	mux.HandleFunc("POST /api/v1/courts", courts.HandleCourtCreate)
	mux.HandleFunc("PUT /api/v1/courts/{id}", courts.HandleCourtUpdate)
	mux.HandleFunc("POST /api/v1/courts/{id}/status", courts.HandleCourtStatusUpdate)
	mux.HandleFunc("DELETE /api/v1/courts/{id}", courts.HandleCourtDelete)

	// Reservation routes
	mux.HandleFunc("POST /api/v1/reservations", reservations.HandleReservationCreate)
	mux.HandleFunc("GET /api/v1/reservations", reservations.HandleReservationsList)
	mux.HandleFunc("GET /api/v1/my/reservations", reservations.HandleMyReservations)
	mux.HandleFunc("POST /api/v1/reservations/{id}/confirm", reservations.HandleReservationConfirm)
	mux.HandleFunc("POST /api/v1/reservations/{id}/cancel", reservations.HandleReservationCancel)

	// Payment routes
	mux.HandleFunc("POST /api/v1/payments/checkout", payments.HandleCheckoutCreate)
	mux.HandleFunc("POST /api/v1/payments/{id}/simulate", payments.HandlePaymentSimulate)
	mux.HandleFunc("GET /api/v1/admin/payments", payments.HandlePaymentsList)

	// Admin routes
	mux.HandleFunc("GET /api/v1/admin/dashboard", admin.HandleDashboard)
	mux.HandleFunc("GET /api/v1/admin/financial", admin.HandleFinancial)

	// Gateway webhook, signature-verified rather than session-authenticated
	mux.Handle("/webhooks/lomi", webhookHandler)
}

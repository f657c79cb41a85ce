// internal/api/courts/handlers.go
package courts

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
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
	"github.com/khoulefall/padelcourt/internal/models"
)

const courtsQueryTimeout = 5 * time.Second

var queries *dbgen.Queries

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	queries = q
}

type courtRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	PricePerHour int64  `json:"price_per_hour"`
	ImageURL     string `json:"image_url"`
}

type courtStatusRequest struct {
	Status string `json:"status"`
}

// GET /api/v1/courts
func HandleCourtsList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	// Clients only see bookable courts. Admins may ask for everything or
	// narrow to a single status.
	var (
		courts []dbgen.Court
		err    error
	)

	isAdmin := authz.IsAdmin(authz.UserFromContext(r.Context()))
	switch {
	case isAdmin && r.URL.Query().Get("all") == "1":
		courts, err = queries.ListCourts(ctx)
	case isAdmin && strings.TrimSpace(r.URL.Query().Get("status")) != "":
		status, parseErr := models.ParseCourtStatus(strings.TrimSpace(r.URL.Query().Get("status")))
		if parseErr != nil {
			http.Error(w, parseErr.Error(), http.StatusBadRequest)
			return
		}
		courts, err = queries.ListCourtsByStatus(ctx, string(status))
	default:
		courts, err = queries.ListCourtsByStatus(ctx, string(models.CourtAvailable))
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list courts")
		http.Error(w, "Failed to load courts", http.StatusInternalServerError)
		return
	}

	if courts == nil {
		courts = []dbgen.Court{}
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"courts": courts}); err != nil {
		logger.Error().Err(err).Msg("Failed to write courts response")
	}
}

// GET /api/v1/courts/{id}
func HandleCourtGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	courtID, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "court id")
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := queries.GetCourtByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Court not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to load court")
		http.Error(w, "Failed to load court", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, court); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write court response")
	}
}

// POST /api/v1/courts
func HandleCourtCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	var req courtRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateCourtRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := queries.CreateCourt(ctx, dbgen.CreateCourtParams{
		Name:         strings.TrimSpace(req.Name),
		Description:  apiutil.ToNullString(strings.TrimSpace(req.Description)),
		PricePerHour: req.PricePerHour,
		ImageUrl:     apiutil.ToNullString(strings.TrimSpace(req.ImageURL)),
		Status:       string(models.CourtAvailable),
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create court")
		http.Error(w, "Failed to create court", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, court); err != nil {
		logger.Error().Err(err).Int64("court_id", court.ID).Msg("Failed to write court create response")
	}
}

// PUT /api/v1/courts/{id}
func HandleCourtUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	courtID, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "court id")
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
		return
	}

	var req courtRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validateCourtRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	court, err := queries.UpdateCourt(ctx, dbgen.UpdateCourtParams{
		Name:         strings.TrimSpace(req.Name),
		Description:  apiutil.ToNullString(strings.TrimSpace(req.Description)),
		PricePerHour: req.PricePerHour,
		ImageUrl:     apiutil.ToNullString(strings.TrimSpace(req.ImageURL)),
		ID:           courtID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Court not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to update court")
		http.Error(w, "Failed to update court", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, court); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write court update response")
	}
}

// POST /api/v1/courts/{id}/status
func HandleCourtStatusUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	courtID, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "court id")
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
		return
	}

	var req courtStatusRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	status, err := models.ParseCourtStatus(strings.TrimSpace(req.Status))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	affected, err := queries.UpdateCourtStatus(ctx, dbgen.UpdateCourtStatusParams{
		Status: string(status),
		ID:     courtID,
	})
	if err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to update court status")
		http.Error(w, "Failed to update court status", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.Error(w, "Court not found", http.StatusNotFound)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"id": courtID, "status": status}); err != nil {
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to write court status response")
	}
}

// DELETE /api/v1/courts/{id}
func HandleCourtDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if apiutil.RequireAdmin(w, r) == nil {
		return
	}

	courtID, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "court id")
	if err != nil {
		http.Error(w, "Invalid court ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), courtsQueryTimeout)
	defer cancel()

	affected, err := queries.DeleteCourt(ctx, courtID)
	if err != nil {
		if apiutil.IsSQLiteForeignKeyViolation(err) {
			http.Error(w, "Court has reservations and cannot be deleted", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Int64("court_id", courtID).Msg("Failed to delete court")
		http.Error(w, "Failed to delete court", http.StatusInternalServerError)
		return
	}
	if affected == 0 {
		http.Error(w, "Court not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validateCourtRequest(req courtRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apiutil.FieldError{Field: "name", Reason: "is required"}
	}
	if req.PricePerHour <= 0 {
		return apiutil.FieldError{Field: "price_per_hour", Reason: "must be greater than 0"}
	}
	return nil
}

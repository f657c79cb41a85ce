package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/khoulefall/padelcourt/internal/api/apiutil"
	"github.com/khoulefall/padelcourt/internal/api/authz"
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
	"github.com/khoulefall/padelcourt/internal/models"
	"github.com/khoulefall/padelcourt/internal/ratelimit"
)

const authQueryTimeout = 5 * time.Second

var (
	limiter      *rate.Limiter
	loginLimiter *ratelimit.Limiter
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers() {
	limiter = rate.NewLimiter(rate.Limit(100), 10) // More restrictive for auth
	loginLimiter = ratelimit.New(nil)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/auth/register
func HandleRegister(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req registerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if err := validateRegisterRequest(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	phone, err := NormalizePhone(req.Phone)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	// The first account becomes the admin so a fresh install is usable.
	role := models.RoleClient
	count, err := queries.CountUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count users")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	user, err := queries.CreateUser(ctx, dbgen.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        apiutil.ToNullString(phone),
		Role:         string(role),
	})
	if err != nil {
		if apiutil.IsSQLiteUniqueViolation(err) {
			http.Error(w, "Email is already registered", http.StatusConflict)
			return
		}
		logger.Error().Err(err).Msg("Failed to create user")
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	if err := SetAuthCookie(w, &authz.AuthUser{ID: user.ID, Email: user.Email, Role: user.Role}); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to set auth cookie")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, user); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write register response")
	}
}

// POST /api/v1/auth/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil || limiter == nil || loginLimiter == nil {
		logger.Error().Msg("Auth handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !limiter.Allow() {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	ip := ratelimit.GetClientIP(r, false)
	if result := loginLimiter.CheckLogin(req.Email, ip); !result.Allowed {
		ratelimit.LogRateLimitExceeded("login", req.Email, ip, result.Reason)
		w.Header().Set("Retry-After", result.RetryAfter.Round(time.Second).String())
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	user, err := queries.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			loginLimiter.RecordLoginFailure(req.Email, ip)
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		logger.Error().Err(err).Msg("Failed to load user for login")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !VerifyPassword(user.PasswordHash, req.Password) {
		if lockedOut := loginLimiter.RecordLoginFailure(req.Email, ip); lockedOut {
			logger.Warn().Str("identifier", ratelimit.SanitizeIdentifier(req.Email)).Msg("Login lockout triggered")
		}
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	loginLimiter.ResetLoginAttempts(req.Email)

	if err := SetAuthCookie(w, &authz.AuthUser{ID: user.ID, Email: user.Email, Role: user.Role}); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to set auth cookie")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, user); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write login response")
	}
}

// POST /api/v1/auth/logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	ClearAuthCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/auth/me
func HandleMe(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user := apiutil.RequireUser(w, r)
	if user == nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	row, err := queries.GetUserByID(ctx, user.ID)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to load current user")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, row); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to write me response")
	}
}

func validateRegisterRequest(req registerRequest) error {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return apiutil.FieldError{Field: "email", Reason: "must be a valid email address"}
	}
	if len(req.Password) < 8 {
		return apiutil.FieldError{Field: "password", Reason: "must be at least 8 characters"}
	}
	if req.Name == "" {
		return apiutil.FieldError{Field: "name", Reason: "is required"}
	}
	return nil
}

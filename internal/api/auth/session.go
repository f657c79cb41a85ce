package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/khoulefall/padelcourt/internal/api/authz"
	"github.com/khoulefall/padelcourt/internal/config"
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
)

const (
	authCookieName = "padelcourt_auth"
	authSessionTTL = 8 * time.Hour
)

var errAuthConfigMissing = errors.New("auth configuration missing")

var (
	appConfig *config.Config
	queries   *dbgen.Queries
)

// Init must be called during server startup before handling requests.
// Calling it again replaces the bound config and queries, which tests rely on.
func Init(cfg *config.Config, q *dbgen.Queries) {
	appConfig = cfg
	queries = q
}

type authSession struct {
	UserID    int64  `json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
}

func isSecureCookie() bool {
	return appConfig == nil || appConfig.App.Environment != "development"
}

func SetAuthCookie(w http.ResponseWriter, user *authz.AuthUser) error {
	if w == nil || user == nil {
		return errors.New("auth session requires response and user")
	}

	if appConfig == nil || appConfig.App.SecretKey == "" {
		return errAuthConfigMissing
	}

	expiresAt := time.Now().Add(authSessionTTL).Unix()
	session := authSession{
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: expiresAt,
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)
	signature, err := signPayload(encodedPayload)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    encodedPayload + "." + signature,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(expiresAt, 0),
		MaxAge:   int(authSessionTTL.Seconds()),
	})

	return nil
}

func ClearAuthCookie(w http.ResponseWriter) {
	if w == nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// UserFromRequest resolves the authenticated user from the signed auth
// cookie. The user row is re-read so that a stale cookie cannot outlive the
// account or carry an outdated role.
func UserFromRequest(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, error) {
	session, err := parseAuthCookie(r)
	if err != nil || session == nil {
		return nil, err
	}

	if queries == nil {
		return nil, errors.New("auth queries not initialized")
	}

	user, err := queries.GetUserByID(r.Context(), session.UserID)
	if err != nil {
		ClearAuthCookie(w)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &authz.AuthUser{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func parseAuthCookie(r *http.Request) (*authSession, error) {
	if r == nil {
		return nil, nil
	}

	if appConfig == nil || appConfig.App.SecretKey == "" {
		return nil, errAuthConfigMissing
	}

	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	parts := strings.SplitN(cookie.Value, ".", 2)
	if len(parts) != 2 {
		return nil, errors.New("invalid auth cookie")
	}

	encodedPayload := parts[0]
	signature := parts[1]
	expectedSignature, err := signPayload(encodedPayload)
	if err != nil {
		return nil, err
	}

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return nil, errors.New("invalid auth cookie signature")
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, err
	}

	var session authSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}

	if session.ExpiresAt <= time.Now().Unix() {
		return nil, errors.New("auth session expired")
	}

	return &session, nil
}

func signPayload(payload string) (string, error) {
	if appConfig == nil || appConfig.App.SecretKey == "" {
		return "", errAuthConfigMissing
	}

	mac := hmac.New(sha256.New, []byte(appConfig.App.SecretKey))
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

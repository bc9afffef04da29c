// Package middleware provides the HTTP middleware for the gateway.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noizee/storefront/internal/app/domain/session"
	"github.com/noizee/storefront/internal/httputil"
	"github.com/noizee/storefront/internal/logging"
	"github.com/noizee/storefront/pkg/logger"
)

// Claims are the gateway's admin token claims. The gateway exchanges a
// successful backend login for one of these so admin REST calls do not carry
// the backend token around.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Admin  bool   `json:"admin"`
	jwt.RegisteredClaims
}

// AuthMiddleware issues and validates the gateway's admin tokens.
type AuthMiddleware struct {
	secret    []byte
	ttl       time.Duration
	log       *logger.Logger
	skipPaths map[string]bool
}

// NewAuthMiddleware creates the auth middleware. Paths in skipPaths bypass
// authentication entirely.
func NewAuthMiddleware(secret []byte, ttl time.Duration, log *logger.Logger, skipPaths []string) *AuthMiddleware {
	if log == nil {
		log = logger.NewDefault("middleware.auth")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return &AuthMiddleware{secret: secret, ttl: ttl, log: log, skipPaths: skip}
}

// Issue mints an admin token for an authenticated session.
func (m *AuthMiddleware) Issue(sess session.Session) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: sess.UserID,
		Name:   sess.DisplayName,
		Admin:  sess.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "noizee-gateway",
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Handler validates the bearer token and requires the admin claim. The user
// id and role land in the request context for downstream logging.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			httputil.Unauthorized(w, "missing Authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httputil.Unauthorized(w, "Authorization header must be a bearer token")
			return
		}

		claims, err := m.validate(parts[1])
		if err != nil {
			m.log.WithError(err).WithField("path", r.URL.Path).Warn("token validation failed")
			httputil.Unauthorized(w, "invalid token")
			return
		}
		if !claims.Admin {
			httputil.Forbidden(w, "administrator access required")
			return
		}

		ctx := logging.WithUserID(r.Context(), claims.UserID)
		ctx = logging.WithRole(ctx, "admin")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// GetUserID extracts the authenticated user id from context.
func GetUserID(ctx context.Context) string {
	return logging.GetUserID(ctx)
}

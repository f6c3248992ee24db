package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"caresure/pkg/secrets"
)

// ServiceClaims are the JWT claims carried by service tokens minted with
// cmd/keygen. Subject identifies the calling system for the request log.
type ServiceClaims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}

type serviceKey struct{}

// GetService retrieves the authenticated service name from the context.
func GetService(ctx context.Context) string {
	if s, ok := ctx.Value(serviceKey{}).(string); ok {
		return s
	}
	return ""
}

// ServiceAuth validates the Bearer token on mutating endpoints. Tokens are
// HS256-signed with the shared signing key.
func ServiceAuth(signingKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	key := []byte(signingKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				unauthorized(w, "missing bearer token")
				return
			}

			claims := &ServiceClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				logger.Warn("rejected service token",
					"error", err,
					"path", r.URL.Path,
					"request_id", GetRequestID(r.Context()),
				)
				unauthorized(w, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), serviceKey{}, claims.Service)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminKey gates treasury administration endpoints behind a bcrypt-hashed key
// supplied via ADMIN_KEY_HASH. With no hash configured the endpoints are
// disabled outright.
func AdminKey(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hash == "" {
				unauthorized(w, "admin endpoints disabled")
				return
			}
			if err := secrets.Verify(r.Header.Get("X-Admin-Key"), hash); err != nil {
				unauthorized(w, "invalid admin key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, desc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + desc + `"}`))
}

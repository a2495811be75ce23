package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/clubedopeao/tournament-api/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type contextKey string

const refereeContextKey contextKey = "referee"

// Claim names issued by the login handler.
const (
	jwtClaimRefereeID = "referee_id"
	jwtClaimRole      = "role"
)

// Authenticate verifies the Bearer token and stores its claims in the
// request context. Requests without a valid token get 401.
func Authenticate(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), refereeContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize allows only the listed roles past. Must run after Authenticate.
func Authorize(roles ...models.RefereeRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := GetRefereeRoleFromContext(r.Context())
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			for _, allowed := range roles {
				if allowed == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(refereeContextKey).(jwt.MapClaims)
	if !ok {
		return nil, errors.New("referee claims not found in context")
	}
	return claims, nil
}

func GetRefereeIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	raw, ok := claims[jwtClaimRefereeID].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("missing or invalid %q claim", jwtClaimRefereeID)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid referee id in token: %w", err)
	}
	return id, nil
}

func GetRefereeRoleFromContext(ctx context.Context) (models.RefereeRole, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	raw, ok := claims[jwtClaimRole].(string)
	if !ok {
		return "", fmt.Errorf("missing or invalid %q claim", jwtClaimRole)
	}
	role := models.RefereeRole(raw)
	switch role {
	case models.RoleAdmin, models.RoleReferee:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", raw)
	}
}

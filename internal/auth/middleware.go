package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/config"
	"github.com/sirupsen/logrus"
)

type contextKey string

const claimsKey contextKey = "claims"

var ErrNoClaims = errors.New("no user claims in context")

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		tokenStr := bearerToken(r)
		if tokenStr == "" {
			config.Error(w, http.StatusUnauthorized, "unauthorized", "missing token")
			return
		}

		claims, err := ValidateJWT(tokenStr)
		if err != nil {
			log.WithError(err).Warn("Rejected invalid token")
			config.Error(w, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		if _, err := uuid.Parse(claims.UserID); err != nil {
			log.WithField("subject", claims.UserID).Warn("Token subject is not a user id")
			config.Error(w, http.StatusUnauthorized, "unauthorized", "invalid token subject")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		ctx = config.WithLogFields(ctx, logrus.Fields{"user_id": claims.UserID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// UserIDFromContext returns the authenticated user's id.
func UserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	claims, err := GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.UserID)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	if cookie, err := r.Cookie("jwt"); err == nil {
		return cookie.Value
	}
	return ""
}

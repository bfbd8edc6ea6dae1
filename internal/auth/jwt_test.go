package auth_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/odontomind-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "uma-chave-secreta-para-testes-segura-e-longa"
const testRole = "authenticated"

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		assert.Panics(t, func() { auth.Init("") })
	})

	t.Run("ValidSecret", func(t *testing.T) {
		assert.NotPanics(t, func() { auth.Init(testSecret) })
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	auth.Init(testSecret)
	userID := uuid.NewString()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID, testRole, 5*time.Minute)
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, testRole, claims.Role)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID, testRole, -time.Minute)
		require.NoError(t, err)

		_, err = auth.ValidateJWT(tokenStr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID, testRole, time.Minute)
		require.NoError(t, err)

		auth.Init("chave-secreta-falsa-diferente")
		defer auth.Init(testSecret)

		_, err = auth.ValidateJWT(tokenStr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
	})

	t.Run("SubjectOnlyToken", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  userID,
			"role": testRole,
			"exp":  time.Now().Add(time.Minute).Unix(),
		})
		tokenStr, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})
}

func TestAuthMiddleware(t *testing.T) {
	auth.Init(testSecret)
	userID := uuid.New()

	protected := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, err := auth.UserIDFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, userID, got)
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("MissingToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BearerToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID.String(), testRole, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("CookieToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID.String(), testRole, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: tokenStr})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("NonUUIDSubject", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT("user-123", testRole, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listkeep/listkeep-api/internal/api/middleware"
	"github.com/listkeep/listkeep-api/internal/mocks"
	"github.com/listkeep/listkeep-api/internal/service/auth"
)

// echoUserID records whether the wrapped handler ran and with which identity.
type echoUserID struct {
	called bool
	userID uuid.UUID
	found  bool
}

func (e *echoUserID) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.called = true
	e.userID, e.found = middleware.GetUserID(r)
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid token reaches the handler with the user id", func(t *testing.T) {
		userID := uuid.New()
		jwt := &mocks.MockJWTService{UserID: userID}
		next := &echoUserID{}

		r := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
		r.Header.Set("Authorization", "Bearer valid-token")
		rr := httptest.NewRecorder()
		middleware.NewAuthMiddleware(jwt).Authenticate(next).ServeHTTP(rr, r)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, next.called)
		assert.True(t, next.found)
		assert.Equal(t, userID, next.userID)
	})

	t.Run("missing header is unauthorized", func(t *testing.T) {
		jwt := &mocks.MockJWTService{}
		next := &echoUserID{}

		r := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
		rr := httptest.NewRecorder()
		middleware.NewAuthMiddleware(jwt).Authenticate(next).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.False(t, next.called)
	})

	t.Run("malformed header is unauthorized", func(t *testing.T) {
		jwt := &mocks.MockJWTService{}

		for _, header := range []string{"valid-token", "Basic dXNlcjpwYXNz", "Bearer"} {
			next := &echoUserID{}
			r := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
			r.Header.Set("Authorization", header)
			rr := httptest.NewRecorder()
			middleware.NewAuthMiddleware(jwt).Authenticate(next).ServeHTTP(rr, r)

			assert.Equal(t, http.StatusUnauthorized, rr.Code, "header %q", header)
			assert.False(t, next.called)
		}
	})

	t.Run("expired token is unauthorized with a specific message", func(t *testing.T) {
		jwt := &mocks.MockJWTService{
			ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredToken
			},
		}
		next := &echoUserID{}

		r := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
		r.Header.Set("Authorization", "Bearer expired-token")
		rr := httptest.NewRecorder()
		middleware.NewAuthMiddleware(jwt).Authenticate(next).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Token expired")
		assert.False(t, next.called)
	})

	t.Run("refresh token used as access token is rejected", func(t *testing.T) {
		jwt := &mocks.MockJWTService{
			ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrWrongTokenType
			},
		}
		next := &echoUserID{}

		r := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
		r.Header.Set("Authorization", "Bearer refresh-token")
		rr := httptest.NewRecorder()
		middleware.NewAuthMiddleware(jwt).Authenticate(next).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid token")
	})

	t.Run("unexpected validation failure is an internal error", func(t *testing.T) {
		jwt := &mocks.MockJWTService{
			ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, errors.New("signing key unavailable")
			},
		}
		next := &echoUserID{}

		r := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
		r.Header.Set("Authorization", "Bearer some-token")
		rr := httptest.NewRecorder()
		middleware.NewAuthMiddleware(jwt).Authenticate(next).ServeHTTP(rr, r)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "signing key unavailable")
	})
}

func TestOptionalAuthenticate(t *testing.T) {
	t.Run("valid token attaches identity", func(t *testing.T) {
		userID := uuid.New()
		jwt := &mocks.MockJWTService{UserID: userID}
		next := &echoUserID{}

		r := httptest.NewRequest(http.MethodGet, "/api/lists/shared/token", nil)
		r.Header.Set("Authorization", "Bearer valid-token")
		rr := httptest.NewRecorder()
		middleware.NewAuthMiddleware(jwt).OptionalAuthenticate(next).ServeHTTP(rr, r)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, next.found)
		assert.Equal(t, userID, next.userID)
	})

	t.Run("missing header passes through anonymously", func(t *testing.T) {
		jwt := &mocks.MockJWTService{}
		next := &echoUserID{}

		r := httptest.NewRequest(http.MethodGet, "/api/lists/shared/token", nil)
		rr := httptest.NewRecorder()
		middleware.NewAuthMiddleware(jwt).OptionalAuthenticate(next).ServeHTTP(rr, r)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, next.called)
		assert.False(t, next.found)
	})

	t.Run("invalid token passes through anonymously", func(t *testing.T) {
		jwt := &mocks.MockJWTService{
			ValidateTokenFn: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
		}
		next := &echoUserID{}

		r := httptest.NewRequest(http.MethodGet, "/api/lists/shared/token", nil)
		r.Header.Set("Authorization", "Bearer forged")
		rr := httptest.NewRecorder()
		middleware.NewAuthMiddleware(jwt).OptionalAuthenticate(next).ServeHTTP(rr, r)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, next.called)
		assert.False(t, next.found)
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("absent from context", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/lists", nil)

		userID, ok := middleware.GetUserID(r)
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, userID)
	})
}

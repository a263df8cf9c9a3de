package api

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/listkeep/listkeep-api/internal/api/shared"
	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/service"
	"github.com/listkeep/listkeep-api/internal/service/auth"
	"github.com/listkeep/listkeep-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userService    service.UserService
	jwtService     auth.JWTService
	googleVerifier auth.GoogleVerifier
	logger         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// The Google verifier may be nil when Google sign-in is not configured.
func NewAuthHandler(
	userService service.UserService,
	jwtService auth.JWTService,
	googleVerifier auth.GoogleVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userService:    userService,
		jwtService:     jwtService,
		googleVerifier: googleVerifier,
		logger:         logger.With("component", "auth_handler"),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format",
			shared.WithKind(KindBadRequest))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	user, err := h.userService.Create(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.issueTokenPair(w, r, user.ID, http.StatusCreated)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format",
			shared.WithKind(KindBadRequest))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.issueTokenPair(w, r, user.ID, http.StatusOK)
}

// GoogleLogin handles POST /api/auth/google. A verified Google account that
// has no user yet gets one created on the fly.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.googleVerifier == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Google sign-in is not configured",
			shared.WithKind(KindNotFound))
		return
	}

	var req GoogleLoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format",
			shared.WithKind(KindBadRequest))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	email, err := h.googleVerifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.GetByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		user, err = h.registerGoogleUser(r, email)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	h.issueTokenPair(w, r, user.ID, http.StatusOK)
}

// registerGoogleUser creates an account for a verified Google email. The
// account gets a random password; the user signs in through Google.
func (h *AuthHandler) registerGoogleUser(r *http.Request, email string) (*domain.User, error) {
	password, err := randomSecret(32)
	if err != nil {
		return nil, err
	}

	username := strings.SplitN(email, "@", 2)[0]
	user, err := h.userService.Create(r.Context(), username, email, password)
	if errors.Is(err, store.ErrUsernameExists) {
		// Retry once with a random suffix.
		suffix, serr := randomSecret(4)
		if serr != nil {
			return nil, serr
		}
		user, err = h.userService.Create(r.Context(), username+"-"+suffix, email, password)
	}
	if err != nil {
		return nil, err
	}

	h.logger.Info("user registered via google", "user_id", user.ID)
	return user, nil
}

// Refresh handles POST /api/auth/refresh. Both tokens are rotated.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format",
			shared.WithKind(KindBadRequest))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// The account may have been deleted since the token was issued.
	if _, err := h.userService.GetByID(r.Context(), claims.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			HandleAPIError(w, r, auth.ErrInvalidRefreshToken, "")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	accessToken, err := h.jwtService.GenerateToken(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("failed to generate access token", "error", err, "user_id", claims.UserID)
		HandleAPIError(w, r, err, "Failed to generate token")
		return
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("failed to generate refresh token", "error", err, "user_id", claims.UserID)
		HandleAPIError(w, r, err, "Failed to generate token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func (h *AuthHandler) issueTokenPair(w http.ResponseWriter, r *http.Request, userID uuid.UUID, status int) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to generate access token", "error", err, "user_id", userID)
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to generate refresh token", "error", err, "user_id", userID)
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func randomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

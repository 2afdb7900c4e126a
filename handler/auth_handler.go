// file: handler/auth_handler.go

package handler

import (
	"encoding/json"
	"errors"
	"livelib-api/cache"
	"livelib-api/common"
	"livelib-api/logger"
	"livelib-api/model"
	"livelib-api/service"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// AuthHandler exposes the authentication protocol over HTTP. The refresh
// secret travels only in an HTTP-only cookie scoped to /auth; the access
// token travels in the response body and the Authorization header.
type AuthHandler struct {
	users  *service.UserService
	tokens *service.TokenProvider
}

func NewAuthHandler(users *service.UserService, tokens *service.TokenProvider) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

type authResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) refreshCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.tokens.CookieName(),
		Value:    value,
		Path:     "/auth",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, h.refreshCookie("", time.Unix(0, 0)))
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "New user"
// @Success      201 {object} model.User
// @Failure      409 {object} common.AppError
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.users.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return common.NewAppError(http.StatusConflict, "Username or email is already taken", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not create user", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("User registered")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
	return nil
}

// Login godoc
// @Summary      Authenticate and start a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Credentials"
// @Success      200 {object} authResponse
// @Failure      400 {object} common.AppError
// @Failure      401 {object} common.AppError
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	// A client holding a still-valid refresh cookie already has a
	// session; refuse to stack another one on top of it.
	if cookie, err := r.Cookie(h.tokens.CookieName()); err == nil && cookie.Value != "" {
		valid, err := h.tokens.ValidateRefresh(r.Context(), cookie.Value)
		if err != nil {
			return storageError(err)
		}
		if valid {
			return common.NewAppError(http.StatusBadRequest, "You already have an active session", nil)
		}
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logger.Log.WithField("username", req.Username).Warn("Login failed")
			return common.NewAppError(http.StatusUnauthorized, "Username or password is incorrect", nil)
		}
		return common.NewAppError(http.StatusInternalServerError, "Could not process login", err)
	}

	pair, err := h.tokens.Login(r.Context(), user)
	if err != nil {
		return storageError(err)
	}

	http.SetCookie(w, h.refreshCookie(pair.RefreshToken, time.Now().Add(h.tokens.RefreshTokenLifetime())))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResponse{AccessToken: pair.AccessToken})
	return nil
}

// Refresh godoc
// @Summary      Rotate the refresh token and mint a new access token
// @Description  Requires the expired access token in the Authorization header and the refresh cookie.
// @Tags         auth
// @Produce      json
// @Success      200 {object} authResponse
// @Failure      401 {object} common.AppError
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(h.tokens.CookieName())
	if err != nil || cookie.Value == "" {
		return common.NewAppError(http.StatusUnauthorized, "Refresh token is missing", nil)
	}

	expiredAccessToken, ok := bearerToken(r)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Access token is missing", nil)
	}

	pair, err := h.tokens.Refresh(r.Context(), expiredAccessToken, cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			h.clearRefreshCookie(w)
			return common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", err)
		case errors.Is(err, service.ErrTokenExpiredOrRevoked):
			h.clearRefreshCookie(w)
			return common.NewAppError(http.StatusUnauthorized, "Refresh token has expired or been revoked", err)
		default:
			return storageError(err)
		}
	}

	http.SetCookie(w, h.refreshCookie(pair.RefreshToken, time.Now().Add(h.tokens.RefreshTokenLifetime())))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResponse{AccessToken: pair.AccessToken})
	return nil
}

// Logout godoc
// @Summary      End the current session
// @Tags         auth
// @Success      200
// @Failure      401 {object} common.AppError
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(h.tokens.CookieName())
	if err != nil || cookie.Value == "" {
		return common.NewAppError(http.StatusUnauthorized, "No refresh token found", nil)
	}

	if err := h.tokens.RevokeOne(r.Context(), cookie.Value); err != nil {
		return storageError(err)
	}

	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusOK)
	return nil
}

// LogoutAll godoc
// @Summary      End every session of the current user
// @Tags         auth
// @Success      200
// @Failure      401 {object} common.AppError
// @Router       /auth/logoutAll [post]
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	if err := h.tokens.RevokeAll(r.Context(), userID); err != nil {
		return storageError(err)
	}

	logger.Log.WithField("user_id", userID).Info("All sessions revoked")
	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusOK)
	return nil
}

// RevokeSession godoc
// @Summary      Revoke one of the caller's sessions by id
// @Description  The caller is identified by the refresh cookie and may only revoke their own sessions.
// @Tags         auth
// @Param        sessionId path string true "Session id"
// @Success      200
// @Failure      400 {object} common.AppError
// @Failure      403 {object} common.AppError
// @Router       /auth/revokeSession/{sessionId} [post]
func (h *AuthHandler) RevokeSession(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(h.tokens.CookieName())
	if err != nil || cookie.Value == "" {
		return common.NewAppError(http.StatusUnauthorized, "No refresh token found", nil)
	}

	callerID, err := h.tokens.IdentityForRefreshToken(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", nil)
		}
		return storageError(err)
	}

	sessionID := r.PathValue("sessionId")
	session, err := h.tokens.GetSessionByID(r.Context(), sessionID)
	if err != nil {
		return storageError(err)
	}
	if session == nil {
		return common.NewAppError(http.StatusBadRequest, "Session not found", nil)
	}
	if session.UserID != callerID {
		return common.NewAppError(http.StatusForbidden, "Cannot revoke another user's session", nil)
	}

	if err := h.tokens.RevokeSession(r.Context(), session); err != nil {
		return storageError(err)
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":    callerID,
		"session_id": sessionID,
	}).Info("Session revoked")
	w.WriteHeader(http.StatusOK)
	return nil
}

// ActiveSessions godoc
// @Summary      List the caller's active sessions
// @Tags         auth
// @Produce      json
// @Success      200 {array} model.ActiveSession
// @Failure      401 {object} common.AppError
// @Router       /auth/activeSessions [get]
func (h *AuthHandler) ActiveSessions(w http.ResponseWriter, r *http.Request) *common.AppError {
	cookie, err := r.Cookie(h.tokens.CookieName())
	if err != nil || cookie.Value == "" {
		return common.NewAppError(http.StatusUnauthorized, "No refresh token found", nil)
	}

	callerID, err := h.tokens.IdentityForRefreshToken(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return common.NewAppError(http.StatusUnauthorized, "Invalid refresh token", nil)
		}
		return storageError(err)
	}

	sessions, err := h.tokens.ListActiveSessions(r.Context(), callerID)
	if err != nil {
		return storageError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessions)
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// storageError maps cache faults to 503 and everything else to 500.
func storageError(err error) *common.AppError {
	if errors.Is(err, cache.ErrUnavailable) {
		return common.NewAppError(http.StatusServiceUnavailable, "Session storage is unavailable", err)
	}
	return common.NewAppError(http.StatusInternalServerError, "An error occurred while processing your request", err)
}

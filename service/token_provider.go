// file: service/token_provider.go

package service

import (
	"context"
	"fmt"
	"livelib-api/config"
	"livelib-api/logger"
	"livelib-api/model"
	"livelib-api/repository"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TokenProvider composes the token issuer and the session repository into
// the authentication protocol: login, refresh with rotation, revocation,
// and session listing. A session moves Issued -> Active and then into
// exactly one of Rotated, Revoked, or Expired; it never comes back.
type TokenProvider struct {
	issuer     *TokenIssuer
	sessions   repository.ISessionRepository
	cookieName string
	refreshTTL time.Duration
}

func NewTokenProvider(issuer *TokenIssuer, sessions repository.ISessionRepository, cfg config.JWTConfig) *TokenProvider {
	return &TokenProvider{
		issuer:     issuer,
		sessions:   sessions,
		cookieName: cfg.CookieName,
		refreshTTL: cfg.RefreshTokenLifetime(),
	}
}

// CookieName is the name of the HTTP cookie carrying the refresh secret.
func (p *TokenProvider) CookieName() string { return p.cookieName }

// RefreshTokenLifetime is the validity window given to new sessions.
func (p *TokenProvider) RefreshTokenLifetime() time.Duration { return p.refreshTTL }

// Login issues a fresh access/refresh pair for the user and stores the
// new session. No existing session is touched.
func (p *TokenProvider) Login(ctx context.Context, user *model.User) (*model.TokenPair, error) {
	accessToken, err := p.issuer.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	secret, err := p.issuer.GenerateRefreshSecret()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Secret:    secret,
		CreatedAt: now,
		ExpiresAt: now.Add(p.refreshTTL),
		IsActive:  true,
	}

	if err := p.sessions.Add(ctx, session); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"session_id": session.ID,
	}).Info("Session created")

	return &model.TokenPair{AccessToken: accessToken, RefreshToken: secret}, nil
}

// Refresh exchanges an expired access token plus its refresh secret for a
// brand-new pair. The refresh secret is single-use: the old session is
// revoked before the new one is minted, so the old secret is dead even if
// the client never receives the response.
func (p *TokenProvider) Refresh(ctx context.Context, expiredAccessToken, refreshSecret string) (*model.TokenPair, error) {
	claims, err := p.issuer.VerifyExpired(expiredAccessToken)
	if err != nil {
		return nil, err
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing user identifier", ErrInvalidToken)
	}

	session, err := p.sessions.GetBySecret(ctx, refreshSecret)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: unknown refresh token", ErrInvalidToken)
	}

	if !session.Usable(time.Now().UTC()) {
		// Reuse of a rotated-out or expired secret. Revoke whatever is
		// left of the session before rejecting.
		if err := p.sessions.Revoke(ctx, session); err != nil {
			logger.Log.WithError(err).WithField("session_id", session.ID).Warn("Defensive revocation failed")
		}
		return nil, ErrTokenExpiredOrRevoked
	}

	// Rotation-on-use: the old session must be dead before the new one
	// exists, which is what makes the secret single-use. Deactivation
	// leaves an inactive record behind so a replay of this secret fails
	// as revoked rather than as unknown.
	if err := p.sessions.Deactivate(ctx, session); err != nil {
		return nil, err
	}

	user := &model.User{
		ID:       claims.UserID,
		Username: claims.Name,
		Role:     claims.Role,
	}
	return p.Login(ctx, user)
}

// RevokeOne revokes the session a refresh secret resolves to. An unknown
// or already-evicted secret is a successful no-op; the caller cannot tell
// the difference.
func (p *TokenProvider) RevokeOne(ctx context.Context, refreshSecret string) error {
	session, err := p.sessions.GetBySecret(ctx, refreshSecret)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return p.sessions.Revoke(ctx, session)
}

// RevokeAll revokes every active session of the user. Each revocation is
// attempted independently; one failure does not abort the rest.
func (p *TokenProvider) RevokeAll(ctx context.Context, userID int) error {
	sessions, err := p.sessions.ListActiveByUser(ctx, userID)
	if err != nil {
		return err
	}

	for session := range sessions {
		if err := p.sessions.Revoke(ctx, session); err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"user_id":    userID,
				"session_id": session.ID,
			}).Warn("Failed to revoke session during logout-all")
		}
	}
	return nil
}

// ValidateRefresh reports whether a session record resolves for the
// secret. It deliberately checks resolvability only, not IsActive or
// expiry; TTL eviction keeps the two in step for all but logically
// revoked, not-yet-evicted records.
func (p *TokenProvider) ValidateRefresh(ctx context.Context, refreshSecret string) (bool, error) {
	session, err := p.sessions.GetBySecret(ctx, refreshSecret)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

// IdentityForRefreshToken resolves the owning user of a refresh secret.
func (p *TokenProvider) IdentityForRefreshToken(ctx context.Context, refreshSecret string) (int, error) {
	session, err := p.sessions.GetBySecret(ctx, refreshSecret)
	if err != nil {
		return 0, err
	}
	if session == nil {
		return 0, fmt.Errorf("%w: unknown refresh token", ErrInvalidToken)
	}
	return session.UserID, nil
}

// GetSessionByID loads a session record by its id. Returns (nil, nil)
// when no such session exists.
func (p *TokenProvider) GetSessionByID(ctx context.Context, sessionID string) (*model.RefreshToken, error) {
	return p.sessions.GetByID(ctx, sessionID)
}

// RevokeSession revokes a previously loaded session record.
func (p *TokenProvider) RevokeSession(ctx context.Context, session *model.RefreshToken) error {
	return p.sessions.Revoke(ctx, session)
}

// ListActiveSessions materializes the client-facing view of a user's
// active sessions.
func (p *TokenProvider) ListActiveSessions(ctx context.Context, userID int) ([]model.ActiveSession, error) {
	sessions, err := p.sessions.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]model.ActiveSession, 0)
	for session := range sessions {
		result = append(result, model.ActiveSession{
			ID:        session.ID,
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
		})
	}
	return result, nil
}

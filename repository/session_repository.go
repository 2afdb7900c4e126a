// file: repository/session_repository.go

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"livelib-api/cache"
	"livelib-api/logger"
	"livelib-api/model"
	"time"

	"golang.org/x/sync/errgroup"
)

// ISessionRepository defines the contract for refresh-token session
// bookkeeping. Sessions are kept in the shared cache under three key
// families:
//
//	token:{sessionId}      -> serialized session record
//	tokenId:{secret}       -> sessionId
//	user:{userId}:tokens   -> set of the user's refresh secrets
//
// Every key carries a TTL equal to the session's remaining lifetime, so
// expired sessions age out of the store on their own.
type ISessionRepository interface {
	Add(ctx context.Context, token *model.RefreshToken) error
	GetBySecret(ctx context.Context, secret string) (*model.RefreshToken, error)
	GetByID(ctx context.Context, id string) (*model.RefreshToken, error)
	Deactivate(ctx context.Context, token *model.RefreshToken) error
	Revoke(ctx context.Context, token *model.RefreshToken) error
	ListActiveByUser(ctx context.Context, userID int) (iter.Seq[*model.RefreshToken], error)
}

// SessionRepository implements ISessionRepository over a cache.Provider.
// It holds no state of its own.
type SessionRepository struct {
	cache cache.Provider
}

func NewSessionRepository(cacheProvider cache.Provider) *SessionRepository {
	return &SessionRepository{cache: cacheProvider}
}

func sessionKey(id string) string { return "token:" + id }
func secretKey(secret string) string { return "tokenId:" + secret }
func userTokensKey(userID int) string { return fmt.Sprintf("user:%d:tokens", userID) }

// Add persists a new session under all three key families. The three
// writes are issued concurrently; a crash mid-way can strand a subset of
// keys, which the TTL cleans up. Sessions that are already past their
// expiry must not be created.
func (r *SessionRepository) Add(ctx context.Context, token *model.RefreshToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s expires in the past", token.ID)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", token.ID, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.cache.SetBytes(gctx, sessionKey(token.ID), data, ttl)
	})
	g.Go(func() error {
		return r.cache.SetString(gctx, secretKey(token.Secret), token.ID, ttl)
	})
	g.Go(func() error {
		// Refreshing the set TTL keeps the index alive at least as long
		// as the youngest session in it.
		return r.cache.AddToSet(gctx, userTokensKey(token.UserID), token.Secret, ttl)
	})
	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).WithField("session_id", token.ID).Error("Failed to store session")
		return err
	}
	return nil
}

// GetBySecret resolves a refresh secret to its session record. A miss on
// either lookup yields (nil, nil).
func (r *SessionRepository) GetBySecret(ctx context.Context, secret string) (*model.RefreshToken, error) {
	id, err := r.cache.GetString(ctx, secretKey(secret))
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// GetByID loads a session record directly. Returns (nil, nil) when absent.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*model.RefreshToken, error) {
	data, err := r.cache.GetBytes(ctx, sessionKey(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var token model.RefreshToken
	if err := json.Unmarshal(data, &token); err != nil {
		logger.Log.WithError(err).WithField("session_id", id).Error("Failed to unmarshal session record")
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &token, nil
}

// Deactivate marks a session rotated-out. The record and its secret
// indirection stay resolvable, flagged inactive, until their TTL runs
// out, so reuse of a rotated secret is distinguishable from a secret
// that never existed. The user's session index drops the secret at
// once; already-expired sessions are simply deleted.
func (r *SessionRepository) Deactivate(ctx context.Context, token *model.RefreshToken) error {
	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return r.Revoke(ctx, token)
	}

	token.IsActive = false
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", token.ID, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.cache.SetBytes(gctx, sessionKey(token.ID), data, ttl)
	})
	g.Go(func() error {
		return r.cache.RemoveFromSet(gctx, userTokensKey(token.UserID), token.Secret)
	})
	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).WithField("session_id", token.ID).Error("Failed to deactivate session")
		return err
	}
	return nil
}

// Revoke deletes all three key forms of a session concurrently. Revoking
// a session that is already gone is not an error.
func (r *SessionRepository) Revoke(ctx context.Context, token *model.RefreshToken) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.cache.Remove(gctx, sessionKey(token.ID))
	})
	g.Go(func() error {
		return r.cache.Remove(gctx, secretKey(token.Secret))
	})
	g.Go(func() error {
		return r.cache.RemoveFromSet(gctx, userTokensKey(token.UserID), token.Secret)
	})
	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).WithField("session_id", token.ID).Error("Failed to revoke session")
		return err
	}
	return nil
}

// ListActiveByUser returns a lazy sequence of the user's sessions. The
// secret set is fetched up front (a failure there fails the listing);
// each secret is resolved only as the consumer advances, and secrets that
// no longer resolve are skipped. The sequence can be re-ranged; each pass
// re-resolves against the cache.
func (r *SessionRepository) ListActiveByUser(ctx context.Context, userID int) (iter.Seq[*model.RefreshToken], error) {
	secrets, err := r.cache.GetSet(ctx, userTokensKey(userID))
	if err != nil {
		return nil, err
	}

	seq := func(yield func(*model.RefreshToken) bool) {
		for _, secret := range secrets {
			if ctx.Err() != nil {
				return
			}
			token, err := r.GetBySecret(ctx, secret)
			if err != nil || token == nil {
				// Already expired, revoked, or momentarily unreadable;
				// treated as absent rather than failing the listing.
				continue
			}
			if !yield(token) {
				return
			}
		}
	}
	return seq, nil
}

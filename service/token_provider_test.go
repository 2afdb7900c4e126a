// file: service/token_provider_test.go

package service

import (
	"context"
	"livelib-api/model"
	"livelib-api/repository"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-memory cache.Provider backing the real session
// repository in these tests. Keys never expire on their own; tests that
// care about expiry store records whose ExpiresAt is already near.
type fakeCache struct {
	mu      sync.Mutex
	strings map[string]string
	bytes   map[string][]byte
	sets    map[string]map[string]struct{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		strings: make(map[string]string),
		bytes:   make(map[string][]byte),
		sets:    make(map[string]map[string]struct{}),
	}
}

func (f *fakeCache) GetString(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.strings[key], nil
}

func (f *fakeCache) SetString(ctx context.Context, key, value string, expiry time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strings[key] = value
	return nil
}

func (f *fakeCache) GetBytes(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bytes[key], nil
}

func (f *fakeCache) SetBytes(ctx context.Context, key string, value []byte, expiry time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bytes[key] = value
	return nil
}

func (f *fakeCache) AddToSet(ctx context.Context, setKey, value string, expiry time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[setKey] == nil {
		f.sets[setKey] = make(map[string]struct{})
	}
	f.sets[setKey][value] = struct{}{}
	return nil
}

func (f *fakeCache) GetSet(ctx context.Context, setKey string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]string, 0, len(f.sets[setKey]))
	for member := range f.sets[setKey] {
		members = append(members, member)
	}
	return members, nil
}

func (f *fakeCache) RemoveFromSet(ctx context.Context, setKey, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sets[setKey], value)
	return nil
}

func (f *fakeCache) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.strings, key)
	delete(f.bytes, key)
	delete(f.sets, key)
	return nil
}

// newTestProvider wires a real issuer and a real session repository over
// the fake cache. A negative access lifetime makes every minted access
// token already expired, which is exactly what Refresh expects as input.
func newTestProvider(t *testing.T, accessMinutes int) (*TokenProvider, *repository.SessionRepository) {
	t.Helper()

	issuer, err := NewTokenIssuer(testJWTConfig(accessMinutes))
	require.NoError(t, err)

	sessions := repository.NewSessionRepository(newFakeCache())
	return NewTokenProvider(issuer, sessions, testJWTConfig(accessMinutes)), sessions
}

func TestTokenProvider_Login(t *testing.T) {
	provider, _ := newTestProvider(t, 5)
	ctx := context.Background()

	pair, err := provider.Login(ctx, testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	ok, err := provider.ValidateRefresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, ok)

	userID, err := provider.IdentityForRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestTokenProvider_LoginKeepsOtherSessions(t *testing.T) {
	provider, _ := newTestProvider(t, 5)
	ctx := context.Background()

	first, err := provider.Login(ctx, testUser())
	require.NoError(t, err)
	second, err := provider.Login(ctx, testUser())
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	listed, err := provider.ListActiveSessions(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestTokenProvider_RefreshRotates(t *testing.T) {
	provider, _ := newTestProvider(t, -1)
	ctx := context.Background()

	pair, err := provider.Login(ctx, testUser())
	require.NoError(t, err)

	rotated, err := provider.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The new secret works; the identity survives the rotation.
	userID, err := provider.IdentityForRefreshToken(ctx, rotated.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)

	// Replaying the rotated-out secret fails as revoked, not unknown.
	_, err = provider.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenExpiredOrRevoked)

	// The replay triggered a defensive revocation, so the old secret no
	// longer resolves at all.
	ok, err := provider.ValidateRefresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenProvider_RefreshUnknownSecret(t *testing.T) {
	provider, _ := newTestProvider(t, -1)
	ctx := context.Background()

	pair, err := provider.Login(ctx, testUser())
	require.NoError(t, err)

	_, err = provider.Refresh(ctx, pair.AccessToken, "never-issued-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NotErrorIs(t, err, ErrTokenExpiredOrRevoked)
}

func TestTokenProvider_RefreshGarbageAccessToken(t *testing.T) {
	provider, _ := newTestProvider(t, -1)
	ctx := context.Background()

	pair, err := provider.Login(ctx, testUser())
	require.NoError(t, err)

	_, err = provider.Refresh(ctx, "not-a-jwt", pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenProvider_RefreshExpiredSession(t *testing.T) {
	provider, sessions := newTestProvider(t, -1)
	ctx := context.Background()

	pair, err := provider.Login(ctx, testUser())
	require.NoError(t, err)

	// A session added on the very edge of its lifetime; once the wall
	// clock passes ExpiresAt it must refuse to refresh even though the
	// fake cache never evicts it.
	now := time.Now().UTC()
	expiring := &model.RefreshToken{
		ID:        "expiring-session",
		UserID:    42,
		Secret:    "expiring-secret",
		CreatedAt: now,
		ExpiresAt: now.Add(50 * time.Millisecond),
		IsActive:  true,
	}
	require.NoError(t, sessions.Add(ctx, expiring))
	time.Sleep(80 * time.Millisecond)

	_, err = provider.Refresh(ctx, pair.AccessToken, "expiring-secret")
	assert.ErrorIs(t, err, ErrTokenExpiredOrRevoked)

	// The failed attempt revoked the leftover record.
	ok, err := provider.ValidateRefresh(ctx, "expiring-secret")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenProvider_RevokeOne(t *testing.T) {
	provider, _ := newTestProvider(t, 5)
	ctx := context.Background()

	mine, err := provider.Login(ctx, testUser())
	require.NoError(t, err)
	other, err := provider.Login(ctx, &model.User{ID: 7, Username: "other", Role: string(model.RoleUser)})
	require.NoError(t, err)

	require.NoError(t, provider.RevokeOne(ctx, mine.RefreshToken))

	ok, err := provider.ValidateRefresh(ctx, mine.RefreshToken)
	require.NoError(t, err)
	assert.False(t, ok)

	// The other user's session is untouched.
	ok, err = provider.ValidateRefresh(ctx, other.RefreshToken)
	require.NoError(t, err)
	assert.True(t, ok)

	// Revoking an unknown secret is a quiet no-op.
	assert.NoError(t, provider.RevokeOne(ctx, "never-issued"))
}

func TestTokenProvider_RevokeAll(t *testing.T) {
	provider, _ := newTestProvider(t, 5)
	ctx := context.Background()

	first, err := provider.Login(ctx, testUser())
	require.NoError(t, err)
	second, err := provider.Login(ctx, testUser())
	require.NoError(t, err)

	require.NoError(t, provider.RevokeAll(ctx, 42))

	for _, secret := range []string{first.RefreshToken, second.RefreshToken} {
		ok, err := provider.ValidateRefresh(ctx, secret)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	listed, err := provider.ListActiveSessions(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestTokenProvider_RevokeSessionByID(t *testing.T) {
	provider, _ := newTestProvider(t, 5)
	ctx := context.Background()

	_, err := provider.Login(ctx, testUser())
	require.NoError(t, err)
	_, err = provider.Login(ctx, testUser())
	require.NoError(t, err)

	listed, err := provider.ListActiveSessions(ctx, 42)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	session, err := provider.GetSessionByID(ctx, listed[0].ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, 42, session.UserID)

	require.NoError(t, provider.RevokeSession(ctx, session))

	ok, err := provider.ValidateRefresh(ctx, session.Secret)
	require.NoError(t, err)
	assert.False(t, ok)

	gone, err := provider.GetSessionByID(ctx, listed[0].ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Exactly the untouched session survives.
	remaining, err := provider.ListActiveSessions(ctx, 42)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, listed[1].ID, remaining[0].ID)
}

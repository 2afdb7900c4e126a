// file: repository/session_repository_test.go

package repository

import (
	"context"
	"errors"
	"livelib-api/model"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-memory cache.Provider for registry tests. It
// records the last TTL written per key and can be told to fail.
type memoryCache struct {
	mu      sync.Mutex
	strings map[string]string
	bytes   map[string][]byte
	sets    map[string]map[string]struct{}
	ttls    map[string]time.Duration

	failAll error // when set, every operation returns this error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		strings: make(map[string]string),
		bytes:   make(map[string][]byte),
		sets:    make(map[string]map[string]struct{}),
		ttls:    make(map[string]time.Duration),
	}
}

func (m *memoryCache) GetString(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return "", m.failAll
	}
	return m.strings[key], nil
}

func (m *memoryCache) SetString(ctx context.Context, key, value string, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	m.strings[key] = value
	m.ttls[key] = expiry
	return nil
}

func (m *memoryCache) GetBytes(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	return m.bytes[key], nil
}

func (m *memoryCache) SetBytes(ctx context.Context, key string, value []byte, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	m.bytes[key] = value
	m.ttls[key] = expiry
	return nil
}

func (m *memoryCache) AddToSet(ctx context.Context, setKey, value string, expiry time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	if m.sets[setKey] == nil {
		m.sets[setKey] = make(map[string]struct{})
	}
	m.sets[setKey][value] = struct{}{}
	if expiry > 0 {
		m.ttls[setKey] = expiry
	}
	return nil
}

func (m *memoryCache) GetSet(ctx context.Context, setKey string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return nil, m.failAll
	}
	members := make([]string, 0, len(m.sets[setKey]))
	for member := range m.sets[setKey] {
		members = append(members, member)
	}
	return members, nil
}

func (m *memoryCache) RemoveFromSet(ctx context.Context, setKey, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	delete(m.sets[setKey], value)
	return nil
}

func (m *memoryCache) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll != nil {
		return m.failAll
	}
	delete(m.strings, key)
	delete(m.bytes, key)
	delete(m.sets, key)
	return nil
}

func testSession(userID int, secret string, ttl time.Duration) *model.RefreshToken {
	now := time.Now().UTC()
	return &model.RefreshToken{
		ID:        "session-" + secret,
		UserID:    userID,
		Secret:    secret,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		IsActive:  true,
	}
}

func TestSessionRepository_AddAndGet(t *testing.T) {
	cache := newMemoryCache()
	repo := NewSessionRepository(cache)
	ctx := context.Background()

	session := testSession(1, "secret-1", time.Hour)
	require.NoError(t, repo.Add(ctx, session))

	// All three key families must exist, each with a TTL.
	assert.NotEmpty(t, cache.bytes["token:"+session.ID])
	assert.Equal(t, session.ID, cache.strings["tokenId:secret-1"])
	assert.Contains(t, cache.sets["user:1:tokens"], "secret-1")
	assert.Greater(t, cache.ttls["token:"+session.ID], time.Duration(0))
	assert.Greater(t, cache.ttls["user:1:tokens"], time.Duration(0))

	bySecret, err := repo.GetBySecret(ctx, "secret-1")
	require.NoError(t, err)
	require.NotNil(t, bySecret)
	assert.Equal(t, session.ID, bySecret.ID)
	assert.Equal(t, 1, bySecret.UserID)
	assert.True(t, bySecret.IsActive)

	byID, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "secret-1", byID.Secret)
}

func TestSessionRepository_AddRejectsPastExpiry(t *testing.T) {
	repo := NewSessionRepository(newMemoryCache())

	session := testSession(1, "stale", -time.Minute)
	err := repo.Add(context.Background(), session)

	assert.Error(t, err)
}

func TestSessionRepository_GetMisses(t *testing.T) {
	repo := NewSessionRepository(newMemoryCache())
	ctx := context.Background()

	session, err := repo.GetBySecret(ctx, "never-issued")
	assert.NoError(t, err)
	assert.Nil(t, session)

	session, err = repo.GetByID(ctx, "no-such-id")
	assert.NoError(t, err)
	assert.Nil(t, session)
}

func TestSessionRepository_Revoke(t *testing.T) {
	cache := newMemoryCache()
	repo := NewSessionRepository(cache)
	ctx := context.Background()

	session := testSession(7, "secret-7", time.Hour)
	require.NoError(t, repo.Add(ctx, session))
	require.NoError(t, repo.Revoke(ctx, session))

	got, err := repo.GetBySecret(ctx, "secret-7")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NotContains(t, cache.sets["user:7:tokens"], "secret-7")

	// Revoking an already-absent session is not an error.
	assert.NoError(t, repo.Revoke(ctx, session))
}

func TestSessionRepository_Deactivate(t *testing.T) {
	cache := newMemoryCache()
	repo := NewSessionRepository(cache)
	ctx := context.Background()

	session := testSession(3, "secret-3", time.Hour)
	require.NoError(t, repo.Add(ctx, session))
	require.NoError(t, repo.Deactivate(ctx, session))

	// Still resolvable, but no longer active and gone from the index.
	got, err := repo.GetBySecret(ctx, "secret-3")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.IsActive)
	assert.NotContains(t, cache.sets["user:3:tokens"], "secret-3")
}

func TestSessionRepository_ListActiveByUser(t *testing.T) {
	cache := newMemoryCache()
	repo := NewSessionRepository(cache)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, testSession(5, "alpha", time.Hour)))
	require.NoError(t, repo.Add(ctx, testSession(5, "beta", time.Hour)))
	require.NoError(t, repo.Add(ctx, testSession(6, "other-user", time.Hour)))

	// A dangling set entry whose record was already evicted must be
	// skipped, not surfaced as an error.
	require.NoError(t, cache.AddToSet(ctx, "user:5:tokens", "dangling", time.Hour))

	sessions, err := repo.ListActiveByUser(ctx, 5)
	require.NoError(t, err)

	var secrets []string
	for session := range sessions {
		secrets = append(secrets, session.Secret)
	}
	assert.ElementsMatch(t, []string{"alpha", "beta"}, secrets)
}

func TestSessionRepository_ListStopsEarly(t *testing.T) {
	repo := NewSessionRepository(newMemoryCache())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, testSession(9, "one", time.Hour)))
	require.NoError(t, repo.Add(ctx, testSession(9, "two", time.Hour)))

	sessions, err := repo.ListActiveByUser(ctx, 9)
	require.NoError(t, err)

	count := 0
	for range sessions {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestSessionRepository_ListFailsWhenSetUnreadable(t *testing.T) {
	cache := newMemoryCache()
	repo := NewSessionRepository(cache)

	cache.failAll = errors.New("storage down")

	_, err := repo.ListActiveByUser(context.Background(), 1)
	assert.Error(t, err)
}

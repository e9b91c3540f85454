package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRedis фиксирует вызовы и хранит значения в памяти
type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	deleted []string
	setErr  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = value.(string)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, k := range keys {
		f.deleted = append(f.deleted, k)
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestGet_HitAndMiss(t *testing.T) {
	rdb := newFakeRedis()
	c := New(rdb, time.Hour, zap.NewNop())

	rdb.data["code:abc"] = "https://example.com"

	url, ok, err := c.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", url)

	_, ok, err = c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

// Запись без срока годности живёт ровно потолок по умолчанию
func TestSetAbsolute_NoExpiry_UsesDefaultTTL(t *testing.T) {
	rdb := newFakeRedis()
	c := New(rdb, time.Hour, zap.NewNop())

	err := c.SetAbsolute(context.Background(), "abc", "https://example.com", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", rdb.data["code:abc"])
	assert.Equal(t, time.Hour, rdb.ttls["code:abc"])
}

// Эффективный TTL не превышает остаток до expiresAt
func TestSetAbsolute_NearExpiry_CapsTTL(t *testing.T) {
	rdb := newFakeRedis()
	c := New(rdb, 24*time.Hour, zap.NewNop())

	expiresAt := time.Now().Add(10 * time.Minute)
	err := c.SetAbsolute(context.Background(), "abc", "https://example.com", &expiresAt)
	require.NoError(t, err)

	assert.LessOrEqual(t, rdb.ttls["code:abc"], 10*time.Minute)
	assert.Greater(t, rdb.ttls["code:abc"], 9*time.Minute)
}

// Истёкший срок годности: запись удаляется, а не пишется
func TestSetAbsolute_PastExpiry_DeletesInsteadOfWrite(t *testing.T) {
	rdb := newFakeRedis()
	c := New(rdb, time.Hour, zap.NewNop())

	rdb.data["code:abc"] = "stale"

	expiresAt := time.Now().Add(-time.Minute)
	err := c.SetAbsolute(context.Background(), "abc", "https://example.com", &expiresAt)
	require.NoError(t, err)

	_, ok := rdb.data["code:abc"]
	assert.False(t, ok, "stale value must be removed")
	assert.Contains(t, rdb.deleted, "code:abc")
}

func TestSetRelative_PositiveTTL(t *testing.T) {
	rdb := newFakeRedis()
	c := New(rdb, time.Hour, zap.NewNop())

	err := c.SetRelative(context.Background(), "b9", "https://example.com", 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, rdb.ttls["code:b9"])
}

func TestSetRelative_ZeroTTL_UsesDefault(t *testing.T) {
	rdb := newFakeRedis()
	c := New(rdb, time.Hour, zap.NewNop())

	err := c.SetRelative(context.Background(), "b9", "https://example.com", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, rdb.ttls["code:b9"])
}

// Повторное удаление не является ошибкой
func TestDelete_Idempotent(t *testing.T) {
	rdb := newFakeRedis()
	c := New(rdb, time.Hour, zap.NewNop())

	rdb.data["code:abc"] = "https://example.com"

	require.NoError(t, c.Delete(context.Background(), "abc"))
	require.NoError(t, c.Delete(context.Background(), "abc"))
}

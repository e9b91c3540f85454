// Package cache хранит сопоставление код → URL в Redis с ограниченным
// временем жизни. Кэш — быстрый слой перед БД, сам в БД не ходит.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL — потолок времени жизни записи по умолчанию.
const DefaultTTL = 24 * time.Hour

// Commands — срез клиента Redis, который использует кэш.
type Commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// URLCache — кэш соответствий код → URL.
type URLCache struct {
	rdb        Commands
	defaultTTL time.Duration
	logger     *zap.Logger
}

// New создаёт кэш. Если defaultTTL <= 0, берётся DefaultTTL.
func New(rdb Commands, defaultTTL time.Duration, logger *zap.Logger) *URLCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &URLCache{rdb: rdb, defaultTTL: defaultTTL, logger: logger}
}

// Get возвращает URL по коду. Второе значение — признак попадания.
func (c *URLCache) Get(ctx context.Context, code string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key(code)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get failed: %w", err)
	}
	return val, true, nil
}

// SetAbsolute записывает URL с абсолютным сроком годности (режим random).
// Уже истёкший срок означает активное удаление записи, а не запись:
// нельзя отдавать устаревшее значение, дожидаясь выселения по TTL.
// Иначе эффективный TTL — минимум остатка до expiresAt и потолка.
func (c *URLCache) SetAbsolute(ctx context.Context, code, url string, expiresAt *time.Time) error {
	ttl := c.defaultTTL
	if expiresAt != nil {
		remaining := time.Until(*expiresAt)
		if remaining <= 0 {
			return c.Delete(ctx, code)
		}
		if remaining < ttl {
			ttl = remaining
		}
	}

	if err := c.rdb.Set(ctx, key(code), url, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// SetRelative записывает URL с относительным TTL (режим sequence):
// положительный ttl берётся как есть, иначе — потолок по умолчанию.
func (c *URLCache) SetRelative(ctx context.Context, code, url string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err := c.rdb.Set(ctx, key(code), url, ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Delete удаляет запись. Отсутствие записи ошибкой не считается.
func (c *URLCache) Delete(ctx context.Context, code string) error {
	if err := c.rdb.Del(ctx, key(code)).Err(); err != nil {
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}

// key формирует ключ Redis: пространство имён кэша кодов.
func key(code string) string {
	return "code:" + code
}

// Package sequence выдаёт уникальные монотонно возрастающие числовые
// идентификаторы через атомарный INCR в Redis. Счётчик переживает
// рестарты процесса и общий для всех инстансов сервиса.
package sequence

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Incrementer — минимальный срез клиента Redis, нужный счётчику.
type Incrementer interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Sequence — durable-счётчик идентификаторов.
type Sequence struct {
	rdb Incrementer
	key string
}

// New создаёт счётчик поверх клиента Redis. key — имя ключа,
// хранящего текущее значение.
func New(rdb Incrementer, key string) *Sequence {
	return &Sequence{rdb: rdb, key: key}
}

// Next возвращает следующее значение счётчика: 1, 2, 3, ...
// Переполнение int64 Redis отвергает сам — ошибка пробрасывается наверх.
func (s *Sequence) Next(ctx context.Context) (int64, error) {
	n, err := s.rdb.Incr(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence increment failed: %w", err)
	}
	return n, nil
}

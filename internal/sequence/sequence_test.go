package sequence

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIncr имитирует атомарный INCR в памяти
type fakeIncr struct {
	counters map[string]int64
	err      error
}

func (f *fakeIncr) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	if f.counters == nil {
		f.counters = make(map[string]int64)
	}
	f.counters[key]++
	return redis.NewIntResult(f.counters[key], nil)
}

func TestSequence_Next_Monotonic(t *testing.T) {
	seq := New(&fakeIncr{}, "url:id:seq")

	var prev int64
	for i := 0; i < 100; i++ {
		n, err := seq.Next(context.Background())
		require.NoError(t, err)
		assert.Greater(t, n, prev)
		prev = n
	}
	assert.Equal(t, int64(100), prev)
}

func TestSequence_Next_StartsAtOne(t *testing.T) {
	seq := New(&fakeIncr{}, "url:id:seq")

	n, err := seq.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSequence_Next_Error(t *testing.T) {
	boom := errors.New("connection refused")
	seq := New(&fakeIncr{err: boom}, "url:id:seq")

	_, err := seq.Next(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSequence_SeparateKeys(t *testing.T) {
	f := &fakeIncr{}
	a := New(f, "seq:a")
	b := New(f, "seq:b")

	na, err := a.Next(context.Background())
	require.NoError(t, err)
	nb, err := b.Next(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), na)
	assert.Equal(t, int64(1), nb)
}

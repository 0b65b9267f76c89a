package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls int
	err   error
}

func (l *countingLoader) load(_ context.Context, user string) (string, error) {
	l.calls++
	if l.err != nil {
		return "", l.err
	}
	return "mentor-for-" + user, nil
}

func TestReadThroughCache_MissThenHit(t *testing.T) {
	loader := &countingLoader{}
	rt := NewReadThroughCache[string, string, string](newTestCache(), loader.load)
	ctx := context.Background()

	for range 3 {
		got, err := rt.Get(ctx, "carol", "carol", time.Minute)
		require.NoError(t, err)
		require.Equal(t, "mentor-for-carol", got)
	}
	require.Equal(t, 1, loader.calls)
}

func TestReadThroughCache_NilCacheLoadsEveryTime(t *testing.T) {
	loader := &countingLoader{}
	rt := NewReadThroughCache[string, string, string](nil, loader.load)
	ctx := context.Background()

	_, _ = rt.Get(ctx, "carol", "carol", time.Minute)
	_, _ = rt.Get(ctx, "carol", "carol", time.Minute)

	require.Equal(t, 2, loader.calls)
}

func TestReadThroughCache_LoadErrorNotCached(t *testing.T) {
	loadErr := errors.New("mentor directory unavailable")
	loader := &countingLoader{err: loadErr}
	cache := newTestCache()
	rt := NewReadThroughCache[string, string, string](cache, loader.load)
	ctx := context.Background()

	_, err := rt.Get(ctx, "carol", "carol", time.Minute)
	require.ErrorIs(t, err, loadErr)
	require.Zero(t, cache.Len())

	loader.err = nil
	got, err := rt.Get(ctx, "carol", "carol", time.Minute)
	require.NoError(t, err)
	require.Equal(t, "mentor-for-carol", got)
	require.Equal(t, 2, loader.calls)
}

// TestReadThroughCache_KeyAndInputDiffer verifies that values are stored under the
// cache key, not the loader input.
func TestReadThroughCache_KeyAndInputDiffer(t *testing.T) {
	loader := &countingLoader{}
	cache := newTestCache()
	rt := NewReadThroughCache[string, string, string](cache, loader.load)

	_, err := rt.Get(context.Background(), "k1", "carol", time.Minute)
	require.NoError(t, err)

	got, ok := cache.Get(context.Background(), "k1")
	require.True(t, ok)
	require.Equal(t, "mentor-for-carol", got)
}

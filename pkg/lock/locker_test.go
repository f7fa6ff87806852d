package lock

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return s, client
}

// exerciseMutualExclusion checks that no two holders overlap on one key.
func exerciseMutualExclusion(t *testing.T, locker Locker) {
	t.Helper()
	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), "item:1")
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				old := atomic.LoadInt32(&maxSeen)
				if n <= old || atomic.CompareAndSwapInt32(&maxSeen, old, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
}

func TestLocalLocker(t *testing.T) {
	locker := NewLocalLocker()

	t.Run("MutualExclusion", func(t *testing.T) {
		exerciseMutualExclusion(t, locker)
	})

	t.Run("TimesOut", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "item:2")
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(ctx, "item:2")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("IndependentKeys", func(t *testing.T) {
		unlockA, err := locker.Lock(context.Background(), "item:a")
		require.NoError(t, err)
		defer unlockA()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		unlockB, err := locker.Lock(ctx, "item:b")
		require.NoError(t, err)
		unlockB()
	})

	t.Run("DoubleUnlock", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "item:3")
		require.NoError(t, err)
		unlock()
		assert.NotPanics(t, unlock)
	})
}

func TestLocalLockerDropsIdleSlots(t *testing.T) {
	locker := NewLocalLocker()
	slots := func() int {
		locker.mu.Lock()
		defer locker.mu.Unlock()
		return len(locker.slots)
	}

	exerciseMutualExclusion(t, locker)
	assert.Equal(t, 0, slots())

	unlock, err := locker.Lock(context.Background(), "item:held")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "item:held")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, slots(), "a timed-out waiter keeps the held slot")

	unlock()
	unlock()
	assert.Equal(t, 0, slots())

	for i := 0; i < 100; i++ {
		unlock, err := locker.Lock(context.Background(), fmt.Sprintf("item:%d", i))
		require.NoError(t, err)
		unlock()
	}
	assert.Equal(t, 0, slots())
}

func TestRedisLocker(t *testing.T) {
	s, client := newTestRedis(t)
	core, logs := observer.New(zap.WarnLevel)
	locker := NewRedisLocker(client, time.Second, zap.New(core))

	t.Run("MutualExclusion", func(t *testing.T) {
		exerciseMutualExclusion(t, locker)
	})

	t.Run("ReleaseDeletesKey", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "item:4")
		require.NoError(t, err)
		assert.True(t, s.Exists("shareit:lock:item:4"))

		unlock()
		assert.False(t, s.Exists("shareit:lock:item:4"))
	})

	t.Run("ReleaseKeepsForeignToken", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "item:5")
		require.NoError(t, err)

		// the lease expired and another holder took the key
		require.NoError(t, s.Set("shareit:lock:item:5", "someone-else"))
		unlock()

		got, err := s.Get("shareit:lock:item:5")
		require.NoError(t, err)
		assert.Equal(t, "someone-else", got)
		assert.Equal(t, 1, logs.FilterMessage("Lock lease expired before release").Len())
	})

	t.Run("TimesOut", func(t *testing.T) {
		unlock, err := locker.Lock(context.Background(), "item:6")
		require.NoError(t, err)
		defer unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(ctx, "item:6")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("LeaseExpires", func(t *testing.T) {
		_, err := locker.Lock(context.Background(), "item:7")
		require.NoError(t, err)
		s.FastForward(2 * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		unlock, err := locker.Lock(ctx, "item:7")
		require.NoError(t, err)
		unlock()
	})
}

func TestRedisLockerLogsFailedRelease(t *testing.T) {
	s, client := newTestRedis(t)
	core, logs := observer.New(zap.WarnLevel)
	locker := NewRedisLocker(client, time.Second, zap.New(core))

	unlock, err := locker.Lock(context.Background(), "item:8")
	require.NoError(t, err)

	s.SetError("ERR server unavailable")
	unlock()
	s.SetError("")

	entries := logs.FilterMessage("Failed to release lock, key stays until its lease expires").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "shareit:lock:item:8", entries[0].ContextMap()["key"])
	assert.True(t, s.Exists("shareit:lock:item:8"))
}

package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/questx-lab/vesting/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func counter(value int64, calls *atomic.Int32) Fetcher[*big.Int] {
	return func(ctx context.Context) (*big.Int, error) {
		calls.Add(1)
		return big.NewInt(value), nil
	}
}

func TestFetch_Caches(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute)

	var calls atomic.Int32
	for i := 0; i < 3; i++ {
		v, err := Fetch(ctx, c, "k", counter(7, &calls))
		require.NoError(t, err)
		require.Equal(t, int64(7), v.Int64())
	}

	require.Equal(t, int32(1), calls.Load())

	v, updatedAt, ok := Peek[*big.Int](ctx, c, "k")
	require.True(t, ok)
	require.Equal(t, int64(7), v.Int64())
	require.False(t, updatedAt.IsZero())
}

func TestFetch_Expires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	c := NewClient(store, time.Second)

	var calls atomic.Int32
	_, err := Fetch(ctx, c, "k", counter(1, &calls))
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = Fetch(ctx, c, "k", counter(1, &calls))
	require.NoError(t, err)

	require.Equal(t, int32(2), calls.Load())
}

func TestFetch_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute)

	_, err := Fetch(ctx, c, "k", func(ctx context.Context) (*big.Int, error) {
		return nil, errors.New("rpc down")
	})
	require.Error(t, err)

	_, _, ok := Peek[*big.Int](ctx, c, "k")
	require.False(t, ok)
}

func TestFetch_Deduplicates(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute)

	release := make(chan struct{})
	var calls atomic.Int32
	fetcher := func(ctx context.Context) (*big.Int, error) {
		calls.Add(1)
		<-release
		return big.NewInt(3), nil
	}

	wg := sync.WaitGroup{}
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Fetch(ctx, c, "k", fetcher)
			require.NoError(t, err)
			require.Equal(t, int64(3), v.Int64())
		}()
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
}

func TestFetch_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := NewClient(NewMemoryStore(), time.Minute)

	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	fetcher := func(ctx context.Context) (*big.Int, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return big.NewInt(8), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := Fetch(firstCtx, c, "k", fetcher)
		firstErr <- err
	}()
	<-started

	second := make(chan *big.Int, 1)
	go func() {
		v, err := Fetch(context.Background(), c, "k", fetcher)
		require.NoError(t, err)
		second <- v
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	require.Equal(t, int64(8), (<-second).Int64())
	require.Equal(t, int32(1), calls.Load())

	cached, _, ok := Peek[*big.Int](context.Background(), c, "k")
	require.True(t, ok)
	require.Equal(t, int64(8), cached.Int64())
}

func TestRefetch_DoesNotJoinStaleLoad(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute)

	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := Fetch(ctx, c, "k", func(ctx context.Context) (*big.Int, error) {
			close(started)
			<-release
			return big.NewInt(1), nil
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), v.Int64())
	}()

	<-started

	var calls atomic.Int32
	v, err := Refetch(ctx, c, "k", counter(2, &calls))
	require.NoError(t, err)
	require.Equal(t, int64(2), v.Int64())
	require.Equal(t, int32(1), calls.Load())

	close(release)
	<-done

	cached, _, ok := Peek[*big.Int](ctx, c, "k")
	require.True(t, ok)
	require.Equal(t, int64(2), cached.Int64())
}

func TestRefetch_BypassesCache(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute)

	var calls atomic.Int32
	_, err := Fetch(ctx, c, "k", counter(1, &calls))
	require.NoError(t, err)

	v, err := Refetch(ctx, c, "k", counter(5, &calls))
	require.NoError(t, err)
	require.Equal(t, int64(5), v.Int64())
	require.Equal(t, int32(2), calls.Load())

	v, err = Fetch(ctx, c, "k", counter(9, &calls))
	require.NoError(t, err)
	require.Equal(t, int64(5), v.Int64())
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewClient(NewMemoryStore(), time.Minute)

	var calls atomic.Int32
	_, err := Fetch(ctx, c, "k", counter(1, &calls))
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, "k"))

	_, _, ok := Peek[*big.Int](ctx, c, "k")
	require.False(t, ok)

	_, err = Fetch(ctx, c, "k", counter(1, &calls))
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	data := map[string][]byte{}
	var ttl time.Duration

	client := &testutil.MockRedisClient{
		SetObjFunc: func(ctx context.Context, key string, obj any, d time.Duration) error {
			b, err := json.Marshal(obj)
			if err != nil {
				return err
			}
			data[key] = b
			ttl = d
			return nil
		},
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			b, ok := data[key]
			if !ok {
				return redis.Nil
			}
			return json.Unmarshal(b, v)
		},
		DelFunc: func(ctx context.Context, keys ...string) error {
			for _, key := range keys {
				delete(data, key)
			}
			return nil
		},
	}

	c := NewClient(NewRedisStore(client), 15*time.Second)

	_, _, ok := Peek[*big.Int](ctx, c, "k")
	require.False(t, ok)

	var calls atomic.Int32
	v, err := Fetch(ctx, c, "k", counter(11, &calls))
	require.NoError(t, err)
	require.Equal(t, int64(11), v.Int64())
	require.Equal(t, 15*time.Second, ttl)

	v, err = Fetch(ctx, c, "k", counter(12, &calls))
	require.NoError(t, err)
	require.Equal(t, int64(11), v.Int64())
	require.Equal(t, int32(1), calls.Load())

	require.NoError(t, c.Invalidate(ctx, "k"))
	require.Empty(t, data)
}

func TestRedisStore_Error(t *testing.T) {
	ctx := context.Background()
	client := &testutil.MockRedisClient{
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			return errors.New("connection refused")
		},
	}

	c := NewClient(NewRedisStore(client), time.Minute)

	// A broken store degrades to loading every time.
	var calls atomic.Int32
	for i := 0; i < 2; i++ {
		v, err := Fetch(ctx, c, "k", counter(4, &calls))
		require.NoError(t, err)
		require.Equal(t, int64(4), v.Int64())
	}
	require.Equal(t, int32(2), calls.Load())
}

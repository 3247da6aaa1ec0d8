package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/vesting/pkg/xcontext"
	"golang.org/x/sync/singleflight"
)

// Client caches query results by key. Concurrent loads of the same key are
// merged into a single call of the fetcher.
type Client struct {
	store Store
	ttl   time.Duration
	now   func() time.Time

	group singleflight.Group

	// A load only writes its result when the key was not refetched or
	// invalidated meanwhile.
	versions *xsync.MapOf[string, *atomic.Uint64]
	mutex    sync.Mutex
}

type Fetcher[T any] func(ctx context.Context) (T, error)

func NewClient(store Store, ttl time.Duration) *Client {
	return &Client{
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		versions: xsync.NewMapOf[*atomic.Uint64](),
	}
}

func (c *Client) version(key string) *atomic.Uint64 {
	v, _ := c.versions.LoadOrStore(key, &atomic.Uint64{})
	return v
}

// Fetch returns the cached value of key, loading it with fetcher when it is
// missing or stale.
func Fetch[T any](ctx context.Context, c *Client, key string, fetcher Fetcher[T]) (T, error) {
	if value, _, ok := Peek[T](ctx, c, key); ok {
		return value, nil
	}

	return load(ctx, c, key, c.version(key).Load(), fetcher)
}

// Refetch always calls fetcher. It does not join loads started before it.
func Refetch[T any](ctx context.Context, c *Client, key string, fetcher Fetcher[T]) (T, error) {
	c.mutex.Lock()
	version := c.version(key).Add(1)
	c.mutex.Unlock()

	return load(ctx, c, key, version, fetcher)
}

// Peek returns the cached value of key without loading it.
func Peek[T any](ctx context.Context, c *Client, key string) (T, time.Time, bool) {
	var value T

	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get cache entry %s: %v", key, err)
		return value, time.Time{}, false
	}

	if !ok {
		return value, time.Time{}, false
	}

	if err := json.Unmarshal(entry.Data, &value); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode cache entry %s: %v", key, err)
		return value, time.Time{}, false
	}

	return value, entry.UpdatedAt, true
}

// Invalidate drops the cached values. Loads in flight do not store their
// results.
func (c *Client) Invalidate(ctx context.Context, keys ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, key := range keys {
		c.version(key).Add(1)
	}

	return c.store.Del(ctx, keys...)
}

// load runs fetcher once for all callers of the same key and version. The
// shared call is detached from the cancellation of the caller which started
// it, so fetcher must bound its own duration.
func load[T any](ctx context.Context, c *Client, key string, version uint64, fetcher Fetcher[T]) (T, error) {
	var zero T

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fmt.Sprintf("%s#%d", key, version), func() (any, error) {
		value, err := fetcher(loadCtx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}

		c.mutex.Lock()
		defer c.mutex.Unlock()

		if c.version(key).Load() != version {
			return value, nil
		}

		entry := Entry{Data: data, UpdatedAt: c.now()}
		if err := c.store.Set(loadCtx, key, entry, c.ttl); err != nil {
			xcontext.Logger(loadCtx).Warnf("Cannot set cache entry %s: %v", key, err)
		}

		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}

		return res.Val.(T), nil
	}
}

package querycache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/questx-lab/vesting/pkg/xredis"
)

// Entry is the cached result of a query.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Store interface {
	// Get returns false when the key is missing or expired.
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type memoryEntry struct {
	entry    Entry
	expireAt time.Time
}

type memoryStore struct {
	entries *xsync.MapOf[string, memoryEntry]
	now     func() time.Time
}

func NewMemoryStore() *memoryStore {
	return &memoryStore{
		entries: xsync.NewMapOf[memoryEntry](),
		now:     time.Now,
	}
}

func (s *memoryStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	e, ok := s.entries.Load(key)
	if !ok {
		return Entry{}, false, nil
	}

	if !e.expireAt.IsZero() && !s.now().Before(e.expireAt) {
		s.entries.Delete(key)
		return Entry{}, false, nil
	}

	return e.entry, true, nil
}

func (s *memoryStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	e := memoryEntry{entry: entry}
	if ttl > 0 {
		e.expireAt = s.now().Add(ttl)
	}

	s.entries.Store(key, e)
	return nil
}

func (s *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		s.entries.Delete(key)
	}

	return nil
}

type redisStore struct {
	client xredis.Client
}

func NewRedisStore(client xredis.Client) *redisStore {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var entry Entry
	if err := s.client.GetObj(ctx, key, &entry); err != nil {
		if xredis.IsNil(err) {
			return Entry{}, false, nil
		}

		return Entry{}, false, err
	}

	if len(entry.Data) == 0 {
		return Entry{}, false, nil
	}

	return entry, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	return s.client.SetObj(ctx, key, entry, ttl)
}

func (s *redisStore) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...)
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "attendify:session:"

// Cache keeps immutable session records in Redis so validation does not hit
// Postgres on every scan. Entries never outlive the session expiry.
type Cache struct {
	client *redis.Client
	maxTTL time.Duration
}

// NewCache creates a cache; maxTTL caps how long an entry may live even for
// far-future expiries.
func NewCache(client *redis.Client, maxTTL time.Duration) *Cache {
	if maxTTL <= 0 {
		maxTTL = 15 * time.Minute
	}
	return &Cache{client: client, maxTTL: maxTTL}
}

// Get returns the cached session or nil on a miss.
func (c *Cache) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Put stores a session with a TTL clamped to its expiry. Already-expired
// sessions are not cached.
func (c *Cache) Put(ctx context.Context, s Session) error {
	ttl := time.Until(s.Payload.Expiry)
	if ttl <= 0 {
		return nil
	}
	if ttl > c.maxTTL {
		ttl = c.maxTTL
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKeyPrefix+s.Token, raw, ttl).Err()
}

// CachedStore reads sessions through the Redis cache in front of the Postgres
// repository. The cache is best-effort: any cache failure falls back to the
// repository and is logged, never surfaced.
type CachedStore struct {
	repo  *Repository
	cache *Cache
}

// NewCachedStore wires a repository with an optional cache (nil disables it).
func NewCachedStore(repo *Repository, cache *Cache) *CachedStore {
	return &CachedStore{repo: repo, cache: cache}
}

// Insert persists the session and warms the cache.
func (s *CachedStore) Insert(ctx context.Context, sess Session) error {
	if err := s.repo.Insert(ctx, sess); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, sess); err != nil {
			log.Printf("session cache put failed: %v", err)
		}
	}
	return nil
}

// GetByToken checks the cache first, then Postgres, filling the cache on a hit.
func (s *CachedStore) GetByToken(ctx context.Context, token string) (*Session, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, token)
		if err != nil {
			log.Printf("session cache get failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}
	sess, err := s.repo.GetByToken(ctx, token)
	if err != nil || sess == nil {
		return sess, err
	}
	if s.cache != nil {
		if err := s.cache.Put(ctx, *sess); err != nil {
			log.Printf("session cache put failed: %v", err)
		}
	}
	return sess, nil
}

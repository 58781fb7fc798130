package lookup

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"japanesereader/metrics"
	"japanesereader/translate"
)

// Store keeps translations between calls.
type Store interface {
	Get(ctx context.Context, text string) (string, bool, error)
	Set(ctx context.Context, text, translation string) error
}

// MemoryStore is a process-local bounded Store.
type MemoryStore struct {
	cache *lru.Cache[string, string]
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	c, err := lru.New[string, string](max(size, 1))
	if err != nil {
		return nil, fmt.Errorf("lookup: translation cache: %w", err)
	}
	return &MemoryStore{cache: c}, nil
}

func (s *MemoryStore) Get(_ context.Context, text string) (string, bool, error) {
	v, ok := s.cache.Get(text)
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, text, translation string) error {
	s.cache.Add(text, translation)
	return nil
}

const redisKeyPrefix = "translation:"

// RedisStore shares translations between processes through Redis, expiring
// them after a TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects to Redis and verifies the connection with a PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("lookup: redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, ttl: cfg.TTL}, nil
}

func (s *RedisStore) key(text string) string {
	h := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s%x", redisKeyPrefix, h[:16])
}

func (s *RedisStore) Get(ctx context.Context, text string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(text)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, text, translation string) error {
	return s.rdb.Set(ctx, s.key(text), translation, s.ttl).Err()
}

func (s *RedisStore) Close() error { return s.rdb.Close() }

// CachedTranslator memoises successful translations in a Store. Store
// failures are logged and treated as misses.
type CachedTranslator struct {
	next    translate.Translator
	store   Store
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewTranslator(next translate.Translator, store Store, m *metrics.Metrics) *CachedTranslator {
	return &CachedTranslator{
		next:    next,
		store:   store,
		metrics: m,
		logger:  slog.Default().With("component", "translation-cache"),
	}
}

func (t *CachedTranslator) get(ctx context.Context, text string) (string, bool) {
	v, ok, err := t.store.Get(ctx, text)
	if err != nil {
		t.logger.Error("cache get failed", "err", err)
		return "", false
	}
	return v, ok
}

// Translate serves text from the store, or from the wrapped translator with
// concurrent misses for the same text sharing one call that outlives the
// cancellation of any single caller.
func (t *CachedTranslator) Translate(ctx context.Context, text string) (string, error) {
	if v, ok := t.get(ctx, text); ok {
		t.metrics.CacheHit(translationSource)
		return v, nil
	}
	t.metrics.CacheMiss(translationSource)
	shared := context.WithoutCancel(ctx)
	ch := t.group.DoChan(text, func() (interface{}, error) {
		if v, ok := t.get(shared, text); ok {
			return v, nil
		}
		v, err := t.next.Translate(shared, text)
		if err != nil {
			return "", err
		}
		if err := t.store.Set(shared, text, v); err != nil {
			t.logger.Error("cache set failed", "err", err)
		}
		return v, nil
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			t.metrics.LookupFailure(translationSource)
			t.logger.Warn("translation failed", "text", text, "err", res.Err)
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

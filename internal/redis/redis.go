package redis

import (
	"context"
	"sync"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
)

var (
	client *redisv9.Client
	once   sync.Once
)

func GetClient() *redisv9.Client {
	once.Do(func() {
		client = redisv9.NewClient(&redisv9.Options{
			Addr: config.GetRedisAddr(),
		})
	})
	return client
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	once = sync.Once{}
	client = nil
}

// Store is the subset of the redis client the cache uses.
type Store interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

// ResponseCache keeps raw PDBe response bodies in redis for a fixed TTL.
type ResponseCache struct {
	store Store
	ttl   time.Duration
}

// NewResponseCache wraps store. A nil store falls back to the shared client.
func NewResponseCache(store Store, ttl time.Duration) *ResponseCache {
	if store == nil {
		store = GetClient()
	}
	if ttl <= 0 {
		ttl = config.GetCacheExpiration()
	}
	return &ResponseCache{store: store, ttl: ttl}
}

func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.store.Get(ctx, key).Bytes()
}

func (c *ResponseCache) Set(ctx context.Context, key string, value []byte) error {
	return c.store.Set(ctx, key, value, c.ttl).Err()
}

// Ping checks that the shared client can reach the server.
func Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return GetClient().Ping(ctx).Err()
}

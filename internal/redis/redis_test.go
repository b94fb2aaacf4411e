package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClient(t *testing.T) {
	client := GetClient()
	if client == nil {
		t.Error("Expected Redis client to be created")
	}

	// Test that we can get the same client multiple times (singleton pattern)
	client2 := GetClient()
	if client != client2 {
		t.Error("Expected same client instance (singleton pattern)")
	}
}

func TestResetClientForTest(t *testing.T) {
	client1 := GetClient()
	ResetClientForTest()
	client2 := GetClient()
	if client1 == client2 {
		t.Error("Expected a new client instance after reset")
	}
}

func TestPing_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", mr.Addr())
	ResetClientForTest()
	defer ResetClientForTest()

	assert.NoError(t, Ping(context.Background()))
}

func TestResponseCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	defer rdb.Close()

	cache := NewResponseCache(rdb, time.Minute)
	ctx := context.Background()

	_, err := cache.Get(ctx, "pdbe:GET:summary/1cbs")
	assert.True(t, errors.Is(err, redisv9.Nil))

	require.NoError(t, cache.Set(ctx, "pdbe:GET:summary/1cbs", []byte(`{"1cbs": []}`)))
	got, err := cache.Get(ctx, "pdbe:GET:summary/1cbs")
	require.NoError(t, err)
	assert.Equal(t, `{"1cbs": []}`, string(got))
	assert.Equal(t, time.Minute, mr.TTL("pdbe:GET:summary/1cbs"))

	mr.FastForward(2 * time.Minute)
	_, err = cache.Get(ctx, "pdbe:GET:summary/1cbs")
	assert.Error(t, err)
}

func TestNewResponseCache_DefaultTTL(t *testing.T) {
	cache := NewResponseCache(nil, 0)
	assert.Equal(t, 10*time.Minute, cache.ttl)
	assert.NotNil(t, cache.store)
}

type mockStore struct {
	getFunc func(ctx context.Context, key string) *redisv9.StringCmd
	setFunc func(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

func (m *mockStore) Get(ctx context.Context, key string) *redisv9.StringCmd {
	return m.getFunc(ctx, key)
}

func (m *mockStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd {
	return m.setFunc(ctx, key, value, expiration)
}

func TestResponseCache_StoreErrors(t *testing.T) {
	store := &mockStore{
		getFunc: func(ctx context.Context, key string) *redisv9.StringCmd {
			return redisv9.NewStringResult("", errors.New("connection refused"))
		},
		setFunc: func(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd {
			return redisv9.NewStatusResult("", errors.New("connection refused"))
		},
	}
	cache := NewResponseCache(store, time.Second)

	_, err := cache.Get(context.Background(), "k")
	assert.EqualError(t, err, "connection refused")
	assert.EqualError(t, cache.Set(context.Background(), "k", []byte("v")), "connection refused")
}

func BenchmarkGetClient(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetClient()
	}
}

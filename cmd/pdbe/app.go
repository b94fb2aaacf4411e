package main

import (
	"context"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
	"github.com/fakhrymubarak/pdbe-client/internal/metrics"
	"github.com/fakhrymubarak/pdbe-client/internal/pdbe"
	"github.com/fakhrymubarak/pdbe-client/internal/redis"
	"github.com/fakhrymubarak/pdbe-client/internal/service"
)

// newService builds the service used by every command. Tests replace it.
var newService = func(ctx context.Context, m *metrics.Metrics) service.PDBeServiceInterface {
	return service.NewPDBeService(newClient(ctx, m))
}

// newClient builds a PDBe client, caching responses in redis when enabled
// and reachable.
func newClient(ctx context.Context, m *metrics.Metrics) *pdbe.Client {
	logger := config.GetLogger()
	opts := []pdbe.Option{pdbe.WithLogger(logger), pdbe.WithMetrics(m)}
	if config.IsCacheEnabled() {
		if err := redis.Ping(ctx); err != nil {
			logger.Warnw("Redis unavailable, caching disabled", "addr", config.GetRedisAddr(), "error", err)
		} else {
			opts = append(opts, pdbe.WithCache(redis.NewResponseCache(nil, 0)))
			logger.Debugw("Caching PDBe responses", "addr", config.GetRedisAddr(), "ttl", config.GetCacheExpiration())
		}
	}
	return pdbe.NewClient(opts...)
}

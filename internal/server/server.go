// Package server assembles the lookup HTTP server.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
	"github.com/fakhrymubarak/pdbe-client/internal/handler"
	"github.com/fakhrymubarak/pdbe-client/internal/metrics"
	"github.com/fakhrymubarak/pdbe-client/internal/middleware"
	"github.com/fakhrymubarak/pdbe-client/internal/model"
	"github.com/fakhrymubarak/pdbe-client/internal/service"
)

type Options struct {
	Service  service.PDBeServiceInterface
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // serves /metrics when set
	Limiter  *middleware.RateLimiter
	Logger   *zap.SugaredLogger
}

// NewHandler wires the lookup routes behind request ids, access logging,
// rate limiting and request metrics. /metrics and /healthz bypass the limiter.
func NewHandler(o Options) http.Handler {
	if o.Logger == nil {
		o.Logger = config.GetLogger()
	}

	lookups := http.NewServeMux()
	h := handler.NewPDBeHandler(o.Service)
	h.Logger = o.Logger
	h.Register(lookups)

	var api http.Handler = middleware.Metrics(o.Metrics, lookups)
	if o.Limiter != nil {
		api = o.Limiter.Middleware(api)
	}

	root := http.NewServeMux()
	root.Handle("/", api)
	root.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		h.WriteJSON(w, http.StatusOK, model.Response{Message: "OK"})
	})
	if o.Gatherer != nil {
		root.Handle("GET /metrics", promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{}))
	}

	return middleware.RequestID(middleware.Logger(o.Logger, root))
}

// New returns an http.Server listening on addr with the configured timeouts.
func New(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: config.GetServerTimeout("read_header_timeout"),
		ReadTimeout:       config.GetServerTimeout("read_timeout"),
		WriteTimeout:      config.GetServerTimeout("write_timeout"),
		IdleTimeout:       config.GetServerTimeout("idle_timeout"),
	}
}

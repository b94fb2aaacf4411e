package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
	"github.com/fakhrymubarak/pdbe-client/internal/metrics"
	"github.com/fakhrymubarak/pdbe-client/internal/middleware"
	"github.com/fakhrymubarak/pdbe-client/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve PDBe lookups as a JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// no --timeout here: the server runs until interrupted
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :<server.port>)")
}

func runServer(ctx context.Context, addr string) error {
	logger := config.GetLogger()
	if addr == "" {
		addr = ":" + config.GetServerPort()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter()
	limiter.StartCleanup(ctx)

	srv := server.New(addr, server.NewHandler(server.Options{
		Service:  newService(ctx, m),
		Metrics:  m,
		Gatherer: reg,
		Limiter:  limiter,
		Logger:   logger,
	}))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logger.Infow("PDBe lookup server running", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Infow("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

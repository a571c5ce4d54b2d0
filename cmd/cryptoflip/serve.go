package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/anderwick/cryptoflip/internal/config"
	"github.com/anderwick/cryptoflip/pkg/metrics"
)

var (
	serveAddr   string
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a standalone observability server",
	Long: `Start an HTTP server exposing Prometheus metrics and health/readiness
probes for the global metrics collector. Useful for exercising a
cryptoflip deployment's /metrics, /health, /healthz, and /readyz
endpoints without embedding the toolkit in a larger service.`,
	Example: `  cryptoflip serve --addr :9090
  cryptoflip serve --config cryptoflip.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Address to listen on (overrides --config)")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to a YAML configuration file")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := ":9090"
	logLevel := metrics.LevelInfo

	if serveConfig != "" {
		cfg, err := config.LoadFromFile(serveConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		addr = cfg.Metrics.Addr
		logLevel = metrics.ParseLevel(cfg.Logging.Level)
	}
	if serveAddr != "" {
		addr = serveAddr
	}

	logger := metrics.NewLogger(metrics.WithLevel(logLevel))

	server := metrics.NewServer(metrics.ServerConfig{
		Collector:        metrics.Global(),
		Version:          version,
		EnablePrometheus: true,
		EnableHealth:     true,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	fmt.Printf("observability server listening on %s (metrics: /metrics, health: /health)\n", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("observability server failed: %w", err)
	case <-sigCh:
		logger.Info("shutting down observability server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

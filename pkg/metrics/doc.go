// Package metrics provides observability primitives for cryptoflip.
//
// # Overview
//
// The metrics package offers a complete observability solution including:
//   - Metrics collection (counters, histograms)
//   - Prometheus-compatible metrics export
//   - Structured logging with levels
//   - Health check endpoints
//
// # Quick Start
//
// Basic usage with the global collector:
//
//	import "github.com/anderwick/cryptoflip/pkg/metrics"
//
//	// Record metrics
//	metrics.Global().StreamOpened()
//	metrics.Global().RecordEncryptLatency(150 * time.Microsecond)
//	metrics.Global().RecordBlobEncrypted()
//
//	// Start an observability server
//	server := metrics.NewServer(metrics.ServerConfig{EnablePrometheus: true, EnableHealth: true})
//	go server.ListenAndServe(":9090")
//
// # Metrics Collection
//
// The Collector type aggregates metrics across every operation in this
// toolkit:
//
//	collector := metrics.NewCollector(metrics.Labels{
//		"instance": "node-1",
//		"region":   "us-west-2",
//	})
//
//	collector.StreamOpened()
//	collector.StreamFinalized()
//	collector.RecordEncryptLatency(d)
//	collector.RecordKDFLatency(d)
//	collector.RecordAuthFailure()
//
//	// Get snapshot
//	snap := collector.Snapshot()
//
// # Prometheus Export
//
// Export metrics in Prometheus format:
//
//	registry := prometheus.NewRegistry()
//	exporter := metrics.NewPrometheusExporter(collector)
//	exporter.Register(registry)
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// # Structured Logging
//
// The Logger provides structured logging with levels:
//
//	logger := metrics.NewLogger(
//		metrics.WithLevel(metrics.LevelInfo),
//		metrics.WithFormat(metrics.FormatJSON),
//		metrics.WithFields(metrics.Fields{"service": "cryptoflip"}),
//	)
//
//	logger.Info("blob encrypted", metrics.Fields{
//		"cipher": "AES-256-GCM",
//	})
//
//	// Child loggers
//	flipLog := logger.Named("flip").With(metrics.Fields{"marker": marker})
//	flipLog.Debug("garbage padding added")
//
// # Health Checks
//
// Provide health check endpoints for Kubernetes and load balancers:
//
//	health := metrics.NewHealthCheck(collector, "1.0.0")
//	health.AddCheck("crypto", func() error {
//		// Verify crypto subsystem
//		return nil
//	})
//
//	http.Handle("/health", health.Handler())
//	http.Handle("/healthz", health.LivenessHandler())
//	http.Handle("/readyz", health.ReadinessHandler())
//
// # Observability Server
//
// Start a complete observability server:
//
//	server := metrics.NewServer(metrics.ServerConfig{
//		Collector:        collector,
//		Version:          "1.0.0",
//		EnablePrometheus: true,
//		EnableHealth:     true,
//	})
//
//	go server.ListenAndServe(":9090")
//
// This provides:
//   - /metrics - Prometheus metrics
//   - /health  - Detailed health status
//   - /healthz - Kubernetes liveness probe
//   - /readyz  - Kubernetes readiness probe
package metrics

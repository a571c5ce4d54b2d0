// Package metrics provides observability primitives for cryptoflip.
//
// The package includes:
//   - Counter and Histogram metric types
//   - Prometheus-compatible metrics export
//   - Structured logging with levels
//   - Health check functionality
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector aggregates counters and latency histograms across cryptoflip's
// operations: streaming, one-shot, file, and flip encryption/decryption.
type Collector struct {
	// Stream metrics
	streamsOpened    atomic.Uint64
	streamsFinalized atomic.Uint64
	streamsFailed    atomic.Uint64

	// One-shot / file AEAD metrics
	blobsEncrypted atomic.Uint64
	blobsDecrypted atomic.Uint64
	filesEncrypted atomic.Uint64
	filesDecrypted atomic.Uint64

	// Flip protocol metrics
	flipEncrypted atomic.Uint64
	flipDecrypted atomic.Uint64

	// Error metrics
	authFailures    atomic.Uint64
	markerMismatchs atomic.Uint64
	ioErrors        atomic.Uint64

	// Performance histograms
	encryptLatency *Histogram
	decryptLatency *Histogram
	kdfLatency     *Histogram

	// Creation time for uptime tracking
	createdAt time.Time

	// Labels for this collector instance
	labels Labels
}

// Labels represents key-value pairs for metric labeling.
type Labels map[string]string

// NewCollector creates a new metrics collector.
func NewCollector(labels Labels) *Collector {
	if labels == nil {
		labels = make(Labels)
	}

	return &Collector{
		encryptLatency: NewHistogram(LatencyBuckets),
		decryptLatency: NewHistogram(LatencyBuckets),
		kdfLatency:     NewHistogram(KDFLatencyBuckets),
		createdAt:      time.Now(),
		labels:         labels,
	}
}

// Default bucket configurations for histograms.
var (
	// LatencyBuckets for encrypt/decrypt operations (microseconds).
	LatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}

	// KDFLatencyBuckets for PBKDF2 key derivation (milliseconds) — a
	// deliberately slow operation, so the buckets sit two orders of
	// magnitude above LatencyBuckets.
	KDFLatencyBuckets = []float64{10, 25, 50, 100, 250, 500, 1000, 2500}
)

// --- Stream Metrics ---

// StreamOpened records that a streaming session started.
func (c *Collector) StreamOpened() {
	c.streamsOpened.Add(1)
}

// StreamFinalized records that a streaming session's Finalize succeeded.
func (c *Collector) StreamFinalized() {
	c.streamsFinalized.Add(1)
}

// StreamFailed records that a streaming session's Finalize reported an
// authentication failure.
func (c *Collector) StreamFailed() {
	c.streamsFailed.Add(1)
}

// --- One-shot / File AEAD metrics ---

// RecordBlobEncrypted increments the one-shot blob encryption counter.
func (c *Collector) RecordBlobEncrypted() {
	c.blobsEncrypted.Add(1)
}

// RecordBlobDecrypted increments the one-shot blob decryption counter.
func (c *Collector) RecordBlobDecrypted() {
	c.blobsDecrypted.Add(1)
}

// RecordFileEncrypted increments the file-AEAD encryption counter.
func (c *Collector) RecordFileEncrypted() {
	c.filesEncrypted.Add(1)
}

// RecordFileDecrypted increments the file-AEAD decryption counter.
func (c *Collector) RecordFileDecrypted() {
	c.filesDecrypted.Add(1)
}

// --- Flip protocol metrics ---

// RecordFlipEncrypted increments the flip-protocol encryption counter.
func (c *Collector) RecordFlipEncrypted() {
	c.flipEncrypted.Add(1)
}

// RecordFlipDecrypted increments the flip-protocol decryption counter.
func (c *Collector) RecordFlipDecrypted() {
	c.flipDecrypted.Add(1)
}

// --- Error Metrics ---

// RecordAuthFailure increments the authentication-tag-mismatch counter.
func (c *Collector) RecordAuthFailure() {
	c.authFailures.Add(1)
}

// RecordMarkerMismatch increments the marker/check-tag mismatch counter.
func (c *Collector) RecordMarkerMismatch() {
	c.markerMismatchs.Add(1)
}

// RecordIOError increments the file and CSPRNG I/O error counter.
func (c *Collector) RecordIOError() {
	c.ioErrors.Add(1)
}

// --- Performance Metrics ---

// RecordEncryptLatency records encryption operation latency.
func (c *Collector) RecordEncryptLatency(d time.Duration) {
	c.encryptLatency.Observe(float64(d.Microseconds()))
}

// RecordDecryptLatency records decryption operation latency.
func (c *Collector) RecordDecryptLatency(d time.Duration) {
	c.decryptLatency.Observe(float64(d.Microseconds()))
}

// RecordKDFLatency records PBKDF2 key derivation latency.
func (c *Collector) RecordKDFLatency(d time.Duration) {
	c.kdfLatency.Observe(float64(d.Milliseconds()))
}

// --- Snapshot ---

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	Timestamp time.Time
	Uptime    time.Duration

	StreamsOpened    uint64
	StreamsFinalized uint64
	StreamsFailed    uint64

	BlobsEncrypted uint64
	BlobsDecrypted uint64
	FilesEncrypted uint64
	FilesDecrypted uint64

	FlipEncrypted uint64
	FlipDecrypted uint64

	AuthFailures    uint64
	MarkerMismatchs uint64
	IOErrors        uint64

	EncryptLatency HistogramSummary
	DecryptLatency HistogramSummary
	KDFLatency     HistogramSummary

	Labels Labels
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Timestamp:        time.Now(),
		Uptime:           time.Since(c.createdAt),
		StreamsOpened:    c.streamsOpened.Load(),
		StreamsFinalized: c.streamsFinalized.Load(),
		StreamsFailed:    c.streamsFailed.Load(),
		BlobsEncrypted:   c.blobsEncrypted.Load(),
		BlobsDecrypted:   c.blobsDecrypted.Load(),
		FilesEncrypted:   c.filesEncrypted.Load(),
		FilesDecrypted:   c.filesDecrypted.Load(),
		FlipEncrypted:    c.flipEncrypted.Load(),
		FlipDecrypted:    c.flipDecrypted.Load(),
		AuthFailures:     c.authFailures.Load(),
		MarkerMismatchs:  c.markerMismatchs.Load(),
		IOErrors:         c.ioErrors.Load(),
		EncryptLatency:   c.encryptLatency.Summary(),
		DecryptLatency:   c.decryptLatency.Summary(),
		KDFLatency:       c.kdfLatency.Summary(),
		Labels:           c.labels,
	}
}

// Reset clears all metrics (useful for testing).
func (c *Collector) Reset() {
	c.streamsOpened.Store(0)
	c.streamsFinalized.Store(0)
	c.streamsFailed.Store(0)
	c.blobsEncrypted.Store(0)
	c.blobsDecrypted.Store(0)
	c.filesEncrypted.Store(0)
	c.filesDecrypted.Store(0)
	c.flipEncrypted.Store(0)
	c.flipDecrypted.Store(0)
	c.authFailures.Store(0)
	c.markerMismatchs.Store(0)
	c.ioErrors.Store(0)
	c.encryptLatency.Reset()
	c.decryptLatency.Reset()
	c.kdfLatency.Reset()
	c.createdAt = time.Now()
}

// --- Global Collector ---

var (
	globalCollector     *Collector
	globalCollectorOnce sync.Once
)

// Global returns the global metrics collector.
// Creates one with default settings if not already initialized.
func Global() *Collector {
	globalCollectorOnce.Do(func() {
		globalCollector = NewCollector(Labels{"instance": "default"})
	})
	return globalCollector
}

// SetGlobal sets the global metrics collector.
// Should be called during initialization before any metrics are recorded.
func SetGlobal(c *Collector) {
	globalCollectorOnce.Do(func() {})
	globalCollector = c
}

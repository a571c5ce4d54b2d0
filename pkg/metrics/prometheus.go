package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusExporter bridges a Collector's counters and histograms into
// real Prometheus collectors, registered against a caller-supplied
// registry. Unlike a hand-rolled text writer, values are recomputed from
// the Collector's Snapshot on every Prometheus scrape via GaugeFunc and
// CounterFunc callbacks, so there is no separate state to keep in sync.
type PrometheusExporter struct {
	collector *Collector

	streamsOpened    prometheus.CounterFunc
	streamsFinalized prometheus.CounterFunc
	streamsFailed    prometheus.CounterFunc

	blobsEncrypted prometheus.CounterFunc
	blobsDecrypted prometheus.CounterFunc
	filesEncrypted prometheus.CounterFunc
	filesDecrypted prometheus.CounterFunc

	flipEncrypted prometheus.CounterFunc
	flipDecrypted prometheus.CounterFunc

	authFailures    prometheus.CounterFunc
	markerMismatchs prometheus.CounterFunc
	ioErrors        prometheus.CounterFunc

	uptimeSeconds prometheus.GaugeFunc
}

// NewPrometheusExporter builds a PrometheusExporter over collector. Call
// Register to attach its metrics to a prometheus.Registerer.
func NewPrometheusExporter(collector *Collector) *PrometheusExporter {
	counter := func(name, help string, get func(Snapshot) uint64) prometheus.CounterFunc {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "cryptoflip",
			Name:      name,
			Help:      help,
		}, func() float64 {
			return float64(get(collector.Snapshot()))
		})
	}

	return &PrometheusExporter{
		collector: collector,

		streamsOpened:    counter("streams_opened_total", "Streaming sessions started.", func(s Snapshot) uint64 { return s.StreamsOpened }),
		streamsFinalized: counter("streams_finalized_total", "Streaming sessions finalized successfully.", func(s Snapshot) uint64 { return s.StreamsFinalized }),
		streamsFailed:    counter("streams_failed_total", "Streaming sessions that failed authentication at Finalize.", func(s Snapshot) uint64 { return s.StreamsFailed }),

		blobsEncrypted: counter("blobs_encrypted_total", "One-shot blobs encrypted.", func(s Snapshot) uint64 { return s.BlobsEncrypted }),
		blobsDecrypted: counter("blobs_decrypted_total", "One-shot blobs decrypted.", func(s Snapshot) uint64 { return s.BlobsDecrypted }),
		filesEncrypted: counter("files_encrypted_total", "Files encrypted in place.", func(s Snapshot) uint64 { return s.FilesEncrypted }),
		filesDecrypted: counter("files_decrypted_total", "Files decrypted in place.", func(s Snapshot) uint64 { return s.FilesDecrypted }),

		flipEncrypted: counter("flip_encrypted_total", "Flip-protocol messages encrypted.", func(s Snapshot) uint64 { return s.FlipEncrypted }),
		flipDecrypted: counter("flip_decrypted_total", "Flip-protocol messages decrypted.", func(s Snapshot) uint64 { return s.FlipDecrypted }),

		authFailures:    counter("auth_failures_total", "Authentication tag mismatches across all operations.", func(s Snapshot) uint64 { return s.AuthFailures }),
		markerMismatchs: counter("marker_mismatches_total", "Marker or check-tag mismatches.", func(s Snapshot) uint64 { return s.MarkerMismatchs }),
		ioErrors:        counter("io_errors_total", "File or CSPRNG I/O failures.", func(s Snapshot) uint64 { return s.IOErrors }),

		uptimeSeconds: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "cryptoflip",
			Name:      "collector_uptime_seconds",
			Help:      "Seconds since this metrics collector was created.",
		}, func() float64 {
			return collector.Snapshot().Uptime.Seconds()
		}),
	}
}

// Register attaches every metric in e to reg.
func (e *PrometheusExporter) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		e.streamsOpened, e.streamsFinalized, e.streamsFailed,
		e.blobsEncrypted, e.blobsDecrypted, e.filesEncrypted, e.filesDecrypted,
		e.flipEncrypted, e.flipDecrypted,
		e.authFailures, e.markerMismatchs, e.ioErrors,
		e.uptimeSeconds,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

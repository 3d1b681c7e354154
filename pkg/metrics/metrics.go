// Package metrics exposes Prometheus counters for frame operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Operation names used as label values.
const (
	OpCompress   = "compress"
	OpDecompress = "decompress"
	OpPut        = "put"
	OpGet        = "get"
	OpDelete     = "delete"
)

// Metrics holds all Prometheus metrics for frame handling. A nil *Metrics
// records nothing.
type Metrics struct {
	framesTotal       *prometheus.CounterVec
	frameBytesTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	storedFrames      prometheus.Gauge
}

// NewMetrics creates the metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer to expose them process-wide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		framesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bytekit_frames_total",
				Help: "Total number of frame operations",
			},
			[]string{"operation", "status"},
		),

		frameBytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bytekit_frame_bytes_total",
				Help: "Total bytes handled by frame operations",
			},
			[]string{"direction"},
		),

		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bytekit_operation_duration_seconds",
				Help:    "Frame operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		storedFrames: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bytekit_stored_frames",
				Help: "Number of frames in the frame store",
			},
		),
	}
}

// ObserveFrame records one operation over a buffer of raw bytes whose frame
// is compressed bytes long.
func (m *Metrics) ObserveFrame(op string, raw, compressed int, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.framesTotal.WithLabelValues(op, status).Inc()
	m.operationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	m.frameBytesTotal.WithLabelValues("raw").Add(float64(raw))
	m.frameBytesTotal.WithLabelValues("compressed").Add(float64(compressed))
}

// FrameStored adjusts the stored frame gauge.
func (m *Metrics) FrameStored(delta int) {
	if m == nil {
		return
	}
	m.storedFrames.Add(float64(delta))
}

// SetStoredFrames sets the stored frame gauge to the number of frames a
// store holds when it is opened.
func (m *Metrics) SetStoredFrames(n int) {
	if m == nil {
		return
	}
	m.storedFrames.Set(float64(n))
}

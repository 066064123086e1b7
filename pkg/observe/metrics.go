package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/blockwire/pkg/protocol"
)

// Direction label values.
const (
	DirectionRead  = "read"
	DirectionWrite = "write"
)

// MetricsConfig configures the Prometheus packet observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "blockwire").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for packet duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus packet observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "blockwire",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// Metrics is a protocol.Observer that records packet traffic in
// Prometheus.
//
// Metrics collected:
//   - blockwire_packets_total: Counter of packets by direction and status
//   - blockwire_packet_bytes_total: Counter of wire bytes by direction
//   - blockwire_packets_compressed_total: Counter of deflated packets by direction
//   - blockwire_packet_duration_seconds: Histogram of read/write duration
//   - blockwire_packet_errors_total: Counter of failures by direction and error type
//
// Example:
//
//	m := observe.NewMetrics(observe.WithNamespace("proxy"))
//	s := protocol.NewStream(conn, protocol.WithObserver(m))
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//
// Metrics registers its collectors when created, so creating two with
// the same registry and namespace panics.
type Metrics struct {
	packetsTotal     *prometheus.CounterVec
	packetBytes      *prometheus.CounterVec
	packetCompressed *prometheus.CounterVec
	packetDuration   *prometheus.HistogramVec
	packetErrors     *prometheus.CounterVec
}

var _ protocol.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the packet metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		packetsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "packets_total",
			Help:        "Total number of packets read or written",
			ConstLabels: config.ConstLabels,
		}, []string{"direction", "status"}),

		packetBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "packet_bytes_total",
			Help:        "Total wire bytes of packet frames, including length prefixes",
			ConstLabels: config.ConstLabels,
		}, []string{"direction"}),

		packetCompressed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "packets_compressed_total",
			Help:        "Total number of packets with a deflated body",
			ConstLabels: config.ConstLabels,
		}, []string{"direction"}),

		packetDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "packet_duration_seconds",
			Help:        "Packet read/write duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"direction"}),

		packetErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "packet_errors_total",
			Help:        "Total number of packet read/write failures",
			ConstLabels: config.ConstLabels,
		}, []string{"direction", "error_type"}),
	}
}

// ObserveRead implements protocol.Observer.
func (m *Metrics) ObserveRead(start time.Time, pkt protocol.Packet, wireBytes int, compressed bool, err error) {
	if endOfStream(wireBytes, err) {
		return
	}
	m.record(DirectionRead, start, wireBytes, compressed, err)
}

// ObserveWrite implements protocol.Observer.
func (m *Metrics) ObserveWrite(start time.Time, id int32, wireBytes int, compressed bool, err error) {
	m.record(DirectionWrite, start, wireBytes, compressed, err)
}

func (m *Metrics) record(direction string, start time.Time, wireBytes int, compressed bool, err error) {
	m.packetDuration.WithLabelValues(direction).Observe(time.Since(start).Seconds())
	m.packetBytes.WithLabelValues(direction).Add(float64(wireBytes))

	status := "success"
	if err != nil {
		status = "error"
		m.packetErrors.WithLabelValues(direction, ErrorType(err)).Inc()
	} else if compressed {
		m.packetCompressed.WithLabelValues(direction).Inc()
	}
	m.packetsTotal.WithLabelValues(direction, status).Inc()
}

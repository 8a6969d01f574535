package instrument

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus profiler.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "rendertree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "builder").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for operation duration. Builder
	// operations are sub-microsecond appends, so the defaults start far
	// below prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus profiler.
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

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "rendertree",
		Subsystem: "builder",
		Buckets: []float64{
			1e-7, 2.5e-7, 5e-7, 1e-6, 2.5e-6, 5e-6, 1e-5, 1e-4, 1e-3,
		},
		Registry: prometheus.DefaultRegisterer,
	}
}

type opStart struct {
	name string
	at   time.Time
}

// Metrics records builder operation counts and durations in Prometheus.
//
// Metrics collected:
//   - rendertree_builder_operations_total: Counter of operations by name
//   - rendertree_builder_operation_duration_seconds: Histogram by name
//
// It implements rendertree.Profiler and must only be used from the builder's
// goroutine.
type Metrics struct {
	opsTotal   *prometheus.CounterVec
	opDuration *prometheus.HistogramVec
	starts     []opStart
}

// NewMetrics creates a Prometheus profiler and registers its collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		opsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "operations_total",
			Help:        "Total number of builder operations",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		opDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "operation_duration_seconds",
			Help:        "Builder operation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),
	}
}

// OperationStart records the start of a builder operation.
func (m *Metrics) OperationStart(name string) {
	m.starts = append(m.starts, opStart{name: name, at: time.Now()})
}

// OperationEnd records the end of the innermost in-flight operation.
func (m *Metrics) OperationEnd(name string) {
	if len(m.starts) == 0 {
		return
	}
	top := m.starts[len(m.starts)-1]
	m.starts = m.starts[:len(m.starts)-1]

	m.opsTotal.WithLabelValues(name).Inc()
	m.opDuration.WithLabelValues(name).Observe(time.Since(top.at).Seconds())
}

// Depth returns the number of in-flight operations.
func (m *Metrics) Depth() int {
	return len(m.starts)
}

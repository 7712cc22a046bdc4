package observe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/signalgraph/internal/errors"
)

// MetricsConfig configures the Prometheus reporter.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "signalgraph").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for build and propagation
	// durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus reporter.
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
		Namespace: "signalgraph",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records engine activity as Prometheus metrics:
//   - signalgraph_field_builds_total: Counter of field builds by field
//   - signalgraph_field_build_duration_seconds: Histogram of build time by field
//   - signalgraph_propagations_total: Counter of propagation runs by op
//   - signalgraph_propagation_duration_seconds: Histogram of run time by op
//   - signalgraph_signal_failures_total: Counter of terminal errors by code
type Metrics struct {
	fieldBuilds         *prometheus.CounterVec
	fieldBuildDuration  *prometheus.HistogramVec
	propagations        *prometheus.CounterVec
	propagationDuration *prometheus.HistogramVec
	signalFailures      *prometheus.CounterVec
}

// NewMetrics registers the engine metrics. It panics if they are already
// registered with the chosen registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		fieldBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "field_builds_total",
			Help:        "Total number of memoized fields built",
			ConstLabels: config.ConstLabels,
		}, []string{"field"}),

		fieldBuildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "field_build_duration_seconds",
			Help:        "Time spent composing memoized fields in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"field"}),

		propagations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "propagations_total",
			Help:        "Total number of propagation runs",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		propagationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "propagation_duration_seconds",
			Help:        "Propagation run duration in seconds, including lock wait",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),

		signalFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signal_failures_total",
			Help:        "Total number of terminal signal errors delivered to watchers",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
	}
}

func (m *Metrics) FieldBuilt(name string, d time.Duration) {
	m.fieldBuilds.WithLabelValues(name).Inc()
	m.fieldBuildDuration.WithLabelValues(name).Observe(d.Seconds())
}

func (m *Metrics) Propagated(op string, d time.Duration) {
	m.propagations.WithLabelValues(op).Inc()
	m.propagationDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) SignalFailed(err error) {
	m.signalFailures.WithLabelValues(failureCode(err)).Inc()
}

// failureCode keeps the label set bounded.
func failureCode(err error) string {
	if code := errors.CodeOf(err); code != "" {
		return code
	}
	return "unknown"
}

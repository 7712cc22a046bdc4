package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for engine spans.
const defaultTracerName = "signalgraph"

// TracingConfig configures the OpenTelemetry reporter.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "signalgraph").
	TracerName string

	// Provider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	Provider trace.TracerProvider

	// Filter determines which propagation runs get a span.
	// Return true to trace the op. If nil, every run except "watch" and
	// "close" is traced.
	Filter func(op string) bool
}

// TracingOption configures the OpenTelemetry reporter.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(provider trace.TracerProvider) TracingOption {
	return func(c *TracingConfig) {
		c.Provider = provider
	}
}

// WithOpFilter sets a filter function for propagation runs.
func WithOpFilter(filter func(op string) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

func defaultTracingConfig() TracingConfig {
	return TracingConfig{
		TracerName: defaultTracerName,
		Filter: func(op string) bool {
			return op != "watch" && op != "close"
		},
	}
}

// Tracing records field builds, propagation runs and signal failures as
// spans. Events are reported after the fact, so spans are backdated with
// the measured duration.
type Tracing struct {
	tracer trace.Tracer
	filter func(op string) bool
}

// NewTracing creates an OpenTelemetry reporter.
func NewTracing(opts ...TracingOption) *Tracing {
	config := defaultTracingConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	return &Tracing{
		tracer: config.Provider.Tracer(config.TracerName),
		filter: config.Filter,
	}
}

func (t *Tracing) FieldBuilt(name string, d time.Duration) {
	t.record("signalgraph.field.build", d, attribute.String("signalgraph.field", name))
}

func (t *Tracing) Propagated(op string, d time.Duration) {
	if t.filter != nil && !t.filter(op) {
		return
	}
	t.record("signalgraph.propagate", d, attribute.String("signalgraph.op", op))
}

func (t *Tracing) SignalFailed(err error) {
	_, span := t.tracer.Start(context.Background(), "signalgraph.signal.failed",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("signalgraph.code", failureCode(err))),
	)
	defer span.End()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (t *Tracing) record(name string, d time.Duration, attrs ...attribute.KeyValue) {
	end := time.Now()
	_, span := t.tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(end.Add(-d)),
	)
	span.SetStatus(codes.Ok, "")
	span.End(trace.WithTimestamp(end))
}

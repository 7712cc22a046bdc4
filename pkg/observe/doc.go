// Package observe reports reactive engine activity to Prometheus,
// OpenTelemetry and slog.
//
// Each reporter implements reactive.Instrumentation. Install one or more
// of them engine-wide:
//
//	reg := prometheus.NewRegistry()
//	observe.Install(
//	    observe.NewMetrics(observe.WithRegistry(reg)),
//	    observe.NewTracing(observe.WithTracerName("signalgraph")),
//	    observe.NewLogging(logger),
//	)
//
// Reporters are called synchronously from the propagation path, so they
// only record and never block.
package observe

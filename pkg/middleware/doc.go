// Package middleware provides HTTP observability middleware for the
// signalgraph server.
//
// Both middlewares have the standard func(http.Handler) http.Handler shape
// and are installed through server.ServerConfig.Middleware.
//
// # Prometheus Metrics
//
// HTTPMetrics collects request metrics labelled by chi route pattern, so
// /api/rooms/1 and /api/rooms/2 share one series:
//   - signalgraph_http_requests_total: requests by route, method and status
//   - signalgraph_http_request_duration_seconds: request duration histogram
//   - signalgraph_http_in_flight: requests in progress, by api or stream
//
// A WebSocket stream is in flight for as long as it is open.
//
//	m := middleware.NewHTTPMetrics(middleware.WithRegistry(reg))
//	config.Middleware = append(config.Middleware, m.Handler)
//
// # OpenTelemetry
//
// Tracing starts a server span per request, continuing any trace context
// carried in the request headers. The span is named after the route
// pattern once routing has completed.
//
//	config.Middleware = append(config.Middleware, middleware.Tracing(
//	    middleware.WithTracerName("signalgraph"),
//	))
package middleware

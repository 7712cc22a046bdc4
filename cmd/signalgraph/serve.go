package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/vango-dev/signalgraph/internal/config"
	"github.com/vango-dev/signalgraph/pkg/middleware"
	"github.com/vango-dev/signalgraph/pkg/observe"
	"github.com/vango-dev/signalgraph/pkg/reactive"
	"github.com/vango-dev/signalgraph/pkg/server"
)

func serveCmd(logLevel *string) *cobra.Command {
	var (
		dir  string
		host string
		port int
		slow time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph over HTTP and WebSocket",
		Long: `Load signalgraph.json (or the defaults), build the graph and serve it.

Endpoints:
  GET  /api/{kind}/{id}           entity snapshot
  GET  /api/{kind}/{id}/{field}   current value of a field
  PUT  /api/rooms/{id}            update room dimensions
  PUT  /api/windows/{id}          update window dimensions
  POST /api/{kind}                create an entity
  GET  /ws/{kind}/{id}/{field}    stream settled values

Examples:
  signalgraph serve
  signalgraph serve --port 9000 --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(dir)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			level, err := resolveLevel(*logLevel, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, newLogger(os.Stderr, level), slow)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory containing signalgraph.json")
	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on")
	cmd.Flags().DurationVar(&slow, "slow", 50*time.Millisecond, "Warn about propagation runs slower than this (0 disables)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger, slow time.Duration) error {
	slog.SetDefault(logger)

	sc := server.DefaultServerConfig()
	sc.Address = cfg.Address()

	ins := []reactive.Instrumentation{observe.NewLogging(logger).WithSlowThreshold(slow)}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		ins = append(ins, observe.NewMetrics(
			observe.WithNamespace(cfg.Metrics.Namespace),
			observe.WithRegistry(reg),
		))
		requests := middleware.NewHTTPMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(reg),
		)
		sc.Middleware = append(sc.Middleware, requests.Handler)
		sc.MetricsPath = cfg.Metrics.Path
		sc.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}
	if cfg.Tracing.Enabled {
		ins = append(ins, observe.NewTracing(observe.WithTracerName(cfg.Tracing.TracerName)))
		sc.Middleware = append(sc.Middleware, middleware.Tracing(middleware.WithTracerName(cfg.Tracing.TracerName)))
	}
	observe.Install(ins...)
	defer observe.Install()

	root := buildGraph(cfg.Graph)
	logger.Info("graph loaded",
		"houses", root.Houses().Len(),
		"rooms", root.Rooms().Len(),
		"windows", root.Windows().Len(),
	)

	return server.New(root, sc, logger).Run(ctx)
}

package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/signalgraph/pkg/building"
)

// Server exposes an entity graph over HTTP and WebSocket.
type Server struct {
	root *building.Root

	// Configuration
	config *ServerConfig

	// WebSocket upgrader
	upgrader websocket.Upgrader

	// mu serializes entity creation so id checks and appends are atomic.
	mu sync.Mutex

	// baseCtx is cancelled on shutdown to end open streams.
	baseCtx    context.Context
	cancelBase context.CancelFunc
	streams    sync.WaitGroup

	router     chi.Router
	httpServer *http.Server

	// Logger
	logger *slog.Logger
}

// New creates a Server for root. A nil config uses DefaultServerConfig;
// a nil logger uses slog.Default().
func New(root *building.Root, config *ServerConfig, logger *slog.Logger) *Server {
	config = config.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	s := &Server{
		root:   root,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		baseCtx:    baseCtx,
		cancelBase: cancel,
		logger:     logger.With("component", "server"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.config.Middleware...)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.logRequests)
		r.Get("/{kind}/{id}", s.handleSnapshot)
		r.Get("/{kind}/{id}/{field}", s.handleField)
		r.Put("/{kind}/{id}", s.handleUpdate)
		r.Post("/{kind}", s.handleCreate)
	})

	r.Get("/ws/{kind}/{id}/{field}", s.handleStream)

	if s.config.MetricsHandler != nil {
		r.Handle(s.config.MetricsPath, s.config.MetricsHandler)
	}
	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run with an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()
	s.logger.Info("server started", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		s.cancelBase()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	return s.Shutdown()
}

// Shutdown stops accepting requests, ends open streams and waits for
// in-flight requests up to ShutdownTimeout.
func (s *Server) Shutdown() error {
	s.logger.Info("server shutting down")
	s.cancelBase()

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.streams.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("streams still open after shutdown timeout")
	}
	return err
}

// logRequests logs each API request after it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shahar-caura/evadvisor/internal/advisor"
	"github.com/shahar-caura/evadvisor/web"
	"golang.org/x/sync/errgroup"
)

// Server is the advisor HTTP API server.
type Server struct {
	port            int
	version         string
	startTime       time.Time
	advisor         *advisor.Advisor
	defaultScenario string
	sseHub          *SSEHub
	logger          *slog.Logger
}

// New creates a Server with the given options.
func New(port int, version string, adv *advisor.Advisor, logger *slog.Logger) *Server {
	return &Server{
		port:      port,
		version:   version,
		startTime: time.Now(),
		advisor:   adv,
		sseHub:    NewSSEHub(logger),
		logger:    logger,
	}
}

// SetDefaultScenario names the scenario /api/ask falls back to.
func (s *Server) SetDefaultScenario(id string) { s.defaultScenario = id }

// Handler builds the full routing tree, wrapped in validation and logging.
func (s *Server) Handler() (http.Handler, error) {
	validator, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	h := &Handlers{
		Version:         s.version,
		StartTime:       s.startTime,
		Logger:          s.logger,
		Advisor:         s.advisor,
		DefaultScenario: s.defaultScenario,
	}
	h.Register(mux)

	// SSE lives outside the OpenAPI document: streaming responses are not described there.
	mux.Handle("GET /api/events", s.sseHub)
	mux.Handle("/", clientHandler(web.DistFS))

	return s.logRequests(validator.Middleware(mux)), nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Request contexts end with ctx so open SSE streams let shutdown finish.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	// Start listener so we can log the actual port.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.logger.Info("advisor server started", "addr", ln.Addr().String())

	g.Go(func() error {
		s.sseHub.Start(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

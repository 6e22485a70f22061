// Package server provides the HTTP viewer for matsteps. It serves a shell
// page with the eight matrix inputs and an embedded viewer showing the
// current worksheet document, plus a stateless JSON API.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/matsteps/internal/config"
	"github.com/agbru/matsteps/internal/document"
	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/logging"
	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/session"
)

// Server represents the HTTP server for the worksheet viewer.
type Server struct {
	session        *session.Session
	service        service.Service
	cfg            config.AppConfig
	docOpts        document.Options
	httpServer     *http.Server
	logger         logging.Logger
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer creates a new Server instance with the given configuration.
//
// Parameters:
//   - cfg: The application configuration containing server settings.
//   - opts: Optional configuration functions.
//
// Returns:
//   - *Server: A new server instance ready to be started.
func NewServer(cfg config.AppConfig, opts ...Option) *Server {
	docOpts := document.DefaultOptions()
	if cfg.MathJaxURL != "" {
		docOpts.MathJaxURL = cfg.MathJaxURL
	}

	timeouts := DefaultServerTimeouts()
	if cfg.ShutdownTimeout > 0 {
		timeouts.ShutdownTimeout = cfg.ShutdownTimeout
	}

	s := &Server{
		cfg:            cfg,
		docOpts:        docOpts,
		logger:         logging.NewDefaultLogger(),
		securityConfig: DefaultSecurityConfig(docOpts.MathJaxURL),
		metrics:        NewMetrics(),
		timeouts:       timeouts,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewWorksheetService(s.securityConfig.MaxFieldLength)
	}
	if s.session == nil {
		s.session = session.New(cfg.Mode(),
			session.WithService(s.service),
			session.WithDocumentOptions(s.docOpts),
			session.WithLogger(s.logger),
		)
	}
	if s.rateLimiter == nil {
		rlCfg := DefaultRateLimiterConfig()
		if cfg.RateLimit > 0 {
			rlCfg.RequestsPerMinute = cfg.RateLimit
		}
		s.rateLimiter = NewRateLimiter(rlCfg)
	}

	s.httpServer = &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// Addr returns the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, s.cfg.Port)
}

// URL returns the address of the shell page.
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/"
}

// Session returns the viewer state shared by the page handlers.
func (s *Server) Session() *session.Session {
	return s.session
}

// Handler builds the routing table with every route wrapped in the
// middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.wrapWithMiddleware(s.handleIndex))
	mux.HandleFunc("/calculate", s.wrapWithMiddleware(s.handleCalculate))
	mux.HandleFunc("/theme", s.wrapWithMiddleware(s.handleTheme))
	mux.HandleFunc("/view", s.wrapWithMiddleware(s.handleView))
	mux.HandleFunc("/api/steps", s.wrapWithMiddleware(s.handleSteps))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))
	return mux
}

// wrapWithMiddleware applies the middleware chain to a handler.
// Order: Security -> RateLimit -> Logging -> Metrics -> Handler
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	h := s.metricsMiddleware(handler)
	h = s.loggingMiddleware(h)
	h = RateLimitMiddleware(s.rateLimiter, h)
	h = SecurityMiddleware(s.securityConfig, h)
	return h
}

// Start serves until ctx is canceled, then shuts down gracefully within
// the configured timeout. A clean shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server listening", logging.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.NewServerError("listen failed", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server", logging.String("timeout", s.timeouts.ShutdownTimeout.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return apperrors.NewServerError("graceful shutdown failed", err)
		}
		s.logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

// Shutdown stops the server immediately within ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.Stop()
	return s.httpServer.Shutdown(ctx)
}

// requestContext bounds a handler's work by the configured request timeout.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.timeouts.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meysamhadeli/dirsnap/config"
	"github.com/meysamhadeli/dirsnap/snapshot/contracts"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Server exposes the snapshot endpoint, health and metrics.
type Server struct {
	config   config.ServerConfig
	router   *gin.Engine
	handlers *Handlers
	metrics  *Metrics
	logger   *zap.Logger
}

// NewServer builds the router. Call Run to start listening.
func NewServer(cfg config.ServerConfig, scanner contracts.IScanner, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("server")

	metrics := NewMetrics()
	handlers := NewHandlers(scanner, metrics, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	router.GET(cfg.Route, handlers.HandleSnapshot)
	router.GET("/healthz", handlers.HandleHealth)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return &Server{
		config:   cfg,
		router:   router,
		handlers: handlers,
		metrics:  metrics,
		logger:   logger,
	}
}

// Handler returns the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", s.config.Addr), zap.String("route", s.config.Route))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.logger.Info("shutting down", zap.Duration("timeout", timeout))
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// requestLogger writes one structured line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

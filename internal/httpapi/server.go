// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httpapi is the HTTP binding of the invocation boundary. Routes
// translate requests into Introspect, Invoke, and InvokeBatch calls and
// envelopes into responses; no function has a route of its own.
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/research-analytics/internal/errors"
	"github.com/pdiddy/research-analytics/internal/logger"
	"github.com/pdiddy/research-analytics/internal/registry"
	"github.com/pdiddy/research-analytics/pkg/types"
)

// RequestIDHeader carries the per-request id, echoed back on responses.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server serves the boundary over HTTP.
type Server struct {
	reg    *registry.Registry
	cfg    types.ServerConfig
	batch  types.BatchConfig
	router *gin.Engine
}

// New builds the router for reg.
func New(reg *registry.Registry, cfg types.ServerConfig, batch types.BatchConfig) *Server {
	s := &Server{reg: reg, cfg: cfg, batch: batch}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(limitBody(maxBodyBytes))
	api.GET("/functions", s.functions)
	api.POST("/invoke", s.invoke)
	api.POST("/invoke/batch", s.invokeBatch)
	api.POST("/chat", s.chat)

	s.router = r
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on the configured port until ctx is cancelled, then shuts
// down gracefully within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return errors.Wrapf(err, "listening on port %d", s.cfg.Port)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Logger.Infow("http server listening",
			"addr", ln.Addr().String(),
			"functions", s.reg.Len())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serving http")
	case <-ctx.Done():
	}

	logger.Logger.Infow("http server shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down http server")
	}
	return nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Logger.Debugw("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString("request_id"))
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

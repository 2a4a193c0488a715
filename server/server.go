// SPDX-License-Identifier: MIT

// Package server exposes design spaces over HTTP.
//
// Routes, all under /v1 except the operational ones:
//
//	POST   /designspaces                              register a model (YAML or JSON)
//	GET    /designspaces                              list stored models
//	GET    /designspaces/:id                          equations, variables, signature
//	DELETE /designspaces/:id
//	GET    /designspaces/:id/cases/:number            case summary
//	GET    /designspaces/:id/valid                    valid case numbers, optionally in a slice
//	POST   /designspaces/:id/cases/:number/steady-state
//	POST   /designspaces/:id/plot                     scene JSON
//	GET    /metrics
//	GET    /healthz
//
// Models are persisted in a store.Store and parsed lazily after a restart.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/dstoolbox/store"
)

const defaultShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Logger          *slog.Logger
	ShutdownTimeout time.Duration
}

// Option mutates Options.
type Option func(*Options)

// WithLogger sets the base logger; request logs carry a request_id.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithShutdownTimeout bounds the graceful shutdown of Run.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *Options) { o.ShutdownTimeout = d }
}

// Server is the HTTP front end of a store of design spaces.
type Server struct {
	engine  *gin.Engine
	logger  *slog.Logger
	timeout time.Duration
}

// New builds the router over st. The caller keeps ownership of st.
func New(st *store.Store, opts ...Option) *Server {
	o := Options{ShutdownTimeout: defaultShutdownTimeout}
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	h := &handlers{reg: newRegistry(st, o.Logger)}
	r := gin.New()
	r.Use(gin.Recovery(), requestContext(o.Logger), observe())
	r.GET("/healthz", handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/designspaces", h.handleCreate)
		v1.GET("/designspaces", h.handleList)
		v1.GET("/designspaces/:id", h.handleGet)
		v1.DELETE("/designspaces/:id", h.handleDelete)
		v1.GET("/designspaces/:id/cases/:number", h.handleCase)
		v1.POST("/designspaces/:id/cases/:number/steady-state", h.handleSteadyState)
		v1.GET("/designspaces/:id/valid", h.handleValid)
		v1.POST("/designspaces/:id/plot", h.handlePlot)
	}
	return &Server{engine: r, logger: o.Logger, timeout: o.ShutdownTimeout}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Package httputil wraps http.Server with a start/stop interface used by
// long-running commands for their auxiliary endpoints.
package httputil

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Server wraps an http.Server with a graceful shutdown timeout.
type Server struct {
	shutdownTimeout time.Duration

	srv *http.Server
}

type cfg struct {
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*cfg)

// WithShutdownTimeout sets how long Shutdown waits for active connections to
// finish. Default is 15 seconds. Must be positive.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *cfg) {
		c.shutdownTimeout = d
	}
}

// New creates a Server listening on the given TCP address. Panics on an
// empty address, a nil handler or a non-positive shutdown timeout: all of
// these are programming errors.
func New(addr string, handler http.Handler, opts ...Option) *Server {
	if addr == "" {
		panic("empty server address")
	}
	if handler == nil {
		panic("nil server handler")
	}

	c := cfg{
		shutdownTimeout: 15 * time.Second,
	}

	for i := range opts {
		opts[i](&c)
	}

	if c.shutdownTimeout <= 0 {
		panic("non-positive shutdown timeout")
	}

	return &Server{
		shutdownTimeout: c.shutdownTimeout,
		srv: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

// Serve listens and serves the wrapped server. Returns any error returned by
// it except http.ErrServerClosed, so a graceful Shutdown reads as success.
func (x *Server) Serve() error {
	err := x.srv.ListenAndServe()

	if err != nil && errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	return err
}

// Shutdown gracefully shuts the server down, waiting up to the configured
// timeout. The server may not be reused afterwards.
func (x *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), x.shutdownTimeout)
	defer cancel()

	return x.srv.Shutdown(ctx)
}

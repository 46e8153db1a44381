package rpcserver

import (
	"context"
	"net/http"
)

// Server represents the RPC server.
type Server struct {
	httpServer *http.Server
}

// New creates a new RPC server bound to addr, serving handler.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

// ListenAndServe starts the server. It blocks until the server stops
// or fails; http.ErrServerClosed is returned on a clean Shutdown.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts the server down, letting in-flight
// requests finish within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Server wraps an *http.Server to provide start/shutdown lifecycle.
type Server struct {
	mu         sync.Mutex
	httpServer *http.Server
}

const (
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	// uploads are read within the handler, so the write timeout covers them
	writeTimeout = 60 * time.Second
	idleTimeout  = 60 * time.Second
)

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// Run listens on the given port and serves handler until Shutdown.
func (s *Server) Run(port int, handler http.Handler) error {
	addr := ":" + strconv.Itoa(port)

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(l, handler)
}

// Serve serves handler on an already opened listener.
func (s *Server) Serve(l net.Listener, handler http.Handler) error {
	httpServer := newHTTPServer(l.Addr().String(), handler)

	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	return httpServer.Serve(l)
}

// Shutdown gracefully stops the server, allowing in-flight requests to complete.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}
	return httpServer.Shutdown(ctx)
}

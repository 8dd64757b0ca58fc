package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Brownie44l1/http-server/internal/request"
	"github.com/Brownie44l1/http-server/internal/response"
)

// ErrServerClosed is returned by Serve after Close or Shutdown.
var ErrServerClosed = errors.New("server closed")

// Handler turns one parsed request into its response.
type Handler interface {
	Route(req *request.Request) *response.Response
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(req *request.Request) *response.Response

func (f HandlerFunc) Route(req *request.Request) *response.Response {
	return f(req)
}

// Config holds everything the process is configured with. It is built
// once at startup.
type Config struct {
	Addr            string
	Directory       string
	RejectTraversal bool

	// Zero disables the deadline.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	MaxHeaderBytes     int
	MaxRequestBodySize int64
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Addr:               "127.0.0.1:4221",
		Directory:          ".",
		MaxHeaderBytes:     1 << 20,
		MaxRequestBodySize: 10 << 20,
	}
}

// Server accepts connections and answers exactly one request on each.
type Server struct {
	config  Config
	handler Handler
	Logger  Logger

	mu       sync.Mutex
	listener net.Listener
	closed   atomic.Bool
	conns    sync.WaitGroup
}

// New creates a server. Logger defaults to a stdout DefaultLogger and can
// be replaced before serving.
func New(config Config, handler Handler) *Server {
	return &Server{
		config:  config,
		handler: handler,
		Logger:  NewDefaultLogger(nil, LevelInfo),
	}
}

// ListenAndServe listens on the configured address and serves until the
// server is closed.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln, handling each in its own goroutine.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.listener = ln
	s.mu.Unlock()

	s.Logger.Info("listening", Field{"addr", ln.Addr().String()})

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closed.Load() {
				return ErrServerClosed
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.Logger.Warn("accept timeout", Field{"error", err})
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.Logger.Error("error accepting connection", Field{"error", err})
			continue
		}

		// Add under mu so it cannot race a Shutdown that is already waiting.
		s.mu.Lock()
		if s.closed.Load() {
			s.mu.Unlock()
			conn.Close()
			return ErrServerClosed
		}
		s.conns.Add(1)
		s.mu.Unlock()

		go s.serveConn(conn)
	}
}

// Addr returns the listening address, or nil before Serve is called.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops accepting connections. In-flight connections are left to
// finish on their own.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed.Store(true)
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// Shutdown closes the listener and waits for in-flight connections until
// ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

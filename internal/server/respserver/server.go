package respserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/keevadb/keeva-go/internal/command"
	"github.com/keevadb/keeva-go/internal/store"
	"github.com/keevadb/keeva-go/internal/telemetry/metric"
)

// Config holds the server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// RateLimit is the maximum number of commands per second per client
	// IP. Set to 0 to disable rate limiting.
	RateLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:      "127.0.0.1:6379",
		RateLimit: 0,
	}
}

// Server accepts RESP connections and serves them against a shared store.
type Server struct {
	cfg     *Config
	st      *store.Store
	reg     *command.Registry
	logger  *slog.Logger
	metrics *metric.Registry

	ln      net.Listener
	running atomic.Bool
	wg      sync.WaitGroup

	connMu sync.Mutex
	conns  map[net.Conn]struct{}

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

// New creates a server. metrics may be nil to disable instrumentation.
func New(cfg *Config, st *store.Store, reg *command.Registry, logger *slog.Logger, metrics *metric.Registry) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:      cfg,
		st:       st,
		reg:      reg,
		logger:   logger,
		metrics:  metrics,
		conns:    make(map[net.Conn]struct{}),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Start binds the listener and begins accepting connections. It returns
// once the listener is bound; connections are served on background
// goroutines.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.running.Store(true)
	s.logger.Info("server listening", "address", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx); err != nil && s.running.Load() {
			s.logger.Error("accept loop error", "error", err)
		}
	}()

	return nil
}

// Addr returns the bound listen address, or nil before Start. Useful
// when the configured address requested an ephemeral port.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown closes the listener and all open connections, then waits for
// connection goroutines to finish or the context to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var firstErr error
	if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			firstErr = err
		}
	}

	s.connMu.Lock()
	for c := range s.conns {
		_ = c.Close()
	}
	s.connMu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}

		s.trackConn(c, true)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.trackConn(c, false)
			s.serveConn(c)
		}()
	}
}

func (s *Server) serveConn(c net.Conn) {
	defer c.Close()

	connID := ulid.Make().String()
	logger := s.logger.With("conn_id", connID, "remote", c.RemoteAddr().String())

	if s.metrics != nil {
		s.metrics.ConnectionsTotal.Inc()
		s.metrics.ConnectionsActive.Inc()
		defer s.metrics.ConnectionsActive.Dec()
	}

	logger.Debug("connection accepted")

	h := NewConnHandler(c)
	h.logger = logger
	h.metrics = s.metrics
	h.limiter = s.limiterFor(c.RemoteAddr())
	h.Run(s.st, s.reg)

	logger.Debug("connection closed")
}

func (s *Server) trackConn(c net.Conn, add bool) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if add {
		s.conns[c] = struct{}{}
	} else {
		delete(s.conns, c)
	}
}

// limiterFor returns the rate limiter for the connection's IP, creating
// one on first sight. Limiters are shared across connections from the
// same host.
func (s *Server) limiterFor(addr net.Addr) *rate.Limiter {
	if s.cfg.RateLimit <= 0 {
		return nil
	}

	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		host = addr.String()
	}

	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()

	l, ok := s.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.RateLimit)
		s.limiters[host] = l
	}
	return l
}

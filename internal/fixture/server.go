package fixture

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server serves one fixture over HTTP.
type Server struct {
	logger *zap.Logger
	server *http.Server
}

// NewServer serves the named fixture on addr. A positive delay holds every
// recommendation for that long before answering, to make the busy state
// visible in demos.
func NewServer(addr, name string, delay time.Duration, logger *zap.Logger) (*Server, error) {
	if addr == "" {
		return nil, errors.New("new fixture server: empty addr")
	}
	if delay < 0 {
		return nil, errors.New("new fixture server: delay must be >= 0")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	body, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("new fixture server: %w", err)
	}

	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:              addr,
			Handler:           Delayed(Handler(body, logger), delay),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *Server) Addr() string {
	return s.server.Addr
}

// Start blocks until the server stops. A server stopped by Shutdown
// returns nil.
func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("graceful shutdown timed out; forcing connection close")
		if closeErr := s.server.Close(); closeErr != nil {
			return fmt.Errorf("shutdown timeout and forced close failed: %w", errors.Join(err, closeErr))
		}
		return nil
	}
	return err
}

// Delayed holds recommendation requests for d. Health checks pass through.
func Delayed(next http.Handler, d time.Duration) http.Handler {
	if d <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-r.Context().Done():
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

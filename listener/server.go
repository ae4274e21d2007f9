package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
)

// Server is one named listener, such as the status endpoint. It binds in Start so
// that a busy port fails application start instead of a background goroutine, and
// Stop drains in-flight requests before returning.
type Server struct {
	name       string
	server     *http.Server
	listener   net.Listener
	logger     *slog.Logger
	onServeErr func()
	done       chan struct{}
}

// NewServer applies cfg defaults, validates it and prepares the server. A nil logger
// means slog.Default. onServeErr, if non-nil, runs when Serve fails after a
// successful Start.
func NewServer(name string, handler http.Handler, cfg Config, logger *slog.Logger, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		name: name,
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		logger:     logger.With(slog.String("listener", name)),
		onServeErr: onServeErr,
	}, nil
}

// Addr is the bound address once started (useful with port 0), else the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.server.Addr
}

// Start binds the address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	ln, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		s.logger.Error("bind failed", slog.String("address", s.server.Addr), slog.String("error", err.Error()))

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = ln
	s.done = make(chan struct{})

	s.logger.Info("listening", slog.String("address", s.Addr()))

	go s.serve()

	return nil
}

func (s *Server) serve() {
	defer close(s.done)

	err := s.server.Serve(s.listener)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}

	s.logger.Error("serve failed", slog.String("error", err.Error()))

	if s.onServeErr != nil {
		s.onServeErr()
	}
}

// Stop shuts the server down and waits for the serve loop to exit or ctx to end.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down")

	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	if s.done == nil {
		return nil
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrShutdownFailed, ctx.Err())
	}
}

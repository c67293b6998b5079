package http

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/autopeer-io/voltura/internal/configurator/core/service"
	"github.com/autopeer-io/voltura/pkg/log"
	"github.com/autopeer-io/voltura/pkg/options"
)

type Server struct {
	server  *http.Server
	options *options.HttpOptions
}

func NewServer(opts *options.HttpOptions, svc *service.Service) *Server {
	return &Server{
		server: &http.Server{
			Addr:         opts.Addr,
			Handler:      NewHandler(svc, log.WithName("http"), opts.Timeout),
			ReadTimeout:  opts.Timeout,
			WriteTimeout: opts.Timeout,
		},
		options: opts,
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.Info("Starting HTTP Server", "addr", s.server.Addr)

	ln, err := net.Listen(s.options.Network, s.server.Addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down HTTP Server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.options.ShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	}
}

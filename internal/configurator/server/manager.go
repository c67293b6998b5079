package server

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/autopeer-io/voltura/internal/configurator/core/service"
	"github.com/autopeer-io/voltura/internal/configurator/server/http"
	"github.com/autopeer-io/voltura/pkg/log"
	"github.com/autopeer-io/voltura/pkg/mqtt"
)

const disconnectTimeout = 5 * time.Second

// Server defines the common interface for all long-running components.
type Server interface {
	Start(ctx context.Context) error
}

// Manager manages the lifecycle of all servers.
type Manager struct {
	servers []Server
}

// NewManager creates a new server manager and initializes all sub-servers.
func NewManager(cfg *Config, svc *service.Service) *Manager {
	var servers []Server

	if cfg.MqttClient != nil {
		servers = append(servers, &mqttConnection{client: cfg.MqttClient})
	}

	servers = append(servers, http.NewServer(cfg.HttpOptions, svc))

	return &Manager{
		servers: servers,
	}
}

// NewManagerFor runs the given servers. Used by tests.
func NewManagerFor(servers ...Server) *Manager {
	return &Manager{servers: servers}
}

// Start launches all servers in parallel and waits for termination. The
// first failure cancels the others.
func (m *Manager) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, srv := range m.servers {
		g.Go(func() error {
			return srv.Start(ctx)
		})
	}

	log.Info("All servers starting...", "count", len(m.servers))
	return g.Wait()
}

// mqttConnection keeps the notifier client connected for the lifetime of
// ctx. Publishing before the connection is up fails and is logged by the
// session.
type mqttConnection struct {
	client mqtt.Client
}

func (c *mqttConnection) Start(ctx context.Context) error {
	if err := c.client.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	c.client.Disconnect(shutdownCtx)
	return nil
}

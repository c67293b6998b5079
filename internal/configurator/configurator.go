// Package configurator wires the vehicle configurator: catalog source,
// durable store, notifier, core service and servers.
package configurator

import (
	"context"

	"github.com/autopeer-io/voltura/internal/configurator/core/service"
	"github.com/autopeer-io/voltura/internal/configurator/server"
	"github.com/autopeer-io/voltura/pkg/log"
)

type ConfiguratorServer struct {
	config        *Config
	service       *service.Service
	serverManager *server.Manager
}

// Service exposes the assembled core.
func (a *ConfiguratorServer) Service() *service.Service {
	return a.service
}

// Run loads the catalog once and serves until ctx ends. A failed load is
// logged and the server keeps running with an empty catalog; /readyz
// reports it.
func (a *ConfiguratorServer) Run(ctx context.Context) error {
	log.Info("Starting Voltura Configurator...")
	defer a.service.Close()

	if err := a.config.LoadCatalog(ctx, a.service.Catalog()); err != nil {
		log.Error(err, "Catalog unavailable, continuing with an empty catalog")
	}

	return a.serverManager.Start(ctx)
}

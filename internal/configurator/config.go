package configurator

import (
	"context"
	"fmt"

	"github.com/autopeer-io/voltura/internal/configurator/core"
	"github.com/autopeer-io/voltura/internal/configurator/core/catalog"
	"github.com/autopeer-io/voltura/internal/configurator/core/gateway"
	"github.com/autopeer-io/voltura/internal/configurator/core/service"
	"github.com/autopeer-io/voltura/internal/configurator/notifier"
	"github.com/autopeer-io/voltura/internal/configurator/server"
	"github.com/autopeer-io/voltura/internal/configurator/source"
	"github.com/autopeer-io/voltura/internal/configurator/storage"
	"github.com/autopeer-io/voltura/pkg/log"
	pkgmqtt "github.com/autopeer-io/voltura/pkg/mqtt"
	"github.com/autopeer-io/voltura/pkg/options"
)

type Config struct {
	CatalogOptions *options.CatalogOptions
	StoreOptions   *options.StoreOptions
	HttpOptions    *options.HttpOptions
	MqttOptions    *options.MqttOptions
	S3Options      *options.S3Options
}

// NewCatalogSource builds the adapter selected by catalog.source.
func (cfg *Config) NewCatalogSource() (core.CatalogSource, error) {
	switch cfg.CatalogOptions.Source {
	case options.CatalogSourceFile:
		return source.NewFile(cfg.CatalogOptions.Path), nil
	case options.CatalogSourceHTTP:
		return source.NewHTTP(cfg.CatalogOptions.URL, cfg.CatalogOptions.Timeout), nil
	case options.CatalogSourceS3:
		client, err := storage.NewMinIOClient(cfg.S3Options)
		if err != nil {
			return nil, err
		}
		return source.NewS3(client, cfg.S3Options.BucketName, cfg.CatalogOptions.Object), nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogOptions.Source)
	}
}

// NewStore builds the durable store selected by store.backend.
func (cfg *Config) NewStore(ctx context.Context) (core.KeyValueStore, error) {
	switch cfg.StoreOptions.Backend {
	case options.StoreBackendMemory:
		return storage.NewMemory(), nil
	case options.StoreBackendFile:
		return storage.NewFile(cfg.StoreOptions.Dir)
	case options.StoreBackendS3:
		client, err := storage.NewMinIOClient(cfg.S3Options)
		if err != nil {
			return nil, err
		}
		s := storage.NewMinIO(client, cfg.S3Options.BucketName, cfg.StoreOptions.Prefix)
		if err := s.CheckBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to object storage: %w", err)
		}
		log.Info("Object Storage Connected", "bucket", cfg.S3Options.BucketName)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreOptions.Backend)
	}
}

// LoadCatalog performs the single catalog load, bounded by catalog.timeout.
func (cfg *Config) LoadCatalog(ctx context.Context, store *catalog.Store) error {
	src, err := cfg.NewCatalogSource()
	if err != nil {
		return err
	}
	if cfg.CatalogOptions.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.CatalogOptions.Timeout)
		defer cancel()
	}
	return store.Load(ctx, src)
}

// NewService assembles the core around an unloaded catalog.
func (cfg *Config) NewService(ctx context.Context, opts ...service.Option) (*service.Service, error) {
	kv, err := cfg.NewStore(ctx)
	if err != nil {
		return nil, err
	}
	gw := gateway.New(kv, gateway.WithKey(cfg.StoreOptions.Key))
	return service.New(catalog.NewStore(log.Std()), gw, opts...), nil
}

func (cfg *Config) NewConfiguratorServer(ctx context.Context) (*ConfiguratorServer, error) {
	var (
		svcOpts    []service.Option
		mqttClient pkgmqtt.Client
	)
	if cfg.MqttOptions.Enabled {
		client, err := InitializeMQTTClient(cfg.MqttOptions)
		if err != nil {
			return nil, fmt.Errorf("failed to init notifier: %w", err)
		}
		mqttClient = client
		svcOpts = append(svcOpts, service.WithNotifier(notifier.NewMQTTNotifier(client, cfg.MqttOptions.TopicRoot)))
	}

	svc, err := cfg.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, err
	}

	srvManager := server.NewManager(&server.Config{
		HttpOptions: cfg.HttpOptions,
		MqttClient:  mqttClient,
	}, svc)

	return &ConfiguratorServer{
		config:        cfg,
		service:       svc,
		serverManager: srvManager,
	}, nil
}

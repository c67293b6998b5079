package app

import (
	"fmt"

	"github.com/spf13/cobra"
	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/voltura/cmd/voltura/app/options"
	"github.com/autopeer-io/voltura/pkg/app"
)

const (
	commandName = "voltura"
	commandDesc = `Voltura serves the electric vehicle catalog and configurator.

It loads the vehicle catalog once at start-up, lets visitors filter it,
configure a model (version, color and add-ons) with a live price, and
appends every saved configuration to a durable selections log.`
)

func NewApp() *app.App {
	opts := options.NewConfiguratorOptions()
	application := app.NewApp(
		commandName,
		"Launch the Voltura configurator",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
		app.WithSubCommands(
			newServeCommand(opts),
			newListCommand(opts),
			newConfigureCommand(opts),
			newHistoryCommand(opts),
		),
	)
	return application
}

func run(opts *options.ConfiguratorOptions) app.RunFunc {
	return func() error {
		ctx := genericapiserver.SetupSignalContext()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		server, err := cfg.NewConfiguratorServer(ctx)
		if err != nil {
			return fmt.Errorf("failed to create configurator server: %w", err)
		}

		return server.Run(ctx)
	}
}

func newServeCommand(opts *options.ConfiguratorOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the configurator HTTP API (default)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return run(opts)()
		},
	}
}

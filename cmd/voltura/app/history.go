package app

import (
	"context"
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/autopeer-io/voltura/cmd/voltura/app/options"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/internal/configurator/core/service"
	"github.com/autopeer-io/voltura/pkg/price"
)

func newHistoryCommand(opts *options.ConfiguratorOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the saved configurations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.Config()
			if err != nil {
				return err
			}
			svc, err := cfg.NewService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Close()
			records, err := svc.Records(cmd.Context())
			if err != nil {
				return err
			}
			printHistory(cmd, records)
			return nil
		},
	}
}

func printHistory(cmd *cobra.Command, records []model.SavedConfigurationRecord) {
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved configurations.")
		return
	}
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("SAVED", "SOURCE", "MODEL", "VERSION", "COLOR", "ADD-ONS", "PRICE")
	for _, r := range records {
		table.AddRow(r.Timestamp, r.Source, r.ModelName, refString(r.Version), refString(r.Color),
			addonsString(r.Addons), price.Format(r.Price))
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
}

// loadService assembles the core and loads the catalog. Unlike the server,
// one-shot commands fail when the catalog cannot be loaded. Callers close
// the returned service.
func loadService(ctx context.Context, opts *options.ConfiguratorOptions) (*service.Service, error) {
	cfg, err := opts.Config()
	if err != nil {
		return nil, err
	}
	svc, err := cfg.NewService(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.LoadCatalog(ctx, svc.Catalog()); err != nil {
		svc.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return svc, nil
}

package app

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/autopeer-io/voltura/cmd/voltura/app/options"
	"github.com/autopeer-io/voltura/internal/configurator/core/filter"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/internal/configurator/core/service"
)

func newListCommand(opts *options.ConfiguratorOptions) *cobra.Command {
	var in filter.Input

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog, optionally filtered",
		Example: `  voltura list --body-type suv --price-min 50000 --price-max 90000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := loadService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer svc.Close()
			printVehicles(cmd, svc.Filter(in))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&in.BodyType, "body-type", "", "Only show this body type (case-insensitive).")
	fs.StringVar(&in.Drivetrain, "drivetrain", "", "Only show this drivetrain (case-insensitive).")
	fs.StringVar(&in.PriceMin, "price-min", "", "Lowest base price.")
	fs.StringVar(&in.PriceMax, "price-max", "", "Highest base price.")
	return cmd
}

func printVehicles(cmd *cobra.Command, vehicles []model.Vehicle) {
	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("ID", "NAME", "BODY", "META", "PRICE")
	for _, v := range vehicles {
		card := service.NewCard(v)
		table.AddRow(card.ID, card.Name, card.BodyType, card.Meta, card.PriceLabel)
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
}

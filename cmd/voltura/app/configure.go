package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/autopeer-io/voltura/cmd/voltura/app/options"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/internal/configurator/core/service"
	"github.com/autopeer-io/voltura/pkg/price"
)

type configureOptions struct {
	ModelID   string
	VersionID string
	ColorID   string
	Addons    []string
	Source    string
}

func newConfigureCommand(opts *options.ConfiguratorOptions) *cobra.Command {
	o := &configureOptions{Source: string(model.SourceSalesPoints)}

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure one vehicle and save it to the selections log",
		Example: `  voltura configure --model m1 --version v2 --color c2 --addon a1 --source dealer`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := model.ParseSource(o.Source)
			if err != nil {
				return err
			}
			svc, err := loadService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer svc.Close()
			rec, err := o.run(cmd.Context(), svc.NewSession(), source)
			if err != nil {
				return err
			}
			printRecord(cmd, rec)
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&o.ModelID, "model", o.ModelID, "Vehicle id to configure.")
	fs.StringVar(&o.VersionID, "version", o.VersionID, "Version id; the first version when empty.")
	fs.StringVar(&o.ColorID, "color", o.ColorID, "Color id; the first color when empty.")
	fs.StringSliceVar(&o.Addons, "addon", o.Addons, "Add-on id to toggle on. Repeatable.")
	fs.StringVar(&o.Source, "source", o.Source, "Where the configuration comes from: 'sales-points' or 'dealer'.")
	_ = cmd.MarkFlagRequired("model")
	return cmd
}

func (o *configureOptions) run(ctx context.Context, sess *service.Session, source model.Source) (model.SavedConfigurationRecord, error) {
	if _, err := sess.Open(ctx, o.ModelID); err != nil {
		return model.SavedConfigurationRecord{}, err
	}
	if o.VersionID != "" {
		if _, err := sess.SelectVersion(o.VersionID); err != nil {
			return model.SavedConfigurationRecord{}, err
		}
	}
	if o.ColorID != "" {
		if _, err := sess.SelectColor(o.ColorID); err != nil {
			return model.SavedConfigurationRecord{}, err
		}
	}
	for _, id := range o.Addons {
		if _, err := sess.ToggleAddon(id); err != nil {
			return model.SavedConfigurationRecord{}, err
		}
	}
	return sess.Save(ctx, source)
}

func refString(r model.Ref) string {
	if r.IsNull() {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", *r.Label, *r.ID)
}

func addonsString(addons []model.Option) string {
	if len(addons) == 0 {
		return "-"
	}
	labels := make([]string, 0, len(addons))
	for _, a := range addons {
		labels = append(labels, a.Label)
	}
	return strings.Join(labels, ", ")
}

func printRecord(cmd *cobra.Command, rec model.SavedConfigurationRecord) {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("Saved:", rec.Timestamp)
	table.AddRow("Source:", rec.Source)
	table.AddRow("Model:", fmt.Sprintf("%s (%s)", rec.ModelName, rec.ModelID))
	table.AddRow("Version:", refString(rec.Version))
	table.AddRow("Color:", refString(rec.Color))
	table.AddRow("Add-ons:", addonsString(rec.Addons))
	table.AddRow("Price:", price.Format(rec.Price))
	fmt.Fprintln(cmd.OutOrStdout(), table)
}

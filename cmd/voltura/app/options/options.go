package options

import (
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/autopeer-io/voltura/internal/configurator"
	"github.com/autopeer-io/voltura/pkg/app"
	"github.com/autopeer-io/voltura/pkg/log"
	"github.com/autopeer-io/voltura/pkg/options"
)

type ConfiguratorOptions struct {
	CatalogOptions *options.CatalogOptions `json:"catalog" mapstructure:"catalog"`
	StoreOptions   *options.StoreOptions   `json:"store" mapstructure:"store"`
	HttpOptions    *options.HttpOptions    `json:"http" mapstructure:"http"`
	MqttOptions    *options.MqttOptions    `json:"mqtt" mapstructure:"mqtt"`
	S3Options      *options.S3Options      `json:"s3" mapstructure:"s3"`
	Log            *log.Options            `json:"log" mapstructure:"log"`
}

var (
	_ app.NamedFlagSetOptions = (*ConfiguratorOptions)(nil)
	_ app.LogOptionsProvider  = (*ConfiguratorOptions)(nil)
)

func NewConfiguratorOptions() *ConfiguratorOptions {
	return &ConfiguratorOptions{
		CatalogOptions: options.NewCatalogOptions(),
		StoreOptions:   options.NewStoreOptions(),
		HttpOptions:    options.NewHttpOptions(),
		MqttOptions:    options.NewMqttOptions(),
		S3Options:      options.NewS3Options(),
		Log:            log.NewOptions(),
	}
}

func (o *ConfiguratorOptions) Flags() cliflag.NamedFlagSets {
	fss := cliflag.NamedFlagSets{}
	o.CatalogOptions.AddFlags(fss.FlagSet("catalog"))
	o.StoreOptions.AddFlags(fss.FlagSet("store"))
	o.HttpOptions.AddFlags(fss.FlagSet("http"))
	o.MqttOptions.AddFlags(fss.FlagSet("mqtt"))
	o.S3Options.AddFlags(fss.FlagSet("s3"))
	o.Log.AddFlags(fss.FlagSet("log"))
	return fss
}

func (o *ConfiguratorOptions) Complete() error {
	return nil
}

func (o *ConfiguratorOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.CatalogOptions.Validate()...)
	errs = append(errs, o.StoreOptions.Validate()...)
	errs = append(errs, o.HttpOptions.Validate()...)
	errs = append(errs, o.MqttOptions.Validate()...)
	if o.usesS3() {
		errs = append(errs, o.S3Options.Validate()...)
	}
	errs = append(errs, o.Log.Validate()...)
	return utilerrors.NewAggregate(errs)
}

func (o *ConfiguratorOptions) usesS3() bool {
	return o.CatalogOptions.Source == options.CatalogSourceS3 || o.StoreOptions.Backend == options.StoreBackendS3
}

func (o *ConfiguratorOptions) LogOptions() *log.Options {
	return o.Log
}

func (o *ConfiguratorOptions) Config() (*configurator.Config, error) {
	return &configurator.Config{
		CatalogOptions: o.CatalogOptions,
		StoreOptions:   o.StoreOptions,
		HttpOptions:    o.HttpOptions,
		MqttOptions:    o.MqttOptions,
		S3Options:      o.S3Options,
	}, nil
}

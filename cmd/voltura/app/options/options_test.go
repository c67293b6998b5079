package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/voltura/pkg/options"
)

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, NewConfiguratorOptions().Validate())
}

func TestS3OnlyValidatedWhenUsed(t *testing.T) {
	o := NewConfiguratorOptions()
	o.S3Options.BucketName = ""
	assert.NoError(t, o.Validate())

	o.StoreOptions.Backend = options.StoreBackendS3
	assert.ErrorContains(t, o.Validate(), "s3.bucket-name")
}

func TestValidateAggregates(t *testing.T) {
	o := NewConfiguratorOptions()
	o.CatalogOptions.Source = "ftp"
	o.Log.Level = "loud"

	err := o.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "ftp")
	assert.ErrorContains(t, err, "loud")
}

func TestFlagsCoverEverySection(t *testing.T) {
	fss := NewConfiguratorOptions().Flags()
	assert.Equal(t, []string{"catalog", "store", "http", "mqtt", "s3", "log"}, fss.Order)
	assert.NotNil(t, fss.FlagSet("catalog").Lookup("catalog.source"))
	assert.NotNil(t, fss.FlagSet("store").Lookup("store.key"))
}

func TestConfig(t *testing.T) {
	o := NewConfiguratorOptions()
	cfg, err := o.Config()
	require.NoError(t, err)
	assert.Same(t, o.StoreOptions, cfg.StoreOptions)
	assert.Same(t, o.CatalogOptions, cfg.CatalogOptions)
}

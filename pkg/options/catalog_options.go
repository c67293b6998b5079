package options

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*CatalogOptions)(nil)

// Catalog source kinds.
const (
	CatalogSourceFile = "file"
	CatalogSourceHTTP = "http"
	CatalogSourceS3   = "s3"
)

// CatalogOptions selects where the static vehicle catalog is loaded from.
type CatalogOptions struct {
	// Source is one of "file", "http" or "s3".
	Source string `json:"source" mapstructure:"source"`

	// Path is the catalog file for the "file" source.
	Path string `json:"path" mapstructure:"path"`

	// URL is the static resource for the "http" source.
	URL string `json:"url" mapstructure:"url"`

	// Object is the object key inside S3Options.BucketName for the "s3" source.
	Object string `json:"object" mapstructure:"object"`

	// Timeout bounds the whole load.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

func NewCatalogOptions() *CatalogOptions {
	return &CatalogOptions{
		Source:  CatalogSourceFile,
		Path:    "./src/assets/data/cars.json",
		Object:  "catalog/cars.json",
		Timeout: 10 * time.Second,
	}
}

func (o *CatalogOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	switch o.Source {
	case CatalogSourceFile:
		if o.Path == "" {
			errs = append(errs, fmt.Errorf("catalog.path is required for the %q source", o.Source))
		}
	case CatalogSourceHTTP:
		u, err := url.Parse(o.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("catalog.url %q is not an absolute URL", o.URL))
		}
	case CatalogSourceS3:
		if o.Object == "" {
			errs = append(errs, fmt.Errorf("catalog.object is required for the %q source", o.Source))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown catalog.source %q", o.Source))
	}

	if o.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("catalog.timeout must be positive, got %s", o.Timeout))
	}

	return errs
}

func (o *CatalogOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Source, "catalog.source", o.Source, "Where to load the vehicle catalog from: 'file', 'http' or 's3'.")
	fs.StringVar(&o.Path, "catalog.path", o.Path, "Catalog file path for the 'file' source.")
	fs.StringVar(&o.URL, "catalog.url", o.URL, "Catalog URL for the 'http' source.")
	fs.StringVar(&o.Object, "catalog.object", o.Object, "Catalog object key for the 's3' source.")
	fs.DurationVar(&o.Timeout, "catalog.timeout", o.Timeout, "Timeout for loading the catalog.")
}

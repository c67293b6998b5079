package options

import (
	"fmt"
	"regexp"

	"github.com/spf13/pflag"
)

var _ IOptions = (*StoreOptions)(nil)

// Store backend kinds.
const (
	StoreBackendMemory = "memory"
	StoreBackendFile   = "file"
	StoreBackendS3     = "s3"
)

// DefaultSelectionsKey is the well-known key holding the saved selections log.
const DefaultSelectionsKey = "volturaSelections"

var storeKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// StoreOptions configures the durable key-value store behind the
// persistence gateway.
type StoreOptions struct {
	// Backend is one of "memory", "file" or "s3".
	Backend string `json:"backend" mapstructure:"backend"`

	// Dir holds one file per key for the "file" backend.
	Dir string `json:"dir" mapstructure:"dir"`

	// Prefix is prepended to object names for the "s3" backend.
	Prefix string `json:"prefix" mapstructure:"prefix"`

	// Key is the storage key of the saved selections log.
	Key string `json:"key" mapstructure:"key"`
}

func NewStoreOptions() *StoreOptions {
	return &StoreOptions{
		Backend: StoreBackendFile,
		Dir:     "./data",
		Prefix:  "selections/",
		Key:     DefaultSelectionsKey,
	}
}

func (o *StoreOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errs := []error{}

	switch o.Backend {
	case StoreBackendMemory, StoreBackendS3:
	case StoreBackendFile:
		if o.Dir == "" {
			errs = append(errs, fmt.Errorf("store.dir is required for the %q backend", o.Backend))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store.backend %q", o.Backend))
	}

	if !storeKeyPattern.MatchString(o.Key) {
		errs = append(errs, fmt.Errorf("store.key %q may only contain letters, digits, '.', '_' and '-'", o.Key))
	}

	return errs
}

func (o *StoreOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Backend, "store.backend", o.Backend, "Durable store for saved selections: 'memory', 'file' or 's3'.")
	fs.StringVar(&o.Dir, "store.dir", o.Dir, "Directory for the 'file' store backend.")
	fs.StringVar(&o.Prefix, "store.prefix", o.Prefix, "Object name prefix for the 's3' store backend.")
	fs.StringVar(&o.Key, "store.key", o.Key, "Storage key of the saved selections log.")
}

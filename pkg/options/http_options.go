package options

import (
	"time"

	"github.com/spf13/pflag"
)

var _ IOptions = (*HttpOptions)(nil)

// HttpOptions contains configuration items related to HTTP server startup.
type HttpOptions struct {
	// Network with server network.
	Network string `json:"network" mapstructure:"network"`

	// Address with server address.
	Addr string `json:"addr" mapstructure:"addr"`

	// Timeout bounds reading a request and writing its response.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// ShutdownTimeout bounds the graceful shutdown after the context ends.
	ShutdownTimeout time.Duration `json:"shutdown-timeout" mapstructure:"shutdown-timeout"`
}

// NewHttpOptions creates a HttpOptions object with default parameters.
func NewHttpOptions() *HttpOptions {
	return &HttpOptions{
		Network:         "tcp",
		Addr:            "0.0.0.0:8080",
		Timeout:         30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *HttpOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if err := ValidateAddress(o.Addr); err != nil {
		errors = append(errors, err)
	}

	return errors
}

// AddFlags adds flags related to the HTTP API server to the specified FlagSet.
func (o *HttpOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Network, "http.network", o.Network, "Specify the network for the HTTP server.")
	fs.StringVar(&o.Addr, "http.addr", o.Addr, "Specify the HTTP server bind address and port.")
	fs.DurationVar(&o.Timeout, "http.timeout", o.Timeout, "Read and write timeout for HTTP requests.")
	fs.DurationVar(&o.ShutdownTimeout, "http.shutdown-timeout", o.ShutdownTimeout, "Grace period for in-flight requests on shutdown.")
}

package options

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/pflag"
)

// IOptions is implemented by every option group in this package.
type IOptions interface {
	// Validate returns every problem found, not just the first one.
	Validate() []error

	// AddFlags registers the group's flags on fs.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}

// ValidateAddress checks that addr is a host:port pair with a usable port.
func ValidateAddress(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}

	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("invalid port %q in address %q", port, addr)
	}

	return nil
}

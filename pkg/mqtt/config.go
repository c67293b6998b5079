package mqtt

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ClientConfig holds the configuration for creating a new MQTT Client.
type ClientConfig struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string

	// KeepAlive in seconds. Default is 60.
	KeepAlive uint16

	// SessionExpiry in seconds; 0 ends the session with the connection.
	SessionExpiry uint32

	// ConnectTimeout for the initial connection. Default is 5s.
	ConnectTimeout time.Duration

	// CleanStart indicates whether to start a clean session.
	CleanStart bool

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// setDefaultConfig applies safe default values to the configuration.
func setDefaultConfig(cfg *ClientConfig) {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 5 * time.Second
	}

	if cfg.KeepAlive == 0 {
		cfg.KeepAlive = 60
	}
}

// Validate checks if the configuration is valid.
func (c *ClientConfig) Validate() error {
	if c.BrokerURL == "" {
		return errors.New("broker url is required")
	}
	u, err := url.Parse(c.BrokerURL)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("broker url %q must have a scheme and host", c.BrokerURL)
	}
	if c.ClientID == "" {
		return errors.New("client id is required")
	}
	return nil
}

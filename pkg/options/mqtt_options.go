package options

import (
	"errors"
	"time"

	"github.com/spf13/pflag"

	"github.com/autopeer-io/voltura/pkg/mqtt"
)

var _ IOptions = (*MqttOptions)(nil)

// MqttOptions contains configuration for the selection notifier's MQTT client.
type MqttOptions struct {
	// Enabled turns on publishing of saved selections. Off by default.
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	Broker   string `json:"broker" mapstructure:"broker"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	ClientID string `json:"client-id" mapstructure:"client-id"`

	KeepAlive      time.Duration `json:"keep-alive" mapstructure:"keep-alive"`
	ConnectTimeout time.Duration `json:"connect-timeout" mapstructure:"connect-timeout"`
	SessionExpiry  uint32        `json:"session-expiry" mapstructure:"session-expiry"`
	CleanStart     bool          `json:"clean-start" mapstructure:"clean-start"`

	// InsecureSkipVerify controls whether a client verifies the server's certificate chain and host name.
	// This should be used only for testing.
	InsecureSkipVerify bool `json:"insecure-skip-verify" mapstructure:"insecure-skip-verify"`

	// TopicRoot prefixes every published topic: {TopicRoot}/selection/{source}/{modelId}.
	TopicRoot string `json:"topic-root" mapstructure:"topic-root"`
}

// NewMqttOptions creates a new MqttOptions with default values.
func NewMqttOptions() *MqttOptions {
	return &MqttOptions{
		Enabled:        false,
		Broker:         "tcp://localhost:1883",
		KeepAlive:      60 * time.Second,
		ConnectTimeout: 5 * time.Second,
		SessionExpiry:  60,
		CleanStart:     true,
		TopicRoot:      "voltura/v1",
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *MqttOptions) Validate() []error {
	if o == nil || !o.Enabled {
		return nil
	}

	errs := []error{}

	if o.Broker == "" {
		errs = append(errs, errors.New("mqtt.broker is required when mqtt.enabled is set"))
	}
	if o.TopicRoot == "" {
		errs = append(errs, errors.New("mqtt.topic-root must not be empty"))
	}

	return errs
}

// AddFlags adds flags for MqttOptions to the specified FlagSet.
func (o *MqttOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.BoolVar(&o.Enabled, "mqtt.enabled", o.Enabled, "Publish every saved selection to the MQTT broker.")
	fs.StringVar(&o.Broker, "mqtt.broker", o.Broker, "The URL of the MQTT broker.")
	fs.StringVar(&o.Username, "mqtt.username", o.Username, "The username for MQTT authentication.")
	fs.StringVar(&o.Password, "mqtt.password", o.Password, "The password for MQTT authentication.")
	fs.StringVar(&o.ClientID, "mqtt.client-id", o.ClientID, "Explicit Client ID (optional, generated from the hostname when empty).")

	fs.DurationVar(&o.KeepAlive, "mqtt.keep-alive", o.KeepAlive, "MQTT Keep Alive interval.")
	fs.DurationVar(&o.ConnectTimeout, "mqtt.connect-timeout", o.ConnectTimeout, "Timeout for establishing MQTT connection.")
	fs.Uint32Var(&o.SessionExpiry, "mqtt.session-expiry", o.SessionExpiry, "MQTT Session Expiry Interval in seconds.")
	fs.BoolVar(&o.CleanStart, "mqtt.clean-start", o.CleanStart, "Start a clean MQTT session on the first connection.")
	fs.BoolVar(&o.InsecureSkipVerify, "mqtt.insecure-skip-verify", o.InsecureSkipVerify, "If true, skips the TLS certificate verification.")

	fs.StringVar(&o.TopicRoot, "mqtt.topic-root", o.TopicRoot, "Topic prefix for published selections.")
}

func (o *MqttOptions) ToClientConfig() *mqtt.ClientConfig {
	return &mqtt.ClientConfig{
		BrokerURL:          o.Broker,
		Username:           o.Username,
		Password:           o.Password,
		ClientID:           o.ClientID,
		KeepAlive:          uint16(o.KeepAlive.Seconds()),
		SessionExpiry:      o.SessionExpiry,
		ConnectTimeout:     o.ConnectTimeout,
		CleanStart:         o.CleanStart,
		InsecureSkipVerify: o.InsecureSkipVerify,
	}
}

package server

import (
	"github.com/autopeer-io/voltura/pkg/mqtt"
	"github.com/autopeer-io/voltura/pkg/options"
)

type Config struct {
	HttpOptions *options.HttpOptions

	// MqttClient is the notifier connection; nil when publishing is off.
	MqttClient mqtt.Client
}

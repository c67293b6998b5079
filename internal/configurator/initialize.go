package configurator

import (
	"fmt"
	"os"

	"github.com/autopeer-io/voltura/pkg/log"
	"github.com/autopeer-io/voltura/pkg/mqtt"
	"github.com/autopeer-io/voltura/pkg/options"
)

func InitializeMQTTClient(opts *options.MqttOptions) (mqtt.Client, error) {
	cfg := opts.ToClientConfig()

	if cfg.ClientID == "" {
		hostname, _ := os.Hostname()
		cfg.ClientID = fmt.Sprintf("voltura-configurator-%s", hostname)
	}

	mqttclient, err := mqtt.NewClient(cfg)
	if err != nil {
		log.Error(err, "failed to new mqtt client")
		return nil, err
	}

	return mqttclient, nil
}

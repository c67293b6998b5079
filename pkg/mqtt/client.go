package mqtt

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"

	"github.com/autopeer-io/voltura/pkg/log"
)

// ErrNotStarted is returned by calls made before Start.
var ErrNotStarted = errors.New("mqtt client not started")

type pahoClient struct {
	cfg *ClientConfig
	cm  *autopaho.ConnectionManager
}

// NewClient creates a new MQTT client implementing the Client interface.
func NewClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mqtt config is required")
	}

	setDefaultConfig(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mqtt config: %w", err)
	}

	return &pahoClient{
		cfg: cfg,
	}, nil
}

func (c *pahoClient) Start(ctx context.Context) error {
	brokerURL, _ := url.Parse(c.cfg.BrokerURL) // validated in NewClient

	pahoCfg := autopaho.ClientConfig{
		ServerUrls:                    []*url.URL{brokerURL},
		KeepAlive:                     c.cfg.KeepAlive,
		CleanStartOnInitialConnection: c.cfg.CleanStart,
		SessionExpiryInterval:         c.cfg.SessionExpiry,
		ReconnectBackoff:              autopaho.NewConstantBackoff(3 * time.Second),
		ConnectTimeout:                c.cfg.ConnectTimeout,
		ConnectUsername:               c.cfg.Username,
		ConnectPassword:               []byte(c.cfg.Password),
		TlsCfg: &tls.Config{
			InsecureSkipVerify: c.cfg.InsecureSkipVerify,
		},
		ClientConfig: paho.ClientConfig{
			ClientID:           c.cfg.ClientID,
			OnClientError:      c.onClientError,
			OnServerDisconnect: c.onServerDisconnect,
		},
		OnConnectionUp: c.onConnectionUp,
		OnConnectError: c.onConnectError,
	}

	log.Info("Starting MQTT Client", "broker", c.cfg.BrokerURL, "clientID", c.cfg.ClientID)

	cm, err := autopaho.NewConnection(ctx, pahoCfg)
	if err != nil {
		return err
	}
	c.cm = cm
	return nil
}

func (c *pahoClient) Disconnect(ctx context.Context) {
	if c.cm != nil {
		_ = c.cm.Disconnect(ctx)
		log.Info("MQTT Client disconnected")
	}
}

func (c *pahoClient) Publish(ctx context.Context, topic string, qos int, retain bool, payload []byte) error {
	if c.cm == nil {
		return ErrNotStarted
	}

	_, err := c.cm.Publish(ctx, &paho.Publish{
		Topic:   topic,
		QoS:     byte(qos),
		Retain:  retain,
		Payload: payload,
	})

	return err
}

func (c *pahoClient) AwaitConnection(ctx context.Context) error {
	if c.cm == nil {
		return ErrNotStarted
	}
	return c.cm.AwaitConnection(ctx)
}

func (c *pahoClient) onConnectionUp(_ *autopaho.ConnectionManager, _ *paho.Connack) {
	log.Info("MQTT Connection established", "broker", c.cfg.BrokerURL)
}

func (c *pahoClient) onConnectError(err error) {
	log.Error(err, "MQTT Connection failed, retrying...")
}

func (c *pahoClient) onClientError(err error) {
	log.Error(err, "MQTT Client internal error")
}

func (c *pahoClient) onServerDisconnect(d *paho.Disconnect) {
	if d.Properties != nil {
		log.Warn("MQTT Server requested disconnect", "reason", d.Properties.ReasonString)
		return
	}
	log.Warn("MQTT Server requested disconnect", "reasonCode", d.ReasonCode)
}

package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/autopeer-io/voltura/internal/configurator/core"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	pkgmqtt "github.com/autopeer-io/voltura/pkg/mqtt"
	"github.com/autopeer-io/voltura/pkg/mqtt/topic"
)

var _ core.SelectionNotifier = (*MQTTNotifier)(nil)

// MQTTNotifier publishes saved configurations for downstream consumers.
type MQTTNotifier struct {
	client pkgmqtt.Client
	topics *topic.Builder
	qos    int
}

// NewMQTTNotifier wraps a started client. Records go to
// {root}/selection/{source}/{modelId} with QoS 1.
func NewMQTTNotifier(client pkgmqtt.Client, topicRoot string) *MQTTNotifier {
	return &MQTTNotifier{
		client: client,
		topics: topic.NewBuilder(topicRoot),
		qos:    1,
	}
}

func (n *MQTTNotifier) Notify(ctx context.Context, rec *model.SavedConfigurationRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	t := n.topics.Selection(string(rec.Source), rec.ModelID)
	if err := n.client.Publish(ctx, t, n.qos, false, payload); err != nil {
		return fmt.Errorf("failed to publish selection to %s: %w", t, err)
	}
	return nil
}

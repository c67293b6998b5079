package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/voltura/internal/configurator/core/model"
)

type published struct {
	topic   string
	qos     int
	retain  bool
	payload []byte
}

type fakeClient struct {
	msgs []published
	err  error
}

func (c *fakeClient) Start(context.Context) error           { return nil }
func (c *fakeClient) Disconnect(context.Context)            {}
func (c *fakeClient) AwaitConnection(context.Context) error { return nil }

func (c *fakeClient) Publish(_ context.Context, topic string, qos int, retain bool, payload []byte) error {
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, published{topic, qos, retain, payload})
	return nil
}

func TestNotify(t *testing.T) {
	client := &fakeClient{}
	n := NewMQTTNotifier(client, "/voltura/v1/")

	rec := &model.SavedConfigurationRecord{
		Timestamp: "2025-03-14T08:26:53.589Z",
		Source:    model.SourceSalesPoints,
		ModelID:   "m1",
		ModelName: "Voltura M1",
		Version:   model.NewRef("v1", "Standard"),
		Addons:    []model.Option{},
		Price:     100000,
	}
	require.NoError(t, n.Notify(t.Context(), rec))

	require.Len(t, client.msgs, 1)
	msg := client.msgs[0]
	assert.Equal(t, "voltura/v1/selection/sales-points/m1", msg.topic)
	assert.Equal(t, 1, msg.qos)
	assert.False(t, msg.retain)

	var got model.SavedConfigurationRecord
	require.NoError(t, json.Unmarshal(msg.payload, &got))
	assert.Equal(t, *rec, got)
}

func TestNotifyPublishError(t *testing.T) {
	boom := errors.New("not connected")
	n := NewMQTTNotifier(&fakeClient{err: boom}, "voltura/v1")

	err := n.Notify(t.Context(), &model.SavedConfigurationRecord{Source: model.SourceDealer, ModelID: "m1"})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "voltura/v1/selection/dealer/m1")
}

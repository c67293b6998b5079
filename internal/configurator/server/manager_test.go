package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type blockingServer struct{ stopped atomic.Bool }

func (s *blockingServer) Start(ctx context.Context) error {
	<-ctx.Done()
	s.stopped.Store(true)
	return nil
}

type failingServer struct{ err error }

func (s failingServer) Start(context.Context) error { return s.err }

func TestManagerStopsOnCancel(t *testing.T) {
	a, b := &blockingServer{}, &blockingServer{}
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan error, 1)
	go func() { done <- NewManagerFor(a, b).Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("manager did not stop")
	}
	assert.True(t, a.stopped.Load())
	assert.True(t, b.stopped.Load())
}

func TestManagerFailureCancelsOthers(t *testing.T) {
	boom := errors.New("listen: address in use")
	other := &blockingServer{}

	err := NewManagerFor(other, failingServer{err: boom}).Start(t.Context())
	assert.ErrorIs(t, err, boom)
	assert.True(t, other.stopped.Load())
}

type fakeMQTT struct {
	started, disconnected atomic.Bool
}

func (c *fakeMQTT) Start(context.Context) error { c.started.Store(true); return nil }
func (c *fakeMQTT) Disconnect(context.Context)  { c.disconnected.Store(true) }
func (c *fakeMQTT) Publish(context.Context, string, int, bool, []byte) error {
	return nil
}
func (c *fakeMQTT) AwaitConnection(context.Context) error { return nil }

func TestMqttConnectionLifecycle(t *testing.T) {
	client := &fakeMQTT{}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	assert.NoError(t, (&mqttConnection{client: client}).Start(ctx))
	assert.True(t, client.started.Load())
	assert.True(t, client.disconnected.Load())
}

// Package gateway appends saved configurations to the durable selections log.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/autopeer-io/voltura/internal/configurator/core"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/pkg/log"
)

// DefaultKey is the storage key of the selections log.
const DefaultKey = "volturaSelections"

// Gateway reads and rewrites the whole selections log on every append.
// Appends through one Gateway are serialised; separate processes sharing a
// store are not coordinated.
type Gateway struct {
	mu     sync.Mutex
	store  core.KeyValueStore
	key    string
	logger log.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(g *Gateway) {
		if key != "" {
			g.key = key
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(g *Gateway) {
		g.logger = l
	}
}

func New(store core.KeyValueStore, opts ...Option) *Gateway {
	g := &Gateway{
		store:  store,
		key:    DefaultKey,
		logger: log.Std(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.WithName("gateway").WithValues("key", g.key)
	return g
}

// Key returns the storage key in use.
func (g *Gateway) Key() string {
	return g.key
}

// Append adds rec to the end of the log. Prior elements are written back
// byte for byte, so fields this version does not know survive. Absent
// content, or content that is not a JSON array, is treated as an empty log
// and replaced.
func (g *Gateway) Append(ctx context.Context, rec model.SavedConfigurationRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	elems, err := g.read(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	elems = append(elems, data)

	data, err = json.Marshal(elems)
	if err != nil {
		return fmt.Errorf("encode selections: %w", err)
	}
	if err := g.store.Put(ctx, g.key, data); err != nil {
		return fmt.Errorf("write selections: %w", err)
	}

	g.logger.Debug("Selection appended", "model", rec.ModelID, "count", len(elems))
	return nil
}

// Records returns the log in append order. Elements that do not decode as a
// record, e.g. written by another client with a fractional price, are
// skipped with a warning but stay in the stored log.
func (g *Gateway) Records(ctx context.Context) ([]model.SavedConfigurationRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	elems, err := g.read(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]model.SavedConfigurationRecord, 0, len(elems))
	for i, raw := range elems {
		var rec model.SavedConfigurationRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			g.logger.Warn("Skipping unreadable selection", "index", i, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// read returns the stored elements undecoded.
func (g *Gateway) read(ctx context.Context) ([]json.RawMessage, error) {
	data, ok, err := g.store.Get(ctx, g.key)
	if err != nil {
		return nil, fmt.Errorf("read selections: %w", err)
	}
	if !ok || len(data) == 0 {
		return nil, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		g.logger.Warn("Discarding malformed selections log", "error", err, "bytes", len(data))
		return nil, nil
	}
	// A stored JSON null decodes to a nil slice and is treated as empty.
	return elems, nil
}

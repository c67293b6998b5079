package core

import (
	"context"

	"github.com/autopeer-io/voltura/internal/configurator/core/model"
)

// CatalogSource delivers the static vehicle catalog as one bulk payload.
// Loading it is the only operation in the configurator that waits on I/O.
type CatalogSource interface {
	// Load fetches and decodes the whole catalog.
	Load(ctx context.Context) ([]model.Vehicle, error)

	// Name identifies the source in logs, e.g. "file:./cars.json".
	Name() string
}

// KeyValueStore is the durable storage behind the persistence gateway.
// Values are opaque bytes; a key holds exactly one value.
type KeyValueStore interface {
	// Get returns the value under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put replaces the value under key as one unit.
	Put(ctx context.Context, key string, value []byte) error
}

package core

import (
	"context"

	"github.com/autopeer-io/voltura/internal/configurator/core/model"
)

// SelectionNotifier forwards a saved configuration to downstream consumers
// such as dealer lead systems. Implementations must not modify the record.
type SelectionNotifier interface {
	Notify(ctx context.Context, record *model.SavedConfigurationRecord) error
}

// NopNotifier drops every record.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, *model.SavedConfigurationRecord) error { return nil }

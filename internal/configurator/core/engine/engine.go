// Package engine implements the configuration engine for one opened vehicle.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/clock"

	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	fsmutil "github.com/autopeer-io/voltura/internal/pkg/util/fsm"
	"github.com/autopeer-io/voltura/pkg/log"
)

const (
	StateUnopened = "unopened"
	StateOpened   = "opened"

	// EventOpen (re)starts a configuration. It is valid from both states.
	EventOpen = "event_open"
)

// ErrNotOpened is returned by calls that need an opened vehicle.
var ErrNotOpened = errors.New("no vehicle opened")

// Configurator holds the active configuration of a single vehicle.
// It is not safe for concurrent use.
type Configurator struct {
	fsm *fsm.FSM

	vehicle *model.Vehicle
	config  model.ActiveConfiguration

	clock  clock.PassiveClock
	logger log.Logger
}

// Option configures a Configurator.
type Option func(*Configurator)

// WithClock sets the clock used to stamp snapshots.
func WithClock(c clock.PassiveClock) Option {
	return func(e *Configurator) {
		e.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(e *Configurator) {
		e.logger = l
	}
}

func New(opts ...Option) *Configurator {
	e := &Configurator{
		clock:  clock.RealClock{},
		logger: log.Std(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithName("engine")

	events := fsm.Events{
		{Name: EventOpen, Src: []string{StateUnopened, StateOpened}, Dst: StateOpened},
	}
	callbacks := fsm.Callbacks{
		// Runs on the first open and on every re-open.
		"after_" + EventOpen: fsmutil.WrapEvent(e.actionOpen),
	}
	e.fsm = fsm.NewFSM(StateUnopened, events, callbacks)
	return e
}

// Opened reports whether a vehicle has been opened.
func (e *Configurator) Opened() bool {
	return e.fsm.Is(StateOpened)
}

// Open starts a fresh configuration for vehicle: its first version, its
// first color and no add-ons. Any previous configuration is discarded.
func (e *Configurator) Open(ctx context.Context, vehicle *model.Vehicle) (model.ActiveConfiguration, error) {
	if vehicle == nil {
		return model.ActiveConfiguration{}, errors.New("vehicle is required")
	}
	if err := e.fsm.Event(ctx, EventOpen, vehicle); fsmutil.IsRealError(err) {
		return model.ActiveConfiguration{}, fmt.Errorf("open %s: %w", vehicle.ID, fsmutil.Cause(err))
	}
	return e.config.Clone(), nil
}

func (e *Configurator) actionOpen(_ context.Context, ev *fsm.Event) error {
	v, ok := ev.Args[0].(*model.Vehicle)
	if !ok {
		return fmt.Errorf("unexpected open argument %T", ev.Args[0])
	}

	cfg := model.ActiveConfiguration{
		VehicleID: v.ID,
		Addons:    sets.New[string](),
	}
	if len(v.Versions) > 0 {
		cfg.VersionID = v.Versions[0].ID
	}
	if len(v.Colors) > 0 {
		cfg.ColorID = v.Colors[0].ID
	}

	e.vehicle = v
	e.config = cfg
	e.logger.Debug("Vehicle opened", "vehicle", v.ID, "version", cfg.VersionID, "color", cfg.ColorID)
	return nil
}

// SelectVersion replaces the selected version. The id is not checked
// against the vehicle; an unknown id prices as no version delta.
func (e *Configurator) SelectVersion(id string) error {
	if !e.Opened() {
		return ErrNotOpened
	}
	e.config.VersionID = id
	return nil
}

// SelectColor replaces the selected color. The id is not checked.
func (e *Configurator) SelectColor(id string) error {
	if !e.Opened() {
		return ErrNotOpened
	}
	e.config.ColorID = id
	return nil
}

// ToggleAddon adds id to the selection, or removes it if present.
func (e *Configurator) ToggleAddon(id string) error {
	if !e.Opened() {
		return ErrNotOpened
	}
	if e.config.Addons.Has(id) {
		e.config.Addons.Delete(id)
	} else {
		e.config.Addons.Insert(id)
	}
	return nil
}

// Vehicle returns the opened vehicle.
func (e *Configurator) Vehicle() (*model.Vehicle, error) {
	if !e.Opened() {
		return nil, ErrNotOpened
	}
	return e.vehicle, nil
}

// Configuration returns a copy of the active configuration.
func (e *Configurator) Configuration() (model.ActiveConfiguration, error) {
	if !e.Opened() {
		return model.ActiveConfiguration{}, ErrNotOpened
	}
	return e.config.Clone(), nil
}

// ComputePrice is the base price plus the selected version delta plus the
// deltas of the selected add-ons. Ids unknown to the vehicle add nothing.
// An unopened engine prices at 0.
func (e *Configurator) ComputePrice() int64 {
	if !e.Opened() {
		return 0
	}
	return Price(e.vehicle, e.config)
}

// Price computes the total for cfg against v.
func Price(v *model.Vehicle, cfg model.ActiveConfiguration) int64 {
	total := v.BasePrice
	if ver, ok := v.FindVersion(cfg.VersionID); ok {
		total += ver.PriceDelta
	}
	for _, a := range cfg.SelectedAddons(v) {
		total += a.PriceDelta
	}
	return total
}

// Snapshot freezes the active configuration into a record tagged with
// source. Engine state is left untouched.
func (e *Configurator) Snapshot(source model.Source) (model.SavedConfigurationRecord, error) {
	if !e.Opened() {
		return model.SavedConfigurationRecord{}, ErrNotOpened
	}
	if _, err := model.ParseSource(string(source)); err != nil {
		return model.SavedConfigurationRecord{}, err
	}

	v := e.vehicle
	rec := model.SavedConfigurationRecord{
		Timestamp: e.clock.Now().UTC().Format(model.TimestampLayout),
		Source:    source,
		ModelID:   v.ID,
		ModelName: v.Name,
		Addons:    []model.Option{},
		Price:     Price(v, e.config),
	}
	if ver, ok := v.FindVersion(e.config.VersionID); ok {
		rec.Version = model.NewRef(ver.ID, ver.Label)
	}
	if c, ok := v.FindColor(e.config.ColorID); ok {
		rec.Color = model.NewRef(c.ID, c.Label)
	}
	for _, a := range e.config.SelectedAddons(v) {
		rec.Addons = append(rec.Addons, model.Option{ID: a.ID, Label: a.Label})
	}
	return rec, nil
}

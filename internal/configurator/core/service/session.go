package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/autopeer-io/voltura/internal/configurator/core/engine"
	"github.com/autopeer-io/voltura/internal/configurator/core/filter"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/internal/pkg/metrics"
	"github.com/autopeer-io/voltura/pkg/log"
)

// Session is one visitor's filter state and configuration. All methods are
// safe for concurrent use.
type Session struct {
	mu  sync.Mutex
	id  string
	svc *Service

	criteria model.FilterCriteria
	view     []model.Vehicle

	engine *engine.Configurator
	logger log.Logger
}

func newSession(id string, svc *Service) *Session {
	logger := svc.logger.WithValues("session", id)
	criteria := model.DefaultFilterCriteria()
	return &Session{
		id:       id,
		svc:      svc,
		criteria: criteria,
		view:     filter.Apply(svc.catalog.Vehicles(), criteria),
		engine:   engine.New(engine.WithClock(svc.clock), engine.WithLogger(logger)),
		logger:   logger,
	}
}

// ID is the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Criteria returns the filter last applied.
func (s *Session) Criteria() model.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// FilteredView returns the vehicles matching the current criteria.
func (s *Session) FilteredView() []model.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.view)
}

// ApplyFilter replaces the criteria and recomputes the filtered view.
func (s *Session) ApplyFilter(criteria model.FilterCriteria) []model.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.criteria = criteria
	s.view = filter.Apply(s.svc.catalog.Vehicles(), criteria)
	metrics.FilterAppliedTotal.WithLabelValues("session").Inc()
	return slices.Clone(s.view)
}

// Open starts configuring vehicleID with its default selection.
func (s *Session) Open(ctx context.Context, vehicleID string) (View, error) {
	v, ok := s.svc.catalog.Get(vehicleID)
	if !ok {
		return View{}, fmt.Errorf("%w: %q", ErrVehicleNotFound, vehicleID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.engine.Open(ctx, &v); err != nil {
		return View{}, err
	}
	return s.viewLocked()
}

// View returns the current configuration without changing it.
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) SelectVersion(id string) (View, error) {
	return s.update(func() error { return s.engine.SelectVersion(id) })
}

func (s *Session) SelectColor(id string) (View, error) {
	return s.update(func() error { return s.engine.SelectColor(id) })
}

func (s *Session) ToggleAddon(id string) (View, error) {
	return s.update(func() error { return s.engine.ToggleAddon(id) })
}

func (s *Session) update(fn func() error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		return View{}, err
	}
	return s.viewLocked()
}

func (s *Session) viewLocked() (View, error) {
	v, err := s.engine.Vehicle()
	if err != nil {
		return View{}, err
	}
	cfg, err := s.engine.Configuration()
	if err != nil {
		return View{}, err
	}
	return newView(v, cfg), nil
}

// ComputePrice is the total of the active configuration, 0 before Open.
func (s *Session) ComputePrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ComputePrice()
}

// Save snapshots the active configuration, appends it to the selections log
// and forwards it to the notifier. A notifier failure does not fail the save.
func (s *Session) Save(ctx context.Context, source model.Source) (model.SavedConfigurationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.engine.Snapshot(source)
	if err != nil {
		return model.SavedConfigurationRecord{}, err
	}

	if err := s.svc.gateway.Append(ctx, rec); err != nil {
		metrics.ConfigurationSavedTotal.WithLabelValues(string(source), "failed").Inc()
		return model.SavedConfigurationRecord{}, err
	}
	metrics.ConfigurationSavedTotal.WithLabelValues(string(source), "success").Inc()
	metrics.ConfiguredPrice.Observe(float64(rec.Price))

	s.logger.Info("Configuration saved",
		"source", rec.Source,
		"modelId", rec.ModelID,
		"version", derefID(rec.Version),
		"color", derefID(rec.Color),
		"addons", len(rec.Addons),
		"price", rec.Price,
	)

	if err := s.svc.notifier.Notify(ctx, &rec); err != nil {
		s.logger.Error(err, "Failed to notify saved configuration", "modelId", rec.ModelID)
	}
	return rec, nil
}

func derefID(r model.Ref) string {
	if r.IsNull() {
		return ""
	}
	return *r.ID
}

// Package catalog holds the vehicle catalog for the lifetime of the process.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/autopeer-io/voltura/internal/configurator/core"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/internal/pkg/metrics"
	"github.com/autopeer-io/voltura/pkg/log"
)

var (
	// ErrAlreadyLoaded is returned by a second Load call.
	ErrAlreadyLoaded = errors.New("catalog already loaded")

	// ErrNotLoaded is reported by Err before any load attempt.
	ErrNotLoaded = errors.New("catalog not loaded")
)

type state int

const (
	stateEmpty state = iota
	stateLoading
	stateLoaded
	stateFailed
)

// Store is the read-only vehicle catalog. It is written exactly once by
// Load; a failed load leaves it empty for good.
type Store struct {
	mu       sync.RWMutex
	state    state
	err      error
	vehicles []model.Vehicle
	index    map[string]int
	logger   log.Logger
}

// NewStore returns an empty, unloaded store.
func NewStore(logger log.Logger) *Store {
	if logger == nil {
		logger = log.Std()
	}
	return &Store{
		logger: logger.WithName("catalog"),
		index:  map[string]int{},
	}
}

// NewStoreFrom returns a store already loaded with vehicles.
func NewStoreFrom(vehicles []model.Vehicle) *Store {
	s := NewStore(nil)
	s.set(vehicles)
	return s
}

// Load fetches the catalog from src. It can only be attempted once: there
// is no retry and no partial catalog.
func (s *Store) Load(ctx context.Context, src core.CatalogSource) error {
	s.mu.Lock()
	if s.state != stateEmpty {
		s.mu.Unlock()
		return ErrAlreadyLoaded
	}
	s.state = stateLoading
	s.mu.Unlock()

	vehicles, err := src.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = stateFailed
		s.err = fmt.Errorf("failed to load catalog from %s: %w", src.Name(), err)
		metrics.CatalogLoadTotal.WithLabelValues("failed").Inc()
		s.logger.Error(err, "Catalog load failed, serving an empty catalog", "source", src.Name())
		return s.err
	}

	s.setLocked(vehicles)
	metrics.CatalogLoadTotal.WithLabelValues("success").Inc()
	s.logger.Info("Catalog loaded", "source", src.Name(), "vehicles", len(vehicles))
	return nil
}

func (s *Store) set(vehicles []model.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(vehicles)
}

func (s *Store) setLocked(vehicles []model.Vehicle) {
	s.vehicles = make([]model.Vehicle, len(vehicles))
	s.index = make(map[string]int, len(vehicles))
	for i, v := range vehicles {
		v.Normalize()
		s.vehicles[i] = v
		if _, dup := s.index[v.ID]; !dup {
			s.index[v.ID] = i
		} else {
			s.logger.Warn("Duplicate vehicle id in catalog, keeping the first", "modelId", v.ID)
		}
	}
	s.state = stateLoaded
	s.err = nil
	metrics.CatalogVehicles.Set(float64(len(vehicles)))
}

// Loaded reports whether the catalog was loaded successfully.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == stateLoaded
}

// Err returns nil after a successful load, ErrNotLoaded before the load
// completes, and the load error after a failed one.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.state {
	case stateLoaded:
		return nil
	case stateFailed:
		return s.err
	default:
		return ErrNotLoaded
	}
}

// Vehicles returns the catalog in its original order. The slice is a copy;
// the vehicles themselves must be treated as read-only.
func (s *Store) Vehicles() []model.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.vehicles)
}

// Get looks a vehicle up by id.
func (s *Store) Get(id string) (model.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return model.Vehicle{}, false
	}
	return s.vehicles[i], true
}

// Len is the number of vehicles.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vehicles)
}

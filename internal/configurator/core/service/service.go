package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"k8s.io/utils/clock"

	"github.com/autopeer-io/voltura/internal/configurator/core"
	"github.com/autopeer-io/voltura/internal/configurator/core/catalog"
	"github.com/autopeer-io/voltura/internal/configurator/core/filter"
	"github.com/autopeer-io/voltura/internal/configurator/core/gateway"
	"github.com/autopeer-io/voltura/internal/configurator/core/model"
	"github.com/autopeer-io/voltura/internal/pkg/metrics"
	"github.com/autopeer-io/voltura/pkg/log"
)

var (
	// ErrVehicleNotFound is returned when an id is not in the catalog.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrSessionNotFound is returned for unknown or expired sessions.
	ErrSessionNotFound = errors.New("session not found")
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

// Service implements the configurator use cases on top of the shared
// catalog and selections log. Per-visitor state lives in Sessions.
type Service struct {
	catalog  *catalog.Store
	gateway  *gateway.Gateway
	notifier core.SelectionNotifier

	sessions *cache.Cache
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once

	clock  clock.PassiveClock
	logger log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier forwards every saved configuration to n.
func WithNotifier(n core.SelectionNotifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithSessionTTL sets the idle timeout of sessions.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock sets the clock used to stamp saved configurations.
func WithClock(c clock.PassiveClock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates the configurator service.
func New(store *catalog.Store, gw *gateway.Gateway, opts ...Option) *Service {
	s := &Service{
		catalog:  store,
		gateway:  gw,
		notifier: core.NopNotifier{},
		ttl:      DefaultSessionTTL,
		clock:    clock.RealClock{},
		logger:   log.Std(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithName("service")

	// Expired sessions are swept by expireSessions rather than go-cache's
	// own janitor so that Close can stop it.
	s.sessions = cache.New(s.ttl, cache.NoExpiration)
	s.sessions.OnEvicted(func(id string, _ any) {
		metrics.ActiveSessions.Dec()
		s.logger.Debug("Session closed", "session", id)
	})
	s.stop = make(chan struct{})
	go s.expireSessions(s.ttl / 2)
	return s
}

func (s *Service) expireSessions(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sessions.DeleteExpired()
		case <-s.stop:
			return
		}
	}
}

// Close stops sweeping expired sessions. It is safe to call more than once.
func (s *Service) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Catalog returns the shared catalog store.
func (s *Service) Catalog() *catalog.Store {
	return s.catalog
}

// Filter applies raw filter input to the catalog without any session.
func (s *Service) Filter(in filter.Input) []model.Vehicle {
	metrics.FilterAppliedTotal.WithLabelValues("stateless").Inc()
	return filter.Apply(s.catalog.Vehicles(), filter.Parse(in))
}

// Records returns the saved selections log.
func (s *Service) Records(ctx context.Context) ([]model.SavedConfigurationRecord, error) {
	return s.gateway.Records(ctx)
}

// NewSession starts a session showing the whole catalog.
func (s *Service) NewSession() *Session {
	sess := newSession(uuid.NewString(), s)
	s.sessions.SetDefault(sess.id, sess)
	metrics.ActiveSessions.Inc()
	s.logger.Debug("Session created", "session", sess.id)
	return sess
}

// Session returns a live session and extends its idle timeout.
func (s *Service) Session(id string) (*Session, error) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.sessions.SetDefault(id, v)
	return v.(*Session), nil
}

// CloseSession drops a session. Unknown ids are ignored.
func (s *Service) CloseSession(id string) {
	s.sessions.Delete(id)
}

// SessionCount is the number of sessions not yet evicted.
func (s *Service) SessionCount() int {
	return s.sessions.ItemCount()
}

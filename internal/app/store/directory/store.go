// internal/app/store/directory/store.go
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dalemusser/tujitume/internal/app/store/slots"
	"github.com/dalemusser/tujitume/internal/app/system/metrics"
	"github.com/dalemusser/tujitume/internal/app/system/timeouts"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"go.uber.org/zap"
)

const aggregate = "experts"

// Store holds the expert and business listings and mirrors them to their own
// slot. It returns every listing regardless of Verified; public consumers
// must filter with Public.
type Store struct {
	mu       sync.RWMutex
	slots    slots.Store
	log      *zap.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	experts  []models.ExpertProfile
	attached bool
}

type Option func(*Store)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithClock sets the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty directory. Call Init to load or seed it.
func New(st slots.Store, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{slots: st, log: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the listings. When the slot holds nothing the demo listings are
// seeded and saved, so a first run shows a populated directory.
func (s *Store) Init(ctx context.Context) {
	found, err := s.Load(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = true
	switch {
	case err != nil:
		s.log.Warn("directory not loaded", zap.Error(err))
	case !found:
		s.experts = Seed(s.now())
		s.persistLocked(ctx, "seed")
	}
}

// Dispose writes a final snapshot and detaches the store.
func (s *Store) Dispose(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return nil
	}
	s.attached = false
	return s.saveLocked(ctx)
}

// Load replaces the in-memory listings with the stored ones. found is false
// when the slot is empty; a decode failure changes nothing.
func (s *Store) Load(ctx context.Context) (found bool, err error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), s.log, "load experts")
	defer cancel()
	b, ok, err := s.slots.Get(ctx, slots.KeyExperts)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", slots.KeyExperts, err)
	}
	if !ok {
		return false, nil
	}
	var list []models.ExpertProfile
	if err := json.Unmarshal(b, &list); err != nil {
		return false, fmt.Errorf("decode %s: %w", slots.KeyExperts, err)
	}
	s.mu.Lock()
	s.experts = list
	s.mu.Unlock()
	return true, nil
}

// Save writes all listings to the slot.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	list := s.experts
	if list == nil {
		list = []models.ExpertProfile{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode experts: %w", err)
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), s.log, "save experts")
	defer cancel()
	if err := s.slots.Put(ctx, slots.KeyExperts, b); err != nil {
		return fmt.Errorf("write %s: %w", slots.KeyExperts, err)
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context, op string) {
	s.metrics.Mutation(aggregate, op, models.Found.String())
	if !s.attached {
		return
	}
	if err := s.saveLocked(ctx); err != nil {
		s.metrics.PersistFailure(slots.KeyExperts)
		s.log.Error("failed to persist experts", zap.String("op", op), zap.Error(err))
	}
}

// AddExpert appends a listing with a fresh id and creation time.
func (s *Store) AddExpert(ctx context.Context, e models.ExpertProfile) models.ExpertProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = models.NewID()
	e.CreatedAt = s.now().UTC()
	s.experts = append(s.experts, e)
	s.persistLocked(ctx, "add")
	return e
}

// RemoveExpert deletes the listing with the given id.
func (s *Store) RemoveExpert(ctx context.Context, id string) models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		s.metrics.Mutation(aggregate, "remove", models.NotFound.String())
		return models.NotFound
	}
	s.experts = slices.Delete(slices.Clone(s.experts), i, i+1)
	s.persistLocked(ctx, "remove")
	return models.Found
}

// ToggleVerified flips the listing's Verified flag.
func (s *Store) ToggleVerified(ctx context.Context, id string) models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		s.metrics.Mutation(aggregate, "toggle_verified", models.NotFound.String())
		return models.NotFound
	}
	s.experts[i].Verified = !s.experts[i].Verified
	s.persistLocked(ctx, "toggle_verified")
	return models.Found
}

// Get returns the listing with the given id.
func (s *Store) Get(id string) (models.ExpertProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.experts[i], true
	}
	return models.ExpertProfile{}, false
}

// Experts returns every listing, verified or not, in insertion order.
func (s *Store) Experts() []models.ExpertProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.experts)
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.experts, func(e models.ExpertProfile) bool { return e.ID == id })
}

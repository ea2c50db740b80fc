// internal/app/store/content/store.go
package content

import (
	"context"
	"sync"

	"github.com/dalemusser/tujitume/internal/app/store/slots"
	"github.com/dalemusser/tujitume/internal/app/system/metrics"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"go.uber.org/zap"
)

// Snapshot is the full persisted state of the record store.
type Snapshot struct {
	TeamMembers  []models.TeamMember  `json:"teamMembers"`
	NewsArticles []models.NewsArticle `json:"newsArticles"`
	Events       []models.Event       `json:"events"`
	Partnerships []models.Partnership `json:"partnerships"`
	Testimonials []models.Testimonial `json:"testimonials"`
	SiteSettings models.SiteSettings  `json:"siteSettings"`
}

// Store holds the site's content collections in memory and mirrors them to
// one durable slot. It is safe for concurrent use; every mutation runs
// mutate-then-persist under a single lock, so saves reach the slot in the
// same order as the mutations that produced them.
//
// The store does no authorization. Callers gate admin access themselves.
type Store struct {
	mu       sync.RWMutex
	slots    slots.Store
	key      string
	log      *zap.Logger
	metrics  *metrics.Metrics
	data     Snapshot
	attached bool

	// keepStored is set when Init found a snapshot it could not load. The
	// stored value is then only overwritten by a later mutation.
	keepStored bool
	dirty      bool
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics records mutations and persistence failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithKey overrides the slot key (default slots.KeyContent).
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// New returns a store holding the built-in defaults. Call Init to load the
// persisted snapshot and start persisting mutations.
func New(st slots.Store, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		slots: st,
		key:   slots.KeyContent,
		log:   logger,
		data:  Defaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads the persisted snapshot and attaches the store to its slot.
// A missing or unreadable snapshot leaves the defaults in place.
//
// An unreadable snapshot is left in the slot until the first mutation
// replaces it, so a run that only reads never overwrites it.
func (s *Store) Init(ctx context.Context) {
	err := s.Load(ctx)
	if err != nil {
		s.log.Warn("content snapshot not loaded; using defaults",
			zap.String("key", s.key), zap.Error(err))
	}
	s.mu.Lock()
	s.attached = true
	s.keepStored = err != nil
	s.dirty = false
	s.mu.Unlock()
}

// Dispose writes a final snapshot and detaches the store. Mutations after
// Dispose only change memory.
func (s *Store) Dispose(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.attached {
		return nil
	}
	s.attached = false
	if s.keepStored && !s.dirty {
		s.log.Warn("content snapshot left as stored; nothing changed since a failed load",
			zap.String("key", s.key))
		return nil
	}
	return s.saveLocked(ctx)
}

// Snapshot returns a deep copy of every aggregate.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		TeamMembers:  cloneAll(s.data.TeamMembers),
		NewsArticles: cloneAll(s.data.NewsArticles),
		Events:       cloneAll(s.data.Events),
		Partnerships: cloneAll(s.data.Partnerships),
		Testimonials: cloneAll(s.data.Testimonials),
		SiteSettings: s.data.SiteSettings,
	}
}

// Import replaces every aggregate with snap and persists the result.
// It rejects snapshots with duplicate ids in any collection. An omitted
// collection is imported as empty.
func (s *Store) Import(ctx context.Context, snap Snapshot) error {
	if err := checkIDs(snap); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = Snapshot{
		TeamMembers:  normalizeAll(snap.TeamMembers),
		NewsArticles: normalizeAll(snap.NewsArticles),
		Events:       normalizeAll(snap.Events),
		Partnerships: normalizeAll(snap.Partnerships),
		Testimonials: normalizeAll(snap.Testimonials),
		SiteSettings: snap.SiteSettings,
	}
	s.dirty = true
	s.metrics.Mutation("all", "import", "ok")
	return s.saveLocked(ctx)
}

// SiteSettings returns the settings singleton.
func (s *Store) SiteSettings() models.SiteSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.SiteSettings
}

// UpdateSiteSettings shallow-merges p over the settings and persists.
func (s *Store) UpdateSiteSettings(ctx context.Context, p models.SiteSettingsPatch) models.SiteSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Apply(&s.data.SiteSettings)
	s.committed(ctx, "settings", "update")
	return s.data.SiteSettings
}

package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dalemusser/tujitume/internal/app/system/timeouts"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"go.uber.org/zap"
)

// storedSnapshot mirrors Snapshot with optional aggregates, so a load can
// tell a missing aggregate from an empty one.
type storedSnapshot struct {
	TeamMembers  *[]models.TeamMember  `json:"teamMembers"`
	NewsArticles *[]models.NewsArticle `json:"newsArticles"`
	Events       *[]models.Event       `json:"events"`
	Partnerships *[]models.Partnership `json:"partnerships"`
	Testimonials *[]models.Testimonial `json:"testimonials"`
	SiteSettings *models.SiteSettings  `json:"siteSettings"`
}

// present returns the collections that were in the stored value.
func (st storedSnapshot) present() Snapshot {
	var snap Snapshot
	if st.TeamMembers != nil {
		snap.TeamMembers = *st.TeamMembers
	}
	if st.NewsArticles != nil {
		snap.NewsArticles = *st.NewsArticles
	}
	if st.Events != nil {
		snap.Events = *st.Events
	}
	if st.Partnerships != nil {
		snap.Partnerships = *st.Partnerships
	}
	if st.Testimonials != nil {
		snap.Testimonials = *st.Testimonials
	}
	return snap
}

// Save writes the full snapshot to the slot.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	b, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode content snapshot: %w", err)
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), s.log, "save content snapshot")
	defer cancel()
	if err := s.slots.Put(ctx, s.key, b); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Load reads the snapshot from the slot. Each aggregate present in the
// stored value replaces the in-memory one; absent aggregates keep their
// current values. Records stored without a status are given the default. If the value cannot be decoded, or a collection repeats an id,
// nothing changes.
func (s *Store) Load(ctx context.Context) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), s.log, "load content snapshot")
	defer cancel()
	b, ok, err := s.slots.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok {
		return nil
	}
	var stored storedSnapshot
	if err := json.Unmarshal(b, &stored); err != nil {
		return fmt.Errorf("decode %s: %w", s.key, err)
	}

	if err := checkIDs(stored.present()); err != nil {
		return fmt.Errorf("decode %s: %w", s.key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if stored.TeamMembers != nil {
		s.data.TeamMembers = normalizeAll(*stored.TeamMembers)
	}
	if stored.NewsArticles != nil {
		s.data.NewsArticles = normalizeAll(*stored.NewsArticles)
	}
	if stored.Events != nil {
		s.data.Events = normalizeAll(*stored.Events)
	}
	if stored.Partnerships != nil {
		s.data.Partnerships = normalizeAll(*stored.Partnerships)
	}
	if stored.Testimonials != nil {
		s.data.Testimonials = normalizeAll(*stored.Testimonials)
	}
	if stored.SiteSettings != nil {
		s.data.SiteSettings = *stored.SiteSettings
	}
	return nil
}

// committed records a finished mutation and persists it. A failed write is
// logged and counted; the in-memory change stands.
func (s *Store) committed(ctx context.Context, aggregate, op string) {
	s.metrics.Mutation(aggregate, op, models.Found.String())
	s.dirty = true
	if !s.attached {
		return
	}
	if err := s.saveLocked(ctx); err != nil {
		s.metrics.PersistFailure(s.key)
		s.log.Error("failed to persist content snapshot",
			zap.String("aggregate", aggregate),
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

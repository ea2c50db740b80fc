// internal/app/store/audit/store.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dalemusser/tujitume/internal/app/store/slots"
	"github.com/dalemusser/tujitume/internal/domain/models"
)

// Event categories
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Auth event types
const (
	EventLoginSuccess         = "login_success"
	EventLoginFailed          = "login_failed"
	EventLoginFailedRateLimit = "login_failed_rate_limit"
	EventLogout               = "logout"
	EventSessionRestored      = "session_restored"
	EventSessionCleared       = "session_cleared"
)

// Admin event types
const (
	EventRecordCreated           = "record_created"
	EventRecordUpdated           = "record_updated"
	EventRecordDeleted           = "record_deleted"
	EventSettingsUpdated         = "settings_updated"
	EventExpertAdded             = "expert_added"
	EventExpertRemoved           = "expert_removed"
	EventExpertVerifiedToggled   = "expert_verified_toggled"
	EventSubmissionStatusUpdated = "submission_status_updated"
	EventContentImported         = "content_imported"
	EventMediaUploaded           = "media_uploaded"
)

// DefaultCapacity is the number of events kept before the oldest are dropped.
const DefaultCapacity = 500

// Event represents an audit event.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Category  string `json:"category"`
	EventType string `json:"eventType"`

	// Who
	UserID  string `json:"userId,omitempty"`  // affected admin
	ActorID string `json:"actorId,omitempty"` // who performed the action

	Success       bool   `json:"success"`
	FailureReason string `json:"failureReason,omitempty"`

	Details map[string]string `json:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	UserID    string // matches UserID or ActorID
	Category  string
	EventType string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

// Store keeps a capped, newest-last list of audit events in one slot.
type Store struct {
	mu       sync.Mutex
	slots    slots.Store
	capacity int
}

// New creates a new audit Store.
func New(st slots.Store) *Store {
	return &Store{slots: st, capacity: DefaultCapacity}
}

// WithCapacity returns s with a different retention cap.
func (s *Store) WithCapacity(n int) *Store {
	if n > 0 {
		s.capacity = n
	}
	return s
}

func (s *Store) read(ctx context.Context) ([]Event, error) {
	b, ok, err := s.slots.Get(ctx, slots.KeyAudit)
	if err != nil || !ok {
		return nil, err
	}
	var events []Event
	if err := json.Unmarshal(b, &events); err != nil {
		return nil, fmt.Errorf("decode %s: %w", slots.KeyAudit, err)
	}
	return events, nil
}

// Log records an audit event, dropping the oldest events beyond capacity.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = models.NewID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	events, err := s.read(ctx)
	if err != nil {
		return err
	}
	events = append(events, event)
	if over := len(events) - s.capacity; over > 0 {
		events = events[over:]
	}
	b, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode audit events: %w", err)
	}
	return s.slots.Put(ctx, slots.KeyAudit, b)
}

// Query retrieves audit events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	s.mu.Lock()
	events, err := s.read(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	out := []Event{}
	skipped := 0
	for _, e := range slices.Backward(events) {
		if !filter.matches(e) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f QueryFilter) matches(e Event) bool {
	if f.UserID != "" && e.UserID != f.UserID && e.ActorID != f.UserID {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.EventType != "" && e.EventType != f.EventType {
		return false
	}
	if f.StartTime != nil && e.Timestamp.Before(*f.StartTime) {
		return false
	}
	if f.EndTime != nil && e.Timestamp.After(*f.EndTime) {
		return false
	}
	return true
}

// GetByUser retrieves recent audit events for a specific admin.
func (s *Store) GetByUser(ctx context.Context, userID string, limit int) ([]Event, error) {
	return s.Query(ctx, QueryFilter{UserID: userID, Limit: limit})
}

// GetRecent retrieves the most recent audit events.
func (s *Store) GetRecent(ctx context.Context, limit int) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Limit: limit})
}

// GetFailedLogins retrieves failed login attempts since the given time.
func (s *Store) GetFailedLogins(ctx context.Context, since time.Time, limit int) ([]Event, error) {
	all, err := s.Query(ctx, QueryFilter{Category: CategoryAuth, StartTime: &since, Limit: s.capacity})
	if err != nil {
		return nil, err
	}
	out := []Event{}
	for _, e := range all {
		if e.Success || (e.EventType != EventLoginFailed && e.EventType != EventLoginFailedRateLimit) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

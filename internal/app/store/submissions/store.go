// internal/app/store/submissions/store.go
package submissions

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/dalemusser/tujitume/internal/app/store/slots"
	"github.com/dalemusser/tujitume/internal/app/system/timeouts"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"go.uber.org/zap"
)

// Store is the append-only list of form submissions. The list lives in a
// single slot and is re-read on every call, so submissions written by other
// processes sharing the slot are visible.
type Store struct {
	mu    sync.Mutex
	slots slots.Store
	log   *zap.Logger
}

// New creates a submissions Store.
func New(st slots.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{slots: st, log: logger}
}

func (s *Store) read(ctx context.Context) ([]models.FormSubmission, error) {
	b, ok, err := s.slots.Get(ctx, slots.KeySubmissions)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", slots.KeySubmissions, err)
	}
	if !ok {
		return nil, nil
	}
	var list []models.FormSubmission
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", slots.KeySubmissions, err)
	}
	return list, nil
}

func (s *Store) write(ctx context.Context, list []models.FormSubmission) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode submissions: %w", err)
	}
	if err := s.slots.Put(ctx, slots.KeySubmissions, b); err != nil {
		return fmt.Errorf("write %s: %w", slots.KeySubmissions, err)
	}
	return nil
}

// Append adds sub to the end of the list.
func (s *Store) Append(ctx context.Context, sub models.FormSubmission) error {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), s.log, "append submission")
	defer cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.read(ctx)
	if err != nil {
		return err
	}
	return s.write(ctx, append(list, sub))
}

// List returns every submission, newest first. Submissions with the same
// timestamp keep their reverse insertion order.
func (s *Store) List(ctx context.Context) ([]models.FormSubmission, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), s.log, "list submissions")
	defer cancel()
	s.mu.Lock()
	list, err := s.read(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	slices.Reverse(list)
	slices.SortStableFunc(list, func(a, b models.FormSubmission) int {
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})
	if list == nil {
		list = []models.FormSubmission{}
	}
	return list, nil
}

// UpdateStatus sets the status and notes of the submission with the given
// id. found is false if there is no such submission.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus, notes string) (found bool, err error) {
	if !status.Valid() {
		return false, fmt.Errorf("invalid submission status %q", status)
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Slot(), s.log, "update submission status")
	defer cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.read(ctx)
	if err != nil {
		return false, err
	}
	i := slices.IndexFunc(list, func(sub models.FormSubmission) bool { return sub.ID == id })
	if i < 0 {
		return false, nil
	}
	list[i].Status = status
	list[i].AdminNotes = notes
	return true, s.write(ctx, list)
}

// internal/app/system/forms/review.go
package forms

import (
	"context"

	"github.com/dalemusser/tujitume/internal/app/store/slots"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"go.uber.org/zap"
)

// Submissions returns every stored submission, newest first. An unreadable
// list is logged and reported as empty.
func (g *Gateway) Submissions(ctx context.Context) []models.FormSubmission {
	all, err := g.store.List(ctx)
	if err != nil {
		g.log.Error("list form submissions", zap.Error(err))
		g.metrics.PersistFailure(slots.KeySubmissions)
		return []models.FormSubmission{}
	}
	return all
}

// SubmissionsByType returns the submissions of one form type, newest first.
func (g *Gateway) SubmissionsByType(ctx context.Context, formType models.FormType) []models.FormSubmission {
	all := g.Submissions(ctx)
	out := make([]models.FormSubmission, 0, len(all))
	for _, s := range all {
		if s.FormType == formType {
			out = append(out, s)
		}
	}
	return out
}

// UpdateStatus records an admin's review of a submission. It reports
// whether the review was stored; a missing id, an unknown status and a
// storage failure all give false and are logged and audited.
func (g *Gateway) UpdateStatus(ctx context.Context, actor models.AdminUser, id string, status models.SubmissionStatus, notes string) bool {
	found, err := g.store.UpdateStatus(ctx, id, status, notes)
	switch {
	case err != nil:
		g.log.Error("update submission status",
			zap.String("submission_id", id),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		if status.Valid() {
			g.metrics.PersistFailure(slots.KeySubmissions)
		}
		g.audit.SubmissionStatusUpdated(ctx, actor, id, status, "submission not updated")
		return false
	case !found:
		g.audit.SubmissionStatusUpdated(ctx, actor, id, status, "submission not found")
		return false
	}
	g.audit.SubmissionStatusUpdated(ctx, actor, id, status, "")
	return true
}

// Stats summarizes stored submissions.
type Stats struct {
	Total    int
	ByStatus map[models.SubmissionStatus]int
	ByType   map[models.FormType]int
}

// Stats counts submissions by status and form type. Every known status and
// type is present, possibly with zero.
func (g *Gateway) Stats(ctx context.Context) Stats {
	all := g.Submissions(ctx)
	st := Stats{
		Total:    len(all),
		ByStatus: make(map[models.SubmissionStatus]int),
		ByType:   make(map[models.FormType]int),
	}
	for _, s := range models.SubmissionStatuses() {
		st.ByStatus[s] = 0
	}
	for _, t := range models.FormTypes() {
		st.ByType[t] = 0
	}
	for _, s := range all {
		st.ByStatus[s.Status]++
		st.ByType[s.FormType]++
	}
	return st
}

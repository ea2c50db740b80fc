package models

import "time"

// FormSubmission is a validated public form payload kept for admin review.
type FormSubmission struct {
	ID          string           `json:"id"`
	FormType    FormType         `json:"formType"`
	Data        map[string]any   `json:"data"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Status      SubmissionStatus `json:"status"`
	AdminNotes  string           `json:"adminNotes,omitempty"`
}

func (s FormSubmission) RecordID() string { return s.ID }

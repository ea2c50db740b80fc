// internal/domain/models/enums.go
package models

import (
	"fmt"
	"slices"
)

// Closed value sets. Each type rejects unknown values when decoded from JSON
// (or any other text form), so an invalid status can never be loaded from a
// slot or accepted from input.

// ArticleStatus is the publishing state of a news article.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
	ArticleScheduled ArticleStatus = "scheduled"
)

var articleStatuses = []ArticleStatus{ArticleDraft, ArticlePublished, ArticleScheduled}

func (s ArticleStatus) Valid() bool { return slices.Contains(articleStatuses, s) }

func (s *ArticleStatus) UnmarshalText(b []byte) error {
	return parseEnum(b, articleStatuses, "article status", s)
}

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

var eventStatuses = []EventStatus{EventUpcoming, EventOngoing, EventCompleted}

func (s EventStatus) Valid() bool { return slices.Contains(eventStatuses, s) }

func (s *EventStatus) UnmarshalText(b []byte) error {
	return parseEnum(b, eventStatuses, "event status", s)
}

// PartnershipCategory groups partners on the partnerships page.
type PartnershipCategory string

const (
	PartnerFunding      PartnershipCategory = "funding"
	PartnerImplementing PartnershipCategory = "implementing"
	PartnerGovernment   PartnershipCategory = "government"
	PartnerCommunity    PartnershipCategory = "community"
)

var partnershipCategories = []PartnershipCategory{PartnerFunding, PartnerImplementing, PartnerGovernment, PartnerCommunity}

func (c PartnershipCategory) Valid() bool { return slices.Contains(partnershipCategories, c) }

func (c *PartnershipCategory) UnmarshalText(b []byte) error {
	return parseEnum(b, partnershipCategories, "partnership category", c)
}

// PartnershipStatus tells whether a partnership is still running.
type PartnershipStatus string

const (
	PartnershipActive    PartnershipStatus = "active"
	PartnershipCompleted PartnershipStatus = "completed"
)

var partnershipStatuses = []PartnershipStatus{PartnershipActive, PartnershipCompleted}

func (s PartnershipStatus) Valid() bool { return slices.Contains(partnershipStatuses, s) }

func (s *PartnershipStatus) UnmarshalText(b []byte) error {
	return parseEnum(b, partnershipStatuses, "partnership status", s)
}

// Role is an admin account role.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
)

var roles = []Role{RoleSuperAdmin, RoleAdmin, RoleEditor}

func (r Role) Valid() bool { return slices.Contains(roles, r) }

func (r *Role) UnmarshalText(b []byte) error {
	return parseEnum(b, roles, "role", r)
}

// SubmissionStatus is the admin review state of a form submission.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionReviewed  SubmissionStatus = "reviewed"
	SubmissionResponded SubmissionStatus = "responded"
	SubmissionArchived  SubmissionStatus = "archived"
)

var submissionStatuses = []SubmissionStatus{SubmissionPending, SubmissionReviewed, SubmissionResponded, SubmissionArchived}

func (s SubmissionStatus) Valid() bool { return slices.Contains(submissionStatuses, s) }

func (s *SubmissionStatus) UnmarshalText(b []byte) error {
	return parseEnum(b, submissionStatuses, "submission status", s)
}

// SubmissionStatuses returns every review state in workflow order.
func SubmissionStatuses() []SubmissionStatus {
	return slices.Clone(submissionStatuses)
}

// FormType names one of the public forms accepted by the submission gateway.
type FormType string

const (
	FormContact           FormType = "contact"
	FormProgramInquiry    FormType = "program-inquiry"
	FormPartnership       FormType = "partnership"
	FormVolunteer         FormType = "volunteer"
	FormDonation          FormType = "donation"
	FormEventRegistration FormType = "event-registration"
	FormNewsletter        FormType = "newsletter"
	FormFeedback          FormType = "feedback"
)

var formTypes = []FormType{
	FormContact, FormProgramInquiry, FormPartnership, FormVolunteer,
	FormDonation, FormEventRegistration, FormNewsletter, FormFeedback,
}

func (t FormType) Valid() bool { return slices.Contains(formTypes, t) }

func (t *FormType) UnmarshalText(b []byte) error {
	return parseEnum(b, formTypes, "form type", t)
}

// FormTypes returns the catalog of accepted form types.
func FormTypes() []FormType {
	return slices.Clone(formTypes)
}

// enum is a closed value set.
type enum interface {
	~string
	Valid() bool
}

// orDefault returns v, or def when v is outside its set.
func orDefault[T enum](v, def T) T {
	if v.Valid() {
		return v
	}
	return def
}

// setEnumIf is setIf for closed sets. Values outside the set leave dst as is.
func setEnumIf[T enum](dst *T, v *T) {
	if v != nil && (*v).Valid() {
		*dst = *v
	}
}

func parseEnum[T ~string](b []byte, valid []T, kind string, dst *T) error {
	v := T(b)
	if !slices.Contains(valid, v) {
		return fmt.Errorf("invalid %s %q", kind, string(b))
	}
	*dst = v
	return nil
}

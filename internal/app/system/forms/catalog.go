// internal/app/system/forms/catalog.go
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/tujitume/internal/app/system/inputval"
	"github.com/dalemusser/tujitume/internal/domain/models"
)

// form is a decoded payload for one form type.
type form interface {
	// sender returns who submitted the form and where to confirm it.
	// email is empty when no confirmation should be sent.
	sender() (name, email string)
}

// extraChecker adds rules that struct tags cannot express.
type extraChecker interface {
	check(r *inputval.Result)
}

type entry struct {
	label   string
	success string
	new     func() form
}

var catalog = map[models.FormType]entry{
	models.FormContact: {
		label:   "Contact message",
		success: "Thank you for your message! We'll get back to you soon.",
		new:     func() form { return &ContactForm{} },
	},
	models.FormProgramInquiry: {
		label:   "Program inquiry",
		success: "Thank you for your interest in our programs! We'll review your inquiry and contact you soon.",
		new:     func() form { return &ProgramInquiryForm{} },
	},
	models.FormPartnership: {
		label:   "Partnership proposal",
		success: "Thank you for your partnership proposal! Our team will review it and get in touch.",
		new:     func() form { return &PartnershipForm{} },
	},
	models.FormVolunteer: {
		label:   "Volunteer application",
		success: "Thank you for applying to volunteer! We'll contact you about next steps.",
		new:     func() form { return &VolunteerForm{} },
	},
	models.FormDonation: {
		label:   "Donation pledge",
		success: "Thank you for your generous support! We'll send you donation details shortly.",
		new:     func() form { return &DonationForm{} },
	},
	models.FormEventRegistration: {
		label:   "Event registration",
		success: "You're registered! We've sent the event details to your email.",
		new:     func() form { return &EventRegistrationForm{} },
	},
	models.FormNewsletter: {
		label:   "Newsletter subscription",
		success: "You're subscribed! Watch your inbox for our next newsletter.",
		new:     func() form { return &NewsletterForm{} },
	},
	models.FormFeedback: {
		label:   "Feedback",
		success: "Thank you for your feedback! It helps us serve the community better.",
		new:     func() form { return &FeedbackForm{} },
	},
}

// Label returns the human name of a form type, or the raw type if unknown.
func Label(t models.FormType) string {
	if e, ok := catalog[t]; ok {
		return e.label
	}
	return string(t)
}

type ContactForm struct {
	Name                   string `json:"name" validate:"required" label:"Name"`
	Email                  string `json:"email" validate:"required,emailaddr" label:"Email"`
	Phone                  string `json:"phone,omitempty" validate:"omitempty,phone" label:"Phone"`
	Subject                string `json:"subject" validate:"required" label:"Subject"`
	Message                string `json:"message" validate:"required,min=10" label:"Message"`
	PreferredContactMethod string `json:"preferredContactMethod,omitempty" label:"Preferred contact method"`
}

func (f *ContactForm) sender() (string, string) { return f.Name, f.Email }

type ProgramInquiryForm struct {
	Name         string `json:"name" validate:"required" label:"Name"`
	Email        string `json:"email" validate:"required,emailaddr" label:"Email"`
	Phone        string `json:"phone" validate:"required,phone" label:"Phone"`
	Age          int    `json:"age" validate:"required,gte=16,lte=100" label:"Age"`
	Location     string `json:"location" validate:"required" label:"Location"`
	Program      string `json:"program" validate:"required" label:"Program"`
	Background   string `json:"background" validate:"required,min=50" label:"Background"`
	Motivation   string `json:"motivation" validate:"required,min=30" label:"Motivation"`
	Availability string `json:"availability" validate:"required" label:"Availability"`
	Expectations string `json:"expectations" validate:"required" label:"Expectations"`
}

func (f *ProgramInquiryForm) sender() (string, string) { return f.Name, f.Email }

type PartnershipForm struct {
	OrganizationName   string `json:"organizationName" validate:"required" label:"Organization name"`
	ContactPerson      string `json:"contactPerson" validate:"required" label:"Contact person"`
	Email              string `json:"email" validate:"required,emailaddr" label:"Email"`
	Phone              string `json:"phone" validate:"required,phone" label:"Phone"`
	OrganizationType   string `json:"organizationType" validate:"required" label:"Organization type"`
	PartnershipType    string `json:"partnershipType" validate:"required" label:"Partnership type"`
	Description        string `json:"description" validate:"required,min=100" label:"Description"`
	ProposedActivities string `json:"proposedActivities" validate:"required" label:"Proposed activities"`
	Resources          string `json:"resources" validate:"required" label:"Resources"`
	Timeline           string `json:"timeline" validate:"required" label:"Timeline"`
	Budget             string `json:"budget,omitempty" label:"Budget"`
}

func (f *PartnershipForm) sender() (string, string) { return f.ContactPerson, f.Email }

type EmergencyContact struct {
	Name         string `json:"name" validate:"required" label:"Emergency contact name"`
	Phone        string `json:"phone" validate:"required,phone" label:"Emergency contact phone"`
	Relationship string `json:"relationship" validate:"required" label:"Relationship"`
}

type VolunteerForm struct {
	FirstName         string           `json:"firstName" validate:"required" label:"First name"`
	LastName          string           `json:"lastName" validate:"required" label:"Last name"`
	Email             string           `json:"email" validate:"required,emailaddr" label:"Email"`
	Phone             string           `json:"phone" validate:"required,phone" label:"Phone"`
	DateOfBirth       string           `json:"dateOfBirth" validate:"required" label:"Date of birth"`
	Location          string           `json:"location" validate:"required" label:"Location"`
	Education         string           `json:"education" validate:"required" label:"Education"`
	CurrentOccupation string           `json:"currentOccupation" validate:"required" label:"Current occupation"`
	Skills            []string         `json:"skills" validate:"min=1" label:"Skill"`
	Interests         []string         `json:"interests" validate:"min=1" label:"Area of interest"`
	Motivation        string           `json:"motivation" validate:"required,min=50" label:"Motivation"`
	EmergencyContact  EmergencyContact `json:"emergencyContact"`
}

func (f *VolunteerForm) sender() (string, string) { return f.FirstName, f.Email }

type DonationForm struct {
	DonorType    string  `json:"donorType" validate:"required" label:"Donor type"`
	Name         string  `json:"name" validate:"required" label:"Name"`
	Email        string  `json:"email" validate:"required,emailaddr" label:"Email"`
	Phone        string  `json:"phone,omitempty" validate:"omitempty,phone" label:"Phone"`
	Amount       float64 `json:"amount" validate:"gt=0,lt=10000000" label:"Amount"`
	DonationType string  `json:"donationType" validate:"required" label:"Donation type"`
}

func (f *DonationForm) sender() (string, string) { return f.Name, f.Email }

type EventRegistrationForm struct {
	Name                 string `json:"name" validate:"required" label:"Name"`
	Email                string `json:"email" validate:"required,emailaddr" label:"Email"`
	Phone                string `json:"phone" validate:"required,phone" label:"Phone"`
	ParticipantType      string `json:"participantType" validate:"required" label:"Participant type"`
	NumberOfParticipants int    `json:"numberOfParticipants" validate:"gte=1,lte=50" label:"Number of participants"`
	HowDidYouHear        string `json:"howDidYouHear" validate:"required" label:"How did you hear about us"`
}

func (f *EventRegistrationForm) sender() (string, string) { return f.Name, f.Email }

type NewsletterForm struct {
	Email            string   `json:"email" validate:"required,emailaddr" label:"Email"`
	Interests        []string `json:"interests" validate:"min=1" label:"Interest"`
	SubscriptionType string   `json:"subscriptionType" validate:"required" label:"Subscription type"`
}

func (f *NewsletterForm) sender() (string, string) { return "", f.Email }

type FeedbackForm struct {
	Name      string `json:"name,omitempty" label:"Name"`
	Email     string `json:"email,omitempty" validate:"omitempty,emailaddr" label:"Email"`
	Anonymous bool   `json:"anonymous,omitempty"`
	Category  string `json:"category" validate:"required" label:"Category"`
	Subject   string `json:"subject" validate:"required" label:"Subject"`
	Message   string `json:"message" validate:"required,min=10" label:"Message"`
	Rating    int    `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5" label:"Rating"`
}

func (f *FeedbackForm) sender() (string, string) {
	if f.Anonymous {
		return "", ""
	}
	return f.Name, f.Email
}

func (f *FeedbackForm) check(r *inputval.Result) {
	if !f.Anonymous && f.Email == "" {
		r.Add("email", "required", "Email is required")
	}
}

// ErrUnknownFormType is returned by ParseFormType for names outside the
// catalog.
var ErrUnknownFormType = errors.New("forms: unknown form type")

// ParseFormType maps a name such as "program-inquiry" to its FormType.
func ParseFormType(name string) (models.FormType, error) {
	t := models.FormType(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := catalog[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormType, name)
	}
	return t, nil
}

package models

// Event is a community event or workshop.
type Event struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Date             string      `json:"date"`
	Time             string      `json:"time"`
	Location         string      `json:"location"`
	Type             string      `json:"type"`
	Participants     int         `json:"participants"` // expected participants
	Status           EventStatus `json:"status"`
	RegistrationOpen bool        `json:"registrationOpen"`
}

func (e Event) RecordID() string { return e.ID }

func (e Event) Clone() Event { return e }

// Normalized returns e with an empty or unknown status set to upcoming.
func (e Event) Normalized() Event {
	e.Status = orDefault(e.Status, EventUpcoming)
	return e
}

type EventPatch struct {
	Title            *string      `json:"title,omitempty"`
	Description      *string      `json:"description,omitempty"`
	Date             *string      `json:"date,omitempty"`
	Time             *string      `json:"time,omitempty"`
	Location         *string      `json:"location,omitempty"`
	Type             *string      `json:"type,omitempty"`
	Participants     *int         `json:"participants,omitempty"`
	Status           *EventStatus `json:"status,omitempty"`
	RegistrationOpen *bool        `json:"registrationOpen,omitempty"`
}

func (p EventPatch) Apply(e *Event) {
	setIf(&e.Title, p.Title)
	setIf(&e.Description, p.Description)
	setIf(&e.Date, p.Date)
	setIf(&e.Time, p.Time)
	setIf(&e.Location, p.Location)
	setIf(&e.Type, p.Type)
	setIf(&e.Participants, p.Participants)
	setEnumIf(&e.Status, p.Status)
	setIf(&e.RegistrationOpen, p.RegistrationOpen)
}

package models

// Testimonial is a participant story. Featured testimonials are shown on the
// home page.
type Testimonial struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Location string `json:"location"`
	Program  string `json:"program"`
	Role     string `json:"role"`
	Quote    string `json:"quote"`
	Story    string `json:"story"`
	Impact   string `json:"impact"`
	Image    string `json:"image"`
	Video    string `json:"video"`
	Featured bool   `json:"featured"`
}

func (t Testimonial) RecordID() string { return t.ID }

func (t Testimonial) Clone() Testimonial { return t }

type TestimonialPatch struct {
	Name     *string `json:"name,omitempty"`
	Age      *int    `json:"age,omitempty"`
	Location *string `json:"location,omitempty"`
	Program  *string `json:"program,omitempty"`
	Role     *string `json:"role,omitempty"`
	Quote    *string `json:"quote,omitempty"`
	Story    *string `json:"story,omitempty"`
	Impact   *string `json:"impact,omitempty"`
	Image    *string `json:"image,omitempty"`
	Video    *string `json:"video,omitempty"`
	Featured *bool   `json:"featured,omitempty"`
}

func (p TestimonialPatch) Apply(t *Testimonial) {
	setIf(&t.Name, p.Name)
	setIf(&t.Age, p.Age)
	setIf(&t.Location, p.Location)
	setIf(&t.Program, p.Program)
	setIf(&t.Role, p.Role)
	setIf(&t.Quote, p.Quote)
	setIf(&t.Story, p.Story)
	setIf(&t.Impact, p.Impact)
	setIf(&t.Image, p.Image)
	setIf(&t.Video, p.Video)
	setIf(&t.Featured, p.Featured)
}

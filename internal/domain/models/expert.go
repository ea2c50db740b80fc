package models

import "time"

// ExpertProfile is a business or expert listing in the public directory.
// Verified gates public visibility; it is set by an admin.
type ExpertProfile struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"businessName"`
	Services     string    `json:"services"`
	Location     string    `json:"location"`
	Image        string    `json:"image,omitempty"`
	Pricing      string    `json:"pricing,omitempty"`
	Description  string    `json:"description,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (e ExpertProfile) RecordID() string { return e.ID }

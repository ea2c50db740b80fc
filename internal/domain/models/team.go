// internal/domain/models/team.go
package models

import "slices"

// TeamMember is a staff or volunteer profile shown on the team page.
type TeamMember struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Department   string   `json:"department"`
	Bio          string   `json:"bio"`
	Achievements []string `json:"achievements"`
	Expertise    []string `json:"expertise"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Image        string   `json:"image"`
	Color        string   `json:"color"`
	IsActive     bool     `json:"isActive"`
	JoinDate     string   `json:"joinDate"`
}

// RecordID implements the id accessor used by the content store.
func (m TeamMember) RecordID() string { return m.ID }

// Clone returns a copy that shares no slices with m.
func (m TeamMember) Clone() TeamMember {
	m.Achievements = slices.Clone(m.Achievements)
	m.Expertise = slices.Clone(m.Expertise)
	return m
}

// TeamMemberPatch is a partial update; nil fields are left unchanged.
type TeamMemberPatch struct {
	Name         *string   `json:"name,omitempty"`
	Role         *string   `json:"role,omitempty"`
	Department   *string   `json:"department,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Achievements *[]string `json:"achievements,omitempty"`
	Expertise    *[]string `json:"expertise,omitempty"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Image        *string   `json:"image,omitempty"`
	Color        *string   `json:"color,omitempty"`
	IsActive     *bool     `json:"isActive,omitempty"`
	JoinDate     *string   `json:"joinDate,omitempty"`
}

// Apply merges the set fields of p over m.
func (p TeamMemberPatch) Apply(m *TeamMember) {
	setIf(&m.Name, p.Name)
	setIf(&m.Role, p.Role)
	setIf(&m.Department, p.Department)
	setIf(&m.Bio, p.Bio)
	setSliceIf(&m.Achievements, p.Achievements)
	setSliceIf(&m.Expertise, p.Expertise)
	setIf(&m.Email, p.Email)
	setIf(&m.Phone, p.Phone)
	setIf(&m.Image, p.Image)
	setIf(&m.Color, p.Color)
	setIf(&m.IsActive, p.IsActive)
	setIf(&m.JoinDate, p.JoinDate)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setSliceIf[T any](dst *[]T, v *[]T) {
	if v != nil {
		*dst = slices.Clone(*v)
	}
}

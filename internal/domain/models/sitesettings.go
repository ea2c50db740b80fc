// internal/domain/models/sitesettings.go
package models

// SiteSettings holds organization-wide details edited by admins.
// There is exactly one settings record; it has no id and cannot be deleted.
type SiteSettings struct {
	OrganizationName string      `json:"organizationName"`
	Tagline          string      `json:"tagline"`
	Description      string      `json:"description"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	Address          string      `json:"address"`
	SocialMedia      SocialLinks `json:"socialMedia"`
	Logo             string      `json:"logo"` // media reference
}

// SocialLinks are the organization's social media profile URLs.
type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	YouTube   string `json:"youtube"`
}

// HasLogo returns true if a logo has been set.
func (s *SiteSettings) HasLogo() bool {
	return s.Logo != ""
}

// SiteSettingsPatch is a shallow partial update. SocialMedia, when present,
// replaces the whole link set.
type SiteSettingsPatch struct {
	OrganizationName *string      `json:"organizationName,omitempty"`
	Tagline          *string      `json:"tagline,omitempty"`
	Description      *string      `json:"description,omitempty"`
	Email            *string      `json:"email,omitempty"`
	Phone            *string      `json:"phone,omitempty"`
	Address          *string      `json:"address,omitempty"`
	SocialMedia      *SocialLinks `json:"socialMedia,omitempty"`
	Logo             *string      `json:"logo,omitempty"`
}

func (p SiteSettingsPatch) Apply(s *SiteSettings) {
	setIf(&s.OrganizationName, p.OrganizationName)
	setIf(&s.Tagline, p.Tagline)
	setIf(&s.Description, p.Description)
	setIf(&s.Email, p.Email)
	setIf(&s.Phone, p.Phone)
	setIf(&s.Address, p.Address)
	setIf(&s.SocialMedia, p.SocialMedia)
	setIf(&s.Logo, p.Logo)
}

// DefaultOrganizationName is used when no settings have been saved.
const DefaultOrganizationName = "Tujitume Community Based Organization"

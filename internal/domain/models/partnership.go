package models

// Partnership is a funding, implementing, government or community partner.
type Partnership struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Category     PartnershipCategory `json:"category"`
	Type         string              `json:"type"`
	Period       string              `json:"period"` // e.g. "2021 - Present"
	Focus        string              `json:"focus"`
	Contribution string              `json:"contribution"`
	Impact       string              `json:"impact"`
	Logo         string              `json:"logo"`
	Website      string              `json:"website"`
	Status       PartnershipStatus   `json:"status"`
}

func (p Partnership) RecordID() string { return p.ID }

func (p Partnership) Clone() Partnership { return p }

// Normalized returns p with an empty or unknown category set to community
// and status set to active.
func (p Partnership) Normalized() Partnership {
	p.Category = orDefault(p.Category, PartnerCommunity)
	p.Status = orDefault(p.Status, PartnershipActive)
	return p
}

type PartnershipPatch struct {
	Name         *string              `json:"name,omitempty"`
	Category     *PartnershipCategory `json:"category,omitempty"`
	Type         *string              `json:"type,omitempty"`
	Period       *string              `json:"period,omitempty"`
	Focus        *string              `json:"focus,omitempty"`
	Contribution *string              `json:"contribution,omitempty"`
	Impact       *string              `json:"impact,omitempty"`
	Logo         *string              `json:"logo,omitempty"`
	Website      *string              `json:"website,omitempty"`
	Status       *PartnershipStatus   `json:"status,omitempty"`
}

func (p PartnershipPatch) Apply(dst *Partnership) {
	setIf(&dst.Name, p.Name)
	setEnumIf(&dst.Category, p.Category)
	setIf(&dst.Type, p.Type)
	setIf(&dst.Period, p.Period)
	setIf(&dst.Focus, p.Focus)
	setIf(&dst.Contribution, p.Contribution)
	setIf(&dst.Impact, p.Impact)
	setIf(&dst.Logo, p.Logo)
	setIf(&dst.Website, p.Website)
	setEnumIf(&dst.Status, p.Status)
}

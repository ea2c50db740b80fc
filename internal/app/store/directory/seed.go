package directory

import (
	"time"

	"github.com/dalemusser/tujitume/internal/domain/models"
)

// Seed returns the two demo listings used on first run. One is verified and
// one is awaiting approval.
func Seed(now time.Time) []models.ExpertProfile {
	now = now.UTC()
	return []models.ExpertProfile{
		{
			ID:           "1",
			BusinessName: "Amani Tailoring & Design",
			Services:     "Custom tailoring, school uniforms and alterations",
			Location:     "Kisumu Central",
			Pricing:      "From KES 500",
			Description:  "Youth-run tailoring workshop started by Tujitume bootcamp graduates.",
			Phone:        "+254 712 000 111",
			Verified:     true,
			CreatedAt:    now,
		},
		{
			ID:           "2",
			BusinessName: "Lakeside Solar Solutions",
			Services:     "Solar panel installation and repair",
			Location:     "Kondele, Kisumu",
			Pricing:      "Quotes on request",
			Description:  "Installation and maintenance of home solar systems.",
			Phone:        "+254 722 000 222",
			Verified:     false,
			CreatedAt:    now,
		},
	}
}

package directory

import (
	"strings"

	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
)

// Public returns the verified listings, the only ones fit for public display.
func Public(list []models.ExpertProfile) []models.ExpertProfile {
	out := []models.ExpertProfile{}
	for _, e := range list {
		if e.Verified {
			out = append(out, e)
		}
	}
	return out
}

// Search returns the listings whose business name, services or location
// contain query after case folding. An empty query matches all.
func Search(list []models.ExpertProfile, query string) []models.ExpertProfile {
	q := text.Fold(strings.TrimSpace(query))
	out := []models.ExpertProfile{}
	for _, e := range list {
		if q == "" ||
			strings.Contains(text.Fold(e.BusinessName), q) ||
			strings.Contains(text.Fold(e.Services), q) ||
			strings.Contains(text.Fold(e.Location), q) {
			out = append(out, e)
		}
	}
	return out
}

package content

import "github.com/dalemusser/tujitume/internal/domain/models"

// Counts is the set of totals shown on the admin dashboard.
type Counts struct {
	TeamMembers          int
	ActiveTeamMembers    int
	NewsArticles         int
	PublishedArticles    int
	Events               int
	UpcomingEvents       int
	Partnerships         int
	ActivePartnerships   int
	Testimonials         int
	FeaturedTestimonials int
}

// Counts returns the dashboard totals for the current state.
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var c Counts
	c.TeamMembers = len(s.data.TeamMembers)
	for _, m := range s.data.TeamMembers {
		if m.IsActive {
			c.ActiveTeamMembers++
		}
	}
	c.NewsArticles = len(s.data.NewsArticles)
	for _, a := range s.data.NewsArticles {
		if a.Status == models.ArticlePublished {
			c.PublishedArticles++
		}
	}
	c.Events = len(s.data.Events)
	for _, e := range s.data.Events {
		if e.Status == models.EventUpcoming {
			c.UpcomingEvents++
		}
	}
	c.Partnerships = len(s.data.Partnerships)
	for _, p := range s.data.Partnerships {
		if p.Status == models.PartnershipActive {
			c.ActivePartnerships++
		}
	}
	c.Testimonials = len(s.data.Testimonials)
	for _, t := range s.data.Testimonials {
		if t.Featured {
			c.FeaturedTestimonials++
		}
	}
	return c
}

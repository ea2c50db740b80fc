package testutil

import (
	"github.com/dalemusser/tujitume/internal/domain/models"
)

// TeamMember returns an active team member with the given name.
func TeamMember(name string) models.TeamMember {
	return models.TeamMember{
		Name:         name,
		Role:         "Program Officer",
		Department:   "Programs",
		Bio:          name + " coordinates youth programs.",
		Achievements: []string{"Trained 200 youth"},
		Expertise:    []string{"Mentorship"},
		Email:        "team@test.org",
		Phone:        "+254 700 000 000",
		Color:        "from-blue-500 to-blue-600",
		IsActive:     true,
		JoinDate:     "2023-01-15",
	}
}

// Article returns a news article with the given title and status.
func Article(title string, status models.ArticleStatus) models.NewsArticle {
	return models.NewsArticle{
		Title:    title,
		Excerpt:  "Excerpt for " + title,
		Content:  "<p>Body of " + title + "</p>",
		Category: "Community",
		Type:     "news",
		Author:   "Test Author",
		Date:     "2024-03-01",
		ReadTime: "3 min read",
		Tags:     []string{"youth"},
		Status:   status,
	}
}

// Event returns an event with the given title and status.
func Event(title string, status models.EventStatus) models.Event {
	return models.Event{
		Title:            title,
		Description:      "Description of " + title,
		Date:             "2024-06-01",
		Time:             "10:00 AM",
		Location:         "Kisumu",
		Type:             "workshop",
		Participants:     40,
		Status:           status,
		RegistrationOpen: status == models.EventUpcoming,
	}
}

// Partnership returns an active funding partnership.
func Partnership(name string) models.Partnership {
	return models.Partnership{
		Name:         name,
		Category:     models.PartnerFunding,
		Type:         "International NGO",
		Period:       "2022 - Present",
		Focus:        "Youth employment",
		Contribution: "Grant funding",
		Impact:       "500 youth reached",
		Website:      "https://example.org",
		Status:       models.PartnershipActive,
	}
}

// Testimonial returns a testimonial; featured controls home page placement.
func Testimonial(name string, featured bool) models.Testimonial {
	return models.Testimonial{
		Name:     name,
		Age:      24,
		Location: "Kisumu",
		Program:  "Youth Empowerment",
		Role:     "Participant",
		Quote:    "It changed my life.",
		Story:    "Story of " + name,
		Impact:   "Started a business",
		Featured: featured,
	}
}

// Expert returns an unverified directory listing.
func Expert(name string) models.ExpertProfile {
	return models.ExpertProfile{
		BusinessName: name,
		Services:     "Tailoring and design",
		Location:     "Kisumu",
		Phone:        "+254 711 111 111",
	}
}

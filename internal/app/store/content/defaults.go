package content

import "github.com/dalemusser/tujitume/internal/domain/models"

// Defaults returns the first-run content shown before anything is saved.
func Defaults() Snapshot {
	return Snapshot{
		TeamMembers: []models.TeamMember{
			{
				ID:           "1",
				Name:         "Grace Achieng",
				Role:         "Executive Director",
				Department:   "Leadership",
				Bio:          "Grace founded Tujitume to open economic opportunity for young people in Kisumu County.",
				Achievements: []string{"Founded Tujitume CBO in 2018", "Reached over 2,000 youth through skills programs"},
				Expertise:    []string{"Community development", "Youth empowerment", "Program design"},
				Email:        "grace@tujitume.org",
				Phone:        "+254 712 345 678",
				Color:        "from-blue-500 to-blue-600",
				IsActive:     true,
				JoinDate:     "2018-03-01",
			},
			{
				ID:           "2",
				Name:         "Brian Otieno",
				Role:         "Programs Coordinator",
				Department:   "Programs",
				Bio:          "Brian runs the vocational training and mentorship tracks.",
				Achievements: []string{"Launched the digital skills bootcamp"},
				Expertise:    []string{"Vocational training", "Mentorship"},
				Email:        "brian@tujitume.org",
				Phone:        "+254 723 456 789",
				Color:        "from-green-500 to-green-600",
				IsActive:     true,
				JoinDate:     "2019-07-15",
			},
		},
		NewsArticles: []models.NewsArticle{
			{
				ID:       "1",
				Title:    "Youth Skills Bootcamp Graduates Its Largest Cohort",
				Excerpt:  "Sixty young people completed twelve weeks of digital and entrepreneurship training.",
				Content:  "<p>Sixty young people completed twelve weeks of digital and entrepreneurship training this quarter.</p>",
				Category: "Programs",
				Type:     "news",
				Author:   "Tujitume Communications",
				Date:     "2024-02-20",
				ReadTime: "3 min read",
				Tags:     []string{"youth", "skills", "graduation"},
				Featured: true,
				Status:   models.ArticlePublished,
			},
		},
		Events: []models.Event{
			{
				ID:               "1",
				Title:            "Community Entrepreneurship Workshop",
				Description:      "A hands-on workshop on starting and running a small business.",
				Date:             "2024-07-12",
				Time:             "9:00 AM - 4:00 PM",
				Location:         "Tujitume Community Hall, Kisumu",
				Type:             "workshop",
				Participants:     50,
				Status:           models.EventUpcoming,
				RegistrationOpen: true,
			},
		},
		Partnerships: []models.Partnership{
			{
				ID:           "1",
				Name:         "Kisumu County Youth Office",
				Category:     models.PartnerGovernment,
				Type:         "County Government",
				Period:       "2020 - Present",
				Focus:        "Youth employment and training",
				Contribution: "Training venues and trainer stipends",
				Impact:       "500+ youth trained",
				Status:       models.PartnershipActive,
			},
		},
		Testimonials: []models.Testimonial{
			{
				ID:       "1",
				Name:     "Mercy Atieno",
				Age:      23,
				Location: "Kisumu",
				Program:  "Youth Skills Bootcamp",
				Role:     "Graduate",
				Quote:    "Tujitume gave me the skills and the confidence to start my own tailoring business.",
				Story:    "Mercy joined the bootcamp in 2022 and now employs two other young women.",
				Impact:   "Started a business employing two people",
				Featured: true,
			},
		},
		SiteSettings: models.SiteSettings{
			OrganizationName: models.DefaultOrganizationName,
			Tagline:          "Empowering Communities, Transforming Lives",
			Description:      "A community based organization creating opportunity for youth and women through skills, mentorship and enterprise.",
			Email:            "info@tujitume.org",
			Phone:            "+254 700 123 456",
			Address:          "Kisumu, Kenya",
			SocialMedia: models.SocialLinks{
				Facebook:  "https://facebook.com/tujitume",
				Twitter:   "https://twitter.com/tujitume",
				Instagram: "https://instagram.com/tujitume",
				LinkedIn:  "https://linkedin.com/company/tujitume",
				YouTube:   "https://youtube.com/@tujitume",
			},
		},
	}
}

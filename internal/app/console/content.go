package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dalemusser/tujitume/internal/app/bootstrap"
	"github.com/dalemusser/tujitume/internal/app/store/audit"
	"github.com/dalemusser/tujitume/internal/app/store/content"
	"github.com/dalemusser/tujitume/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/spf13/cobra"
)

type record interface {
	RecordID() string
}

// publicFilter is a list filter that needs no session, matching what the
// public site shows.
type publicFilter[T any] struct {
	flag  string
	usage string
	list  func(*content.Store) []T
}

// collection describes one content aggregate and how the console edits it.
// P is the aggregate's patch type.
type collection[T record, P any] struct {
	use       string
	singular  string
	aggregate string

	all    func(*content.Store) []T
	public publicFilter[T]
	get    func(*content.Store, string) (T, bool)
	add    func(*content.Store, context.Context, T) T
	update func(*content.Store, context.Context, string, P) models.Result
	remove func(*content.Store, context.Context, string) models.Result

	// prepare fills defaults, checks required fields and sanitizes rich
	// text before a new record reaches the store; cleanPatch sanitizes.
	prepare    func(*T) error
	cleanPatch func(*P)

	header []string
	row    func(T) []string
}

func (c collection[T, P]) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   c.use,
		Short: fmt.Sprintf("Manage %s", c.aggregate),
	}
	cmd.AddCommand(c.listCmd(), c.getCmd(), c.addCmd(), c.updateCmd(), c.deleteCmd())
	return cmd
}

func (c collection[T, P]) listCmd() *cobra.Command {
	var public, asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s", c.aggregate),
		Args:  cobra.NoArgs,
		RunE: withDeps(func(_ context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			var items []T
			if public {
				items = c.public.list(deps.Content)
			} else {
				if _, err := requireRole(deps, editors...); err != nil {
					return err
				}
				items = c.all(deps.Content)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				rows = append(rows, c.row(it))
			}
			return printTable(cmd.OutOrStdout(), c.header, rows)
		}),
	}
	cmd.Flags().BoolVar(&public, c.public.flag, false, c.public.usage)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func (c collection[T, P]) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Show one %s", c.singular),
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(_ context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			if _, err := requireRole(deps, editors...); err != nil {
				return err
			}
			v, ok := c.get(deps.Content, args[0])
			if !ok {
				return fmt.Errorf("%s %q not found", c.singular, args[0])
			}
			return printJSON(cmd.OutOrStdout(), v)
		}),
	}
}

func (c collection[T, P]) addCmd() *cobra.Command {
	var payload string
	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Add a %s", c.singular),
		Args:  cobra.NoArgs,
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			actor, err := requireRole(deps, editors...)
			if err != nil {
				return err
			}
			var v T
			if err := decodePayload(cmd, payload, &v); err != nil {
				return err
			}
			if c.prepare != nil {
				if err := c.prepare(&v); err != nil {
					return err
				}
			}
			created := c.add(deps.Content, ctx, v)
			deps.AuditLog.RecordChanged(ctx, actor, audit.EventRecordCreated, c.aggregate, created.RecordID(), true)
			return printJSON(cmd.OutOrStdout(), created)
		}),
	}
	cmd.Flags().StringVar(&payload, "json", "", "record as JSON (inline, @file or - for stdin)")
	return cmd
}

func (c collection[T, P]) updateCmd() *cobra.Command {
	var payload string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Change fields of a %s", c.singular),
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			actor, err := requireRole(deps, editors...)
			if err != nil {
				return err
			}
			var p P
			if err := decodePayload(cmd, payload, &p); err != nil {
				return err
			}
			if c.cleanPatch != nil {
				c.cleanPatch(&p)
			}
			res := c.update(deps.Content, ctx, args[0], p)
			deps.AuditLog.RecordChanged(ctx, actor, audit.EventRecordUpdated, c.aggregate, args[0], res == models.Found)
			if res == models.NotFound {
				return fmt.Errorf("%s %q not found", c.singular, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", c.singular, args[0])
			return nil
		}),
	}
	cmd.Flags().StringVar(&payload, "json", "", "fields to change as JSON (inline, @file or - for stdin)")
	return cmd
}

func (c collection[T, P]) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", c.singular),
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			actor, err := requireRole(deps, editors...)
			if err != nil {
				return err
			}
			res := c.remove(deps.Content, ctx, args[0])
			deps.AuditLog.RecordChanged(ctx, actor, audit.EventRecordDeleted, c.aggregate, args[0], res == models.Found)
			if res == models.NotFound {
				return fmt.Errorf("%s %q not found", c.singular, args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", c.singular, args[0])
			return nil
		}),
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Aggregates                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// Enum fields left empty would make the stored snapshot undecodable, so
// each aggregate defaults or requires them.
func errRequired(field string) error {
	return fmt.Errorf("%s is required", field)
}

func sanitizeRich(s *string) {
	if s != nil {
		*s = htmlsanitize.Sanitize(*s)
	}
}

func teamCollection() collection[models.TeamMember, models.TeamMemberPatch] {
	return collection[models.TeamMember, models.TeamMemberPatch]{
		use:       "team",
		singular:  "team member",
		aggregate: "team",
		all:       (*content.Store).TeamMembers,
		public: publicFilter[models.TeamMember]{
			flag:  "active",
			usage: "only active members (no login needed)",
			list: func(s *content.Store) []models.TeamMember {
				out := []models.TeamMember{}
				for _, m := range s.TeamMembers() {
					if m.IsActive {
						out = append(out, m)
					}
				}
				return out
			},
		},
		get:    (*content.Store).GetTeamMember,
		add:    (*content.Store).AddTeamMember,
		update: (*content.Store).UpdateTeamMember,
		remove: (*content.Store).DeleteTeamMember,
		prepare: func(m *models.TeamMember) error {
			if m.Name == "" {
				return errRequired("name")
			}
			sanitizeRich(&m.Bio)
			return nil
		},
		cleanPatch: func(p *models.TeamMemberPatch) { sanitizeRich(p.Bio) },
		header:     []string{"ID", "NAME", "ROLE", "DEPARTMENT", "ACTIVE"},
		row: func(m models.TeamMember) []string {
			return []string{m.ID, m.Name, m.Role, m.Department, yesNo(m.IsActive)}
		},
	}
}

func newsCollection() collection[models.NewsArticle, models.NewsArticlePatch] {
	return collection[models.NewsArticle, models.NewsArticlePatch]{
		use:       "news",
		singular:  "article",
		aggregate: "news",
		all:       (*content.Store).NewsArticles,
		public: publicFilter[models.NewsArticle]{
			flag:  "published",
			usage: "only published articles (no login needed)",
			list:  (*content.Store).PublishedArticles,
		},
		get:    (*content.Store).GetNewsArticle,
		add:    (*content.Store).AddNewsArticle,
		update: (*content.Store).UpdateNewsArticle,
		remove: (*content.Store).DeleteNewsArticle,
		prepare: func(a *models.NewsArticle) error {
			if a.Title == "" {
				return errRequired("title")
			}
			sanitizeRich(&a.Content)
			return nil
		},
		cleanPatch: func(p *models.NewsArticlePatch) { sanitizeRich(p.Content) },
		header:     []string{"ID", "TITLE", "STATUS", "DATE", "FEATURED"},
		row: func(a models.NewsArticle) []string {
			return []string{a.ID, a.Title, string(a.Status), a.Date, yesNo(a.Featured)}
		},
	}
}

func eventsCollection() collection[models.Event, models.EventPatch] {
	return collection[models.Event, models.EventPatch]{
		use:       "events",
		singular:  "event",
		aggregate: "events",
		all:       (*content.Store).Events,
		public: publicFilter[models.Event]{
			flag:  "upcoming",
			usage: "only upcoming events (no login needed)",
			list:  (*content.Store).UpcomingEvents,
		},
		get:    (*content.Store).GetEvent,
		add:    (*content.Store).AddEvent,
		update: (*content.Store).UpdateEvent,
		remove: (*content.Store).DeleteEvent,
		prepare: func(e *models.Event) error {
			if e.Title == "" {
				return errRequired("title")
			}
			sanitizeRich(&e.Description)
			return nil
		},
		cleanPatch: func(p *models.EventPatch) { sanitizeRich(p.Description) },
		header:     []string{"ID", "TITLE", "DATE", "STATUS", "PARTICIPANTS", "REGISTRATION"},
		row: func(e models.Event) []string {
			return []string{e.ID, e.Title, e.Date, string(e.Status), strconv.Itoa(e.Participants), yesNo(e.RegistrationOpen)}
		},
	}
}

func partnershipsCollection() collection[models.Partnership, models.PartnershipPatch] {
	return collection[models.Partnership, models.PartnershipPatch]{
		use:       "partnerships",
		singular:  "partnership",
		aggregate: "partnerships",
		all:       (*content.Store).Partnerships,
		public: publicFilter[models.Partnership]{
			flag:  "active",
			usage: "only active partnerships (no login needed)",
			list: func(s *content.Store) []models.Partnership {
				out := []models.Partnership{}
				for _, p := range s.Partnerships() {
					if p.Status == models.PartnershipActive {
						out = append(out, p)
					}
				}
				return out
			},
		},
		get:    (*content.Store).GetPartnership,
		add:    (*content.Store).AddPartnership,
		update: (*content.Store).UpdatePartnership,
		remove: (*content.Store).DeletePartnership,
		prepare: func(p *models.Partnership) error {
			if p.Name == "" {
				return errRequired("name")
			}
			if p.Category == "" {
				return errRequired("category")
			}
			sanitizeRich(&p.Contribution)
			sanitizeRich(&p.Impact)
			return nil
		},
		cleanPatch: func(p *models.PartnershipPatch) {
			sanitizeRich(p.Contribution)
			sanitizeRich(p.Impact)
		},
		header: []string{"ID", "NAME", "CATEGORY", "PERIOD", "STATUS"},
		row: func(p models.Partnership) []string {
			return []string{p.ID, p.Name, string(p.Category), p.Period, string(p.Status)}
		},
	}
}

func testimonialsCollection() collection[models.Testimonial, models.TestimonialPatch] {
	return collection[models.Testimonial, models.TestimonialPatch]{
		use:       "testimonials",
		singular:  "testimonial",
		aggregate: "testimonials",
		all:       (*content.Store).Testimonials,
		public: publicFilter[models.Testimonial]{
			flag:  "featured",
			usage: "only featured testimonials (no login needed)",
			list:  (*content.Store).FeaturedTestimonials,
		},
		get:    (*content.Store).GetTestimonial,
		add:    (*content.Store).AddTestimonial,
		update: (*content.Store).UpdateTestimonial,
		remove: (*content.Store).DeleteTestimonial,
		prepare: func(t *models.Testimonial) error {
			if t.Name == "" {
				return errRequired("name")
			}
			sanitizeRich(&t.Story)
			sanitizeRich(&t.Impact)
			return nil
		},
		cleanPatch: func(p *models.TestimonialPatch) {
			sanitizeRich(p.Story)
			sanitizeRich(p.Impact)
		},
		header: []string{"ID", "NAME", "PROGRAM", "LOCATION", "FEATURED"},
		row: func(t models.Testimonial) []string {
			return []string{t.ID, t.Name, t.Program, t.Location, yesNo(t.Featured)}
		},
	}
}

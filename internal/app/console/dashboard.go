package console

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dalemusser/tujitume/internal/app/bootstrap"
	"github.com/dalemusser/tujitume/internal/app/store/audit"
	"github.com/dalemusser/tujitume/internal/app/store/directory"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show content and submission totals",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			if _, err := requireRole(deps, editors...); err != nil {
				return err
			}
			c := deps.Content.Counts()
			experts := deps.Directory.Experts()
			st := deps.Forms.Stats(ctx)
			pair := func(n, of int) string { return fmt.Sprintf("%d / %d", n, of) }
			rows := [][]string{
				{"Team members (active)", pair(c.ActiveTeamMembers, c.TeamMembers)},
				{"News articles (published)", pair(c.PublishedArticles, c.NewsArticles)},
				{"Events (upcoming)", pair(c.UpcomingEvents, c.Events)},
				{"Partnerships (active)", pair(c.ActivePartnerships, c.Partnerships)},
				{"Testimonials (featured)", pair(c.FeaturedTestimonials, c.Testimonials)},
				{"Directory listings (verified)", pair(len(directory.Public(experts)), len(experts))},
				{"Form submissions (pending)", pair(st.ByStatus[models.SubmissionPending], st.Total)},
			}
			return printTable(cmd.OutOrStdout(), []string{"ITEM", "COUNT"}, rows)
		}),
	}
}

func newAuditCmd() *cobra.Command {
	var limit int
	var eventType string
	var failedSince time.Duration
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent audit events, newest first",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			if _, err := requireRole(deps, managers...); err != nil {
				return err
			}
			var events []audit.Event
			var err error
			if failedSince > 0 {
				events, err = deps.Audit.GetFailedLogins(ctx, time.Now().Add(-failedSince), limit)
			} else {
				events, err = deps.Audit.Query(ctx, audit.QueryFilter{EventType: eventType, Limit: limit})
			}
			if err != nil {
				return fmt.Errorf("load audit events: %w", err)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), events)
			}
			rows := make([][]string, 0, len(events))
			for _, e := range events {
				who := e.ActorID
				if who == "" {
					who = e.UserID
				}
				rows = append(rows, []string{
					e.Timestamp.Format(time.RFC3339),
					e.EventType,
					strconv.FormatBool(e.Success),
					who,
					e.FailureReason,
				})
			}
			return printTable(cmd.OutOrStdout(), []string{"TIME", "EVENT", "SUCCESS", "ADMIN", "REASON"}, rows)
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of events")
	cmd.Flags().StringVar(&eventType, "type", "", "only events of this type, e.g. login_failed")
	cmd.Flags().DurationVar(&failedSince, "failed-logins", 0, "only failed logins within this window, e.g. 24h")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

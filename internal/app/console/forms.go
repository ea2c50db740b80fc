package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dalemusser/tujitume/internal/app/bootstrap"
	"github.com/dalemusser/tujitume/internal/app/system/forms"
	"github.com/dalemusser/tujitume/internal/app/system/paging"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/spf13/cobra"
)

// errNotAccepted marks a submission the gateway turned down. The response
// with its field messages has already been printed.
var errNotAccepted = errors.New("submission was not accepted")

func newFormsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Submit public forms and review submissions",
	}
	cmd.AddCommand(newFormsSubmitCmd(), newFormsListCmd(), newFormsStatusCmd(), newFormsStatsCmd())
	return cmd
}

func newFormsSubmitCmd() *cobra.Command {
	var payload string
	cmd := &cobra.Command{
		Use:   "submit <type>",
		Short: "Submit a public form (no login needed)",
		Long:  `Submit a public form. <type> is one of: contact, program-inquiry, partnership, volunteer, donation, event-registration, newsletter, feedback.`,
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			formType, err := forms.ParseFormType(args[0])
			if err != nil {
				return err
			}
			var data map[string]any
			if err := decodePayload(cmd, payload, &data); err != nil {
				return err
			}
			resp := deps.Forms.Submit(ctx, formType, data)
			if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if !resp.Success {
				return errNotAccepted
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&payload, "json", "", "form fields as JSON (inline, @file or - for stdin)")
	return cmd
}

func newFormsListCmd() *cobra.Command {
	var typeName string
	var start, size int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List form submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			if _, err := requireRole(deps, editors...); err != nil {
				return err
			}
			var list []models.FormSubmission
			if typeName == "" {
				list = deps.Forms.Submissions(ctx)
			} else {
				formType, err := forms.ParseFormType(typeName)
				if err != nil {
					return err
				}
				list = deps.Forms.SubmissionsByType(ctx, formType)
			}
			page, rng := paging.Page(list, start, size)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), page)
			}
			rows := make([][]string, 0, len(page))
			for _, s := range page {
				rows = append(rows, []string{
					s.ID,
					string(s.FormType),
					string(s.Status),
					s.SubmittedAt.Format("2006-01-02 15:04"),
					submitterOf(s),
				})
			}
			if err := printTable(cmd.OutOrStdout(), []string{"ID", "TYPE", "STATUS", "SUBMITTED", "FROM"}, rows); err != nil {
				return err
			}
			printRange(cmd.OutOrStdout(), rng)
			return nil
		}),
	}
	cmd.Flags().StringVar(&typeName, "type", "", "only submissions of this form type")
	cmd.Flags().IntVar(&start, "start", 1, "1-based index of the first submission to show")
	cmd.Flags().IntVar(&size, "page-size", paging.PageSize, "submissions per page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

// submitterOf picks a display name for a submission's sender.
func submitterOf(s models.FormSubmission) string {
	for _, k := range []string{"email", "name", "contactPerson", "firstName"} {
		if v, ok := s.Data[k].(string); ok && v != "" {
			return v
		}
	}
	return "-"
}

func newFormsStatusCmd() *cobra.Command {
	var notes string
	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Set the review status of a submission",
		Long:  `Set the review status of a submission. <status> is one of: pending, reviewed, responded, archived.`,
		Args:  cobra.ExactArgs(2),
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			actor, err := requireRole(deps, editors...)
			if err != nil {
				return err
			}
			var status models.SubmissionStatus
			if err := status.UnmarshalText([]byte(args[1])); err != nil {
				return err
			}
			if !deps.Forms.UpdateStatus(ctx, actor, args[0], status, notes) {
				return fmt.Errorf("submission %q not updated; check that the id exists", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submission %s is now %s\n", args[0], status)
			return nil
		}),
	}
	cmd.Flags().StringVar(&notes, "notes", "", "admin notes to keep with the submission")
	return cmd
}

func newFormsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count submissions by status and form type",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			if _, err := requireRole(deps, editors...); err != nil {
				return err
			}
			st := deps.Forms.Stats(ctx)
			rows := [][]string{{"total", "", strconv.Itoa(st.Total)}}
			for _, s := range models.SubmissionStatuses() {
				rows = append(rows, []string{"status", string(s), strconv.Itoa(st.ByStatus[s])})
			}
			for _, t := range models.FormTypes() {
				rows = append(rows, []string{"type", string(t), strconv.Itoa(st.ByType[t])})
			}
			return printTable(cmd.OutOrStdout(), []string{"GROUP", "NAME", "COUNT"}, rows)
		}),
	}
}

package console

import (
	"context"
	"fmt"

	"github.com/dalemusser/tujitume/internal/app/bootstrap"
	"github.com/dalemusser/tujitume/internal/app/store/audit"
	"github.com/dalemusser/tujitume/internal/app/store/directory"
	"github.com/dalemusser/tujitume/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tujitume/internal/app/system/inputval"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/spf13/cobra"
)

func newExpertsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experts",
		Short: "Manage the expert and business directory",
	}
	cmd.AddCommand(newExpertsListCmd(), newExpertsAddCmd(), newExpertsRemoveCmd(), newExpertsVerifyCmd())
	return cmd
}

func newExpertsListCmd() *cobra.Command {
	var public, asJSON bool
	var query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List directory listings",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(_ context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			list := deps.Directory.Experts()
			if public {
				list = directory.Public(list)
			} else if _, err := requireRole(deps, editors...); err != nil {
				return err
			}
			list = directory.Search(list, query)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), list)
			}
			rows := make([][]string, 0, len(list))
			for _, e := range list {
				rows = append(rows, []string{e.ID, e.BusinessName, e.Services, e.Location, yesNo(e.Verified)})
			}
			return printTable(cmd.OutOrStdout(), []string{"ID", "BUSINESS", "SERVICES", "LOCATION", "VERIFIED"}, rows)
		}),
	}
	cmd.Flags().BoolVar(&public, "public", false, "only verified listings (no login needed)")
	cmd.Flags().StringVar(&query, "search", "", "match business name, services or location")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newExpertsAddCmd() *cobra.Command {
	var payload string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a directory listing",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			actor, err := requireRole(deps, editors...)
			if err != nil {
				return err
			}
			var e models.ExpertProfile
			if err := decodePayload(cmd, payload, &e); err != nil {
				return err
			}
			if e.BusinessName == "" {
				return fmt.Errorf("businessName is required")
			}
			if e.Phone != "" && !inputval.IsValidPhone(e.Phone) {
				return fmt.Errorf("phone: %q is not a valid phone number", e.Phone)
			}
			e.Description = htmlsanitize.Sanitize(e.Description)
			created := deps.Directory.AddExpert(ctx, e)
			deps.AuditLog.ExpertChanged(ctx, actor, audit.EventExpertAdded, created.ID, true)
			return printJSON(cmd.OutOrStdout(), created)
		}),
	}
	cmd.Flags().StringVar(&payload, "json", "", "listing as JSON (inline, @file or - for stdin)")
	return cmd
}

func newExpertsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a directory listing",
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			actor, err := requireRole(deps, editors...)
			if err != nil {
				return err
			}
			res := deps.Directory.RemoveExpert(ctx, args[0])
			deps.AuditLog.ExpertChanged(ctx, actor, audit.EventExpertRemoved, args[0], res == models.Found)
			if res == models.NotFound {
				return fmt.Errorf("listing %q not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed listing %s\n", args[0])
			return nil
		}),
	}
}

func newExpertsVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Toggle whether a listing is verified",
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			actor, err := requireRole(deps, editors...)
			if err != nil {
				return err
			}
			res := deps.Directory.ToggleVerified(ctx, args[0])
			deps.AuditLog.ExpertChanged(ctx, actor, audit.EventExpertVerifiedToggled, args[0], res == models.Found)
			if res == models.NotFound {
				return fmt.Errorf("listing %q not found", args[0])
			}
			e, _ := deps.Directory.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Listing %s verified: %s\n", e.ID, yesNo(e.Verified))
			return nil
		}),
	}
}

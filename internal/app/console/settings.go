package console

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dalemusser/tujitume/internal/app/bootstrap"
	"github.com/dalemusser/tujitume/internal/app/system/inputval"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the organization settings",
	}
	cmd.AddCommand(newSettingsShowCmd(), newSettingsUpdateCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the site settings",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(_ context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			return printJSON(cmd.OutOrStdout(), deps.Content.SiteSettings())
		}),
	}
}

func newSettingsUpdateCmd() *cobra.Command {
	var payload string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Merge fields into the site settings",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			actor, err := requireRole(deps, managers...)
			if err != nil {
				return err
			}
			var p models.SiteSettingsPatch
			if err := decodePayload(cmd, payload, &p); err != nil {
				return err
			}
			if err := checkSettings(p); err != nil {
				return err
			}
			sanitizeRich(p.Description)
			updated := deps.Content.UpdateSiteSettings(ctx, p)
			deps.AuditLog.SettingsUpdated(ctx, actor, changedFields(p))
			return printJSON(cmd.OutOrStdout(), updated)
		}),
	}
	cmd.Flags().StringVar(&payload, "json", "", "fields to change as JSON (inline, @file or - for stdin)")
	return cmd
}

// checkSettings rejects contact details and links that the site could not
// use. Empty values clear a field and are always accepted.
func checkSettings(p models.SiteSettingsPatch) error {
	if p.Email != nil && *p.Email != "" && !inputval.IsValidEmail(*p.Email) {
		return fmt.Errorf("email: %q is not a valid email address", *p.Email)
	}
	if p.Phone != nil && *p.Phone != "" && !inputval.IsValidPhone(*p.Phone) {
		return fmt.Errorf("phone: %q is not a valid phone number", *p.Phone)
	}
	if p.SocialMedia != nil {
		links := map[string]string{
			"facebook":  p.SocialMedia.Facebook,
			"twitter":   p.SocialMedia.Twitter,
			"instagram": p.SocialMedia.Instagram,
			"linkedin":  p.SocialMedia.LinkedIn,
			"youtube":   p.SocialMedia.YouTube,
		}
		for _, name := range slices.Sorted(maps.Keys(links)) {
			if u := links[name]; u != "" && !inputval.IsValidHTTPURL(u) {
				return fmt.Errorf("socialMedia.%s: %q is not an http(s) URL", name, u)
			}
		}
	}
	return nil
}

// changedFields lists the JSON names of the fields set in p.
func changedFields(p models.SiteSettingsPatch) string {
	b, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	var set map[string]json.RawMessage
	if err := json.Unmarshal(b, &set); err != nil {
		return ""
	}
	return strings.Join(slices.Sorted(maps.Keys(set)), ",")
}

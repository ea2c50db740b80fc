package console

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/dalemusser/tujitume/internal/app/bootstrap"
	"github.com/dalemusser/tujitume/internal/app/store/media"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/spf13/cobra"
)

func newMediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Store images for content records",
	}
	cmd.AddCommand(newMediaPutCmd(), newMediaDeleteCmd())
	return cmd
}

func newMediaPutCmd() *cobra.Command {
	var contentType string
	var asLogo bool
	cmd := &cobra.Command{
		Use:   "put <file>",
		Short: "Upload an image and print its reference",
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			roles := editors
			if asLogo {
				roles = managers
			}
			actor, err := requireRole(deps, roles...)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if contentType == "" {
				contentType = mime.TypeByExtension(filepath.Ext(args[0]))
			}
			ref, err := media.Upload(ctx, deps.Media, filepath.Base(args[0]), f, contentType, time.Now())
			if err != nil {
				return err
			}
			deps.AuditLog.MediaUploaded(ctx, actor, ref)

			if asLogo {
				deps.Content.UpdateSiteSettings(ctx, models.SiteSettingsPatch{Logo: &ref})
				deps.AuditLog.SettingsUpdated(ctx, actor, "logo")
			}
			fmt.Fprintln(cmd.OutOrStdout(), ref)
			return nil
		}),
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "MIME type (default: from the file extension)")
	cmd.Flags().BoolVar(&asLogo, "logo", false, "also set the upload as the site logo")
	return cmd
}

func newMediaDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a stored image by key",
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			if _, err := requireRole(deps, editors...); err != nil {
				return err
			}
			if err := deps.Media.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		}),
	}
}

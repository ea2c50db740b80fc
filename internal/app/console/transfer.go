package console

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dalemusser/tujitume/internal/app/bootstrap"
	"github.com/dalemusser/tujitume/internal/app/store/content"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every content collection and the settings as JSON",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(_ context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			if _, err := requireRole(deps, editors...); err != nil {
				return err
			}
			snap := deps.Content.Snapshot()
			if out == "" {
				return printJSON(cmd.OutOrStdout(), snap)
			}
			var buf bytes.Buffer
			if err := printJSON(&buf, snap); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported content to %s\n", out)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all content with an exported snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error {
			actor, err := requireRole(deps, managers...)
			if err != nil {
				return err
			}
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var snap content.Snapshot
			dec := json.NewDecoder(bytes.NewReader(b))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&snap); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			if err := deps.Content.Import(ctx, snap); err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			deps.AuditLog.ContentImported(ctx, actor, args[0])
			c := deps.Content.Counts()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d team members, %d articles, %d events, %d partnerships, %d testimonials\n",
				c.TeamMembers, c.NewsArticles, c.Events, c.Partnerships, c.Testimonials)
			return nil
		}),
	}
}

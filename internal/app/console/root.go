// Package console is the admin command line for the Tujitume site. It plays
// the presentation layer: every command reads and writes through the stores,
// the form gateway and the session manager built by bootstrap.
package console

import (
	"context"
	"errors"

	"github.com/dalemusser/tujitume/internal/app/bootstrap"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/spf13/cobra"
)

var (
	// ErrNotSignedIn is returned by admin commands when no session exists.
	ErrNotSignedIn = errors.New("not signed in; run \"tujitume login\" first")
	// ErrForbidden is returned when the signed-in admin lacks the role.
	ErrForbidden = errors.New("the signed-in account cannot perform this action")
)

// editors may manage content, listings, submissions and media.
var editors = []models.Role{models.RoleSuperAdmin, models.RoleAdmin, models.RoleEditor}

// managers may change site settings and replace content wholesale.
var managers = []models.Role{models.RoleSuperAdmin, models.RoleAdmin}

type runFunc func(ctx context.Context, cmd *cobra.Command, args []string, deps *bootstrap.Deps) error

// withDeps wraps fn so it runs inside the bootstrap lifecycle.
func withDeps(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return bootstrap.Run(cmd.Context(), cmd.Flags(), func(ctx context.Context, deps *bootstrap.Deps) error {
			return fn(ctx, cmd, args, deps)
		})
	}
}

// requireRole returns the signed-in admin when it holds one of roles.
func requireRole(deps *bootstrap.Deps, roles ...models.Role) (models.AdminUser, error) {
	u, ok := deps.Session.CurrentUser()
	if !ok {
		return models.AdminUser{}, ErrNotSignedIn
	}
	if !deps.Session.HasRole(roles...) {
		return models.AdminUser{}, ErrForbidden
	}
	return u, nil
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tujitume",
		Short:         "Tujitume site content console",
		Long:          `Manage the Tujitume community organization site: content, expert directory, form submissions and media.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bootstrap.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		teamCollection().command(),
		newsCollection().command(),
		eventsCollection().command(),
		partnershipsCollection().command(),
		testimonialsCollection().command(),
		newSettingsCmd(),
		newExpertsCmd(),
		newFormsCmd(),
		newMediaCmd(),
		newExportCmd(),
		newImportCmd(),
		newDashboardCmd(),
		newAuditCmd(),
	)
	return root
}

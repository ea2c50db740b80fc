package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/tujitume/internal/app/bootstrap"
	"github.com/spf13/cobra"
)

// errLoginFailed carries no detail; the reason lives in the audit trail.
var errLoginFailed = errors.New("invalid email or password")

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a site administrator",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			if !deps.Session.Login(ctx, email, password) {
				return errLoginFailed
			}
			u, _ := deps.Session.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", u.Email, u.Role)
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(ctx context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			deps.Session.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		}),
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in administrator",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(_ context.Context, cmd *cobra.Command, _ []string, deps *bootstrap.Deps) error {
			u, ok := deps.Session.CurrentUser()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", u.Name, u.Email, u.Role)
			return nil
		}),
	}
}

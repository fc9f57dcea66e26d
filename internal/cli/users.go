package cli

import (
	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all accounts (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			application.Session.Restore(cmd.Context())
			return application.Users.List(cmd.Context())
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Start the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return application.RunDashboard(cmd.Context())
		},
	}
}

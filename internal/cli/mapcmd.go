package cli

import (
	"github.com/spf13/cobra"
)

func newMapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map",
		Short: "Show the team map with rosters and weather",
		RunE: func(cmd *cobra.Command, args []string) error {
			application.Session.Restore(cmd.Context())
			return application.MapView.Show(cmd.Context())
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtside/courtside/internal/view"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the server is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			up := application.Client.CheckHealth(cmd.Context())
			if application.View.JSONOutput() {
				application.View.Print(map[string]bool{"healthy": up})
			} else if up {
				application.View.Notify(view.LevelSuccess, "server is healthy")
			} else {
				application.View.Notify(view.LevelError, "server is not responding")
			}
			if !up {
				return fmt.Errorf("server is not responding")
			}
			return nil
		},
	}
}

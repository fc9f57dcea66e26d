package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtside/courtside/internal/model"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Player listing and management commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersGetCmd())
	cmd.AddCommand(newPlayersAddCmd())
	cmd.AddCommand(newPlayersEditCmd())
	cmd.AddCommand(newPlayersDeleteCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of players",
		RunE: func(cmd *cobra.Command, args []string) error {
			application.Session.Restore(cmd.Context())
			return application.Players.ChangePage(cmd.Context(), page)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")

	return cmd
}

func newPlayersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a single player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("ID must be a number")
			}
			application.Session.Restore(cmd.Context())
			return application.Players.Get(cmd.Context(), id)
		},
	}
}

// playerFlags registers the player form fields as flags and returns a loader
// that merges changed flags over a prefill.
func playerFlags(cmd *cobra.Command) func(prefill model.PlayerInput) (model.PlayerInput, error) {
	var (
		name, team, position, born string
		height, weight             float64
	)

	cmd.Flags().StringVar(&name, "name", "", "Player name")
	cmd.Flags().StringVar(&team, "team", "", "Team name")
	cmd.Flags().StringVar(&position, "position", "", "Position: PG, SG, SF, PF or C")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in meters")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kg")
	cmd.Flags().StringVar(&born, "born", "", "Birth date (YYYY-MM-DD)")

	return func(prefill model.PlayerInput) (model.PlayerInput, error) {
		input := prefill
		if cmd.Flags().Changed("name") {
			input.Name = name
		}
		if cmd.Flags().Changed("team") {
			input.Team = team
		}
		if cmd.Flags().Changed("position") {
			input.Position = position
		}
		if cmd.Flags().Changed("height") {
			input.HeightM = height
		}
		if cmd.Flags().Changed("weight") {
			input.WeightKg = weight
		}
		if cmd.Flags().Changed("born") {
			d, err := time.Parse("2006-01-02", born)
			if err != nil {
				return input, fmt.Errorf("--born must look like 2001-08-15")
			}
			input.BirthDate = d
		}
		return input, nil
	}
}

func newPlayersAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a player",
	}
	load := playerFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		input, err := load(model.PlayerInput{})
		if err != nil {
			return err
		}
		application.Session.Restore(cmd.Context())
		application.Players.StartAdd()
		return application.Players.Submit(cmd.Context(), input)
	}

	return cmd
}

func newPlayersEditCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a player from the listed page",
		Args:  cobra.ExactArgs(1),
	}
	load := playerFlags(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "Page the player is on")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("ID must be a number")
		}

		ctx := cmd.Context()
		application.Session.Restore(ctx)
		if err := application.Players.ChangePage(ctx, page); err != nil {
			return err
		}
		prefill, err := application.Players.StartEdit(id)
		if err != nil {
			return err
		}
		input, err := load(prefill)
		if err != nil {
			return err
		}
		return application.Players.Submit(ctx, input)
	}

	return cmd
}

func newPlayersDeleteCmd() *cobra.Command {
	var page int
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a player from the listed page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("ID must be a number")
			}

			ctx := cmd.Context()
			application.Session.Restore(ctx)
			if err := application.Players.ChangePage(ctx, page); err != nil {
				return err
			}
			return application.Players.Delete(ctx, id, yes)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page the player is on")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

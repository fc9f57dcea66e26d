package mapview

import (
	"context"
	"errors"
	"log/slog"

	"github.com/courtside/courtside/internal/apiclient"
	"github.com/courtside/courtside/internal/model"
	"github.com/courtside/courtside/internal/services/session"
	"github.com/courtside/courtside/internal/view"
)

// Controller renders the team map: every team with usable coordinates gets a
// marker tiered by roster size, and an aggregate line closes the view.
type Controller struct {
	client  *apiclient.Client
	session *session.Manager
	view    *view.View
	logger  *slog.Logger
}

func New(client *apiclient.Client, sess *session.Manager, v *view.View, logger *slog.Logger) *Controller {
	return &Controller{
		client:  client,
		session: sess,
		view:    v,
		logger:  logger.With(slog.String("component", "mapview")),
	}
}

// Show fetches team locations and renders the map.
func (c *Controller) Show(ctx context.Context) error {
	if !c.session.IsAuthenticated() {
		c.view.Notify(view.LevelError, model.ErrNotAuthenticated.Error())
		return model.ErrNotAuthenticated
	}

	c.view.ShowLoading("loading team map")
	locations, err := c.client.TeamLocations(ctx)
	if err != nil {
		return c.handle(ctx, err)
	}

	if len(locations) == 0 {
		c.view.Notify(view.LevelInfo, "no teams found")
		c.view.RenderMapStats(0, 0)
		return nil
	}

	markers := make([]view.TeamMarker, 0, len(locations))
	totalPlayers := 0
	for _, loc := range locations {
		totalPlayers += loc.PlayersCount
		if !loc.HasCoordinates() {
			c.logger.Warn("skipping team without coordinates", slog.String("team", loc.Team))
			continue
		}
		tier, color := rosterTier(loc.PlayersCount)
		markers = append(markers, view.TeamMarker{Location: loc, Tier: tier, Color: color})
	}

	c.view.RenderTeamMap(markers)
	// Stats cover the whole fetched list, including teams that could not
	// be placed on the map.
	c.view.RenderMapStats(len(locations), totalPlayers)
	return nil
}

// rosterTier buckets a team by how many registered players it has.
func rosterTier(count int) (tier, color string) {
	switch {
	case count >= 5:
		return "A", "red"
	case count >= 3:
		return "B", "orange"
	case count >= 1:
		return "C", "green"
	default:
		return "D", "blue"
	}
}

func (c *Controller) handle(ctx context.Context, err error) error {
	if errors.Is(err, model.ErrUnauthorized) {
		c.session.Expire(ctx)
		return err
	}

	var connErr *apiclient.ConnectionError
	if errors.As(err, &connErr) {
		c.view.Notify(view.LevelError, connErr.Error())
		return err
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		c.view.Notify(view.LevelError, apiErr.Detail)
		return err
	}

	c.logger.Error("unexpected failure", slog.String("error", err.Error()))
	c.view.Notify(view.LevelError, "something went wrong, please try again")
	return err
}

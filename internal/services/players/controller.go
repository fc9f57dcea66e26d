package players

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/courtside/courtside/internal/apiclient"
	"github.com/courtside/courtside/internal/events"
	"github.com/courtside/courtside/internal/model"
	"github.com/courtside/courtside/internal/services/session"
	"github.com/courtside/courtside/internal/view"
)

// PageSize is how many players one page shows.
const PageSize = 10

// Controller drives the paginated player listing and the add/edit/delete
// flows. It caches the current page so edits and deletes resolve against
// what the user is actually looking at, and resets itself when the session
// ends.
type Controller struct {
	client  *apiclient.Client
	session *session.Manager
	view    *view.View
	logger  *slog.Logger

	page      int
	cached    []model.Player
	hasNext   bool
	editingID int
}

func New(client *apiclient.Client, sess *session.Manager, bus *events.Bus, v *view.View, logger *slog.Logger) *Controller {
	c := &Controller{
		client:  client,
		session: sess,
		view:    v,
		logger:  logger.With(slog.String("component", "players")),
		page:    1,
	}
	bus.On(events.AuthLogout, func(any) { c.reset() })
	return c
}

// Page returns the 1-based page the controller is on.
func (c *Controller) Page() int {
	return c.page
}

// HasNext reports whether the last load looked like more pages exist.
// A page that is exactly full reads as "more available" even when it is the
// last one; the next page then comes back empty.
func (c *Controller) HasNext() bool {
	return c.hasNext
}

// Cached returns the players from the last successful load.
func (c *Controller) Cached() []model.Player {
	return c.cached
}

// Load fetches and renders the current page.
func (c *Controller) Load(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	c.view.ShowLoading("loading players")
	skip := (c.page - 1) * PageSize
	page, err := c.client.Players(ctx, skip, PageSize)
	if err != nil {
		return c.handle(ctx, err)
	}

	c.cached = page
	c.hasNext = len(page) == PageSize
	c.view.RenderPlayers(page, c.page, c.hasNext)
	return nil
}

// Get fetches and renders a single player by id, straight from the backend.
func (c *Controller) Get(ctx context.Context, id int) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	player, err := c.client.Player(ctx, id)
	if err != nil {
		return c.handle(ctx, err)
	}
	c.view.RenderPlayer(player)
	return nil
}

// ChangePage moves to another page and reloads. Pages below 1 are ignored.
func (c *Controller) ChangePage(ctx context.Context, page int) error {
	if page < 1 {
		return nil
	}
	c.page = page
	return c.Load(ctx)
}

// Next advances one page when the current load suggested more exist.
func (c *Controller) Next(ctx context.Context) error {
	if !c.hasNext {
		return nil
	}
	return c.ChangePage(ctx, c.page+1)
}

// Prev steps back one page.
func (c *Controller) Prev(ctx context.Context) error {
	return c.ChangePage(ctx, c.page-1)
}

// StartAdd puts the controller into create mode.
func (c *Controller) StartAdd() {
	c.editingID = 0
}

// StartEdit resolves a player from the cached page and puts the controller
// into edit mode, returning the current values as the form prefill. Players
// outside the visible page cannot be edited.
func (c *Controller) StartEdit(id int) (model.PlayerInput, error) {
	for _, p := range c.cached {
		if p.ID == id {
			c.editingID = id
			return model.PlayerInput{
				Name:      p.Name,
				Team:      p.Team,
				Position:  p.Position,
				HeightM:   p.HeightM,
				WeightKg:  p.WeightKg,
				BirthDate: p.BirthDate,
			}, nil
		}
	}
	c.view.Notify(view.LevelError, model.ErrPlayerNotCached.Error())
	return model.PlayerInput{}, model.ErrPlayerNotCached
}

// EditingID returns the id being edited, or 0 in create mode.
func (c *Controller) EditingID() int {
	return c.editingID
}

// Submit validates the form and either creates a new player or updates the
// one being edited, then reloads the page so the listing reflects the
// change.
func (c *Controller) Submit(ctx context.Context, input model.PlayerInput) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	if err := Validate(input, time.Now()); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			c.view.Notify(view.LevelError, vErr.Message)
		}
		return err
	}

	if c.editingID != 0 {
		updated, err := c.client.UpdatePlayer(ctx, c.editingID, input)
		if err != nil {
			return c.handle(ctx, err)
		}
		c.editingID = 0
		c.view.Notify(view.LevelSuccess, fmt.Sprintf("%s updated", updated.Name))
		return c.Load(ctx)
	}

	created, err := c.client.CreatePlayer(ctx, input)
	if err != nil {
		return c.handle(ctx, err)
	}
	c.view.Notify(view.LevelSuccess, fmt.Sprintf("%s added", created.Name))
	return c.Load(ctx)
}

// Delete asks for confirmation by name and removes the player. The player
// must be on the cached page. Force skips the prompt.
func (c *Controller) Delete(ctx context.Context, id int, force bool) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	var target *model.Player
	for i := range c.cached {
		if c.cached[i].ID == id {
			target = &c.cached[i]
			break
		}
	}
	if target == nil {
		c.view.Notify(view.LevelError, model.ErrPlayerNotCached.Error())
		return model.ErrPlayerNotCached
	}

	if !force && !c.view.Confirm(fmt.Sprintf("Delete %q? This cannot be undone.", target.Name)) {
		return nil
	}

	if err := c.client.DeletePlayer(ctx, id); err != nil {
		return c.handle(ctx, err)
	}
	c.view.Notify(view.LevelSuccess, fmt.Sprintf("%s deleted", target.Name))
	return c.Load(ctx)
}

func (c *Controller) reset() {
	c.page = 1
	c.cached = nil
	c.hasNext = false
	c.editingID = 0
}

func (c *Controller) requireAuth() error {
	if !c.session.IsAuthenticated() {
		c.view.Notify(view.LevelError, model.ErrNotAuthenticated.Error())
		return model.ErrNotAuthenticated
	}
	return nil
}

// handle maps API failures to user feedback. An expired session tears the
// whole session down, which resets this controller through the bus.
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

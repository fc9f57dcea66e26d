package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/courtside/courtside/internal/apiclient"
	"github.com/courtside/courtside/internal/model"
	"github.com/courtside/courtside/internal/services/session"
	"github.com/courtside/courtside/internal/view"
)

// Controller renders the account views: the admin-only user listing and the
// caller's own profile.
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
		logger:  logger.With(slog.String("component", "users")),
	}
}

// List fetches and renders every account. The backend rejects non-admin
// callers; that rejection is surfaced as-is.
func (c *Controller) List(ctx context.Context) error {
	if !c.session.IsAuthenticated() {
		c.view.Notify(view.LevelError, model.ErrNotAuthenticated.Error())
		return model.ErrNotAuthenticated
	}

	accounts, err := c.client.Users(ctx)
	if err != nil {
		return c.handle(ctx, err)
	}
	c.view.RenderUsers(accounts)
	return nil
}

// Profile fetches and renders the account behind the current token.
func (c *Controller) Profile(ctx context.Context) error {
	if !c.session.IsAuthenticated() {
		c.view.Notify(view.LevelError, model.ErrNotAuthenticated.Error())
		return model.ErrNotAuthenticated
	}

	account, err := c.client.Profile(ctx)
	if err != nil {
		return c.handle(ctx, err)
	}

	if c.view.JSONOutput() {
		c.view.Print(account)
		return nil
	}
	status := "inactive"
	if account.IsActive {
		status = "active"
	}
	c.view.Notify(view.LevelInfo, fmt.Sprintf("Signed in as %s (%s, %s)", account.Username, account.RoleName(), status))
	return nil
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

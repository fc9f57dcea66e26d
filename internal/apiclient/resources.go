package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/courtside/courtside/internal/model"
)

// credentials is the login/register payload.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. Unauthenticated by nature.
func (c *Client) Login(ctx context.Context, username, password string) (model.TokenGrant, error) {
	var grant model.TokenGrant
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{Username: username, Password: password}, &grant, false)
	return grant, err
}

// Register creates a new account. Does not log the user in.
func (c *Client) Register(ctx context.Context, username, password string) (model.UserAccount, error) {
	var created model.UserAccount
	err := c.do(ctx, http.MethodPost, "/auth/register", credentials{Username: username, Password: password}, &created, false)
	return created, err
}

// Profile returns the account behind the current token.
func (c *Client) Profile(ctx context.Context) (model.UserAccount, error) {
	var user model.UserAccount
	err := c.get(ctx, "/auth/profile", &user)
	return user, err
}

// Players fetches one page of players.
func (c *Client) Players(ctx context.Context, skip, limit int) ([]model.Player, error) {
	var players []model.Player
	err := c.get(ctx, fmt.Sprintf("/players/?skip=%d&limit=%d", skip, limit), &players)
	return players, err
}

// Player fetches a single player by id.
func (c *Client) Player(ctx context.Context, id int) (model.Player, error) {
	var player model.Player
	err := c.get(ctx, fmt.Sprintf("/players/%d", id), &player)
	return player, err
}

// CreatePlayer adds a new player record.
func (c *Client) CreatePlayer(ctx context.Context, input model.PlayerInput) (model.Player, error) {
	var player model.Player
	err := c.do(ctx, http.MethodPost, "/players/", input, &player, true)
	return player, err
}

// UpdatePlayer replaces an existing player record.
func (c *Client) UpdatePlayer(ctx context.Context, id int, input model.PlayerInput) (model.Player, error) {
	var player model.Player
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/players/%d", id), input, &player, true)
	return player, err
}

// DeletePlayer removes a player record.
func (c *Client) DeletePlayer(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/players/%d", id), nil, nil, true)
}

// Users lists every account. Admin-only on the backend side.
func (c *Client) Users(ctx context.Context) ([]model.UserAccount, error) {
	var users []model.UserAccount
	err := c.get(ctx, "/users/all", &users)
	return users, err
}

// TeamLocations fetches the map view payload.
func (c *Client) TeamLocations(ctx context.Context) ([]model.TeamLocation, error) {
	var locations []model.TeamLocation
	err := c.get(ctx, "/nba-map/teams-locations", &locations)
	return locations, err
}

// CheckHealth probes the unauthenticated liveness endpoint. All failures
// collapse into false; this is advisory only.
func (c *Client) CheckHealth(ctx context.Context) bool {
	url := strings.TrimSuffix(c.baseURL, "/api/v1") + "/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

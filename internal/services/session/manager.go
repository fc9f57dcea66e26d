package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/courtside/courtside/internal/apiclient"
	"github.com/courtside/courtside/internal/events"
	"github.com/courtside/courtside/internal/model"
	"github.com/courtside/courtside/internal/storage"
	"github.com/courtside/courtside/internal/view"
)

const minPasswordLength = 6

// Manager owns the authentication lifecycle: restoring a persisted session,
// logging in and out, and registration. It is the single writer of the
// session keys in the state store; everything else observes auth changes
// through the event bus.
type Manager struct {
	client *apiclient.Client
	store  storage.Store
	bus    *events.Bus
	view   *view.View
	logger *slog.Logger

	token string
	user  *model.UserInfo
}

func New(client *apiclient.Client, store storage.Store, bus *events.Bus, v *view.View, logger *slog.Logger) *Manager {
	return &Manager{
		client: client,
		store:  store,
		bus:    bus,
		view:   v,
		logger: logger.With(slog.String("component", "session")),
	}
}

// Restore loads a previously persisted session, if any. A partial record
// (token without user, or the reverse) counts as no session.
func (m *Manager) Restore(ctx context.Context) {
	var token string
	var user model.UserInfo

	hasToken := m.store.Get(ctx, storage.TokenKey, &token)
	hasUser := m.store.Get(ctx, storage.UserKey, &user)

	if !hasToken || !hasUser || token == "" {
		m.view.ShowAuthSection()
		return
	}

	m.token = token
	m.user = &user
	m.view.ShowPlayersSection()
	m.bus.Dispatch(events.AuthLogin, events.LoginDetail{Username: user.Username})
	m.logger.Debug("session restored", slog.String("username", user.Username))
}

// Login exchanges credentials for a token and persists the session.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return m.fail("please fill in all fields")
	}

	grant, err := m.client.Login(ctx, username, password)
	if err != nil {
		return m.fail(userMessage(err))
	}

	user := model.UserInfo{Username: username, TokenType: grant.TokenType}
	m.store.Set(ctx, storage.TokenKey, grant.AccessToken)
	m.store.Set(ctx, storage.UserKey, user)
	m.token = grant.AccessToken
	m.user = &user

	m.view.Notify(view.LevelSuccess, fmt.Sprintf("Welcome, %s!", username))
	m.view.ShowPlayersSection()
	m.bus.Dispatch(events.AuthLogin, events.LoginDetail{Username: username})
	return nil
}

// Register creates an account. The caller stays anonymous and must log in
// explicitly afterwards.
func (m *Manager) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return m.fail("please fill in all fields")
	}
	if len(password) < minPasswordLength {
		return m.fail(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if _, err := m.client.Register(ctx, username, password); err != nil {
		return m.fail(userMessage(err))
	}

	m.view.Notify(view.LevelSuccess, "Account created! You can now log in.")
	m.view.ShowAuthSection()
	return nil
}

// Logout drops the session from memory and storage, then announces it.
// Subscribers run synchronously so dependent state is cleared before the
// next prompt.
func (m *Manager) Logout(ctx context.Context) {
	m.teardown(ctx)
	m.view.Notify(view.LevelInfo, "Signed out.")
}

// Expire handles a session the backend has already rejected: same teardown
// as a logout, different message.
func (m *Manager) Expire(ctx context.Context) {
	m.teardown(ctx)
	m.view.Notify(view.LevelWarning, model.ErrUnauthorized.Error())
}

func (m *Manager) teardown(ctx context.Context) {
	m.token = ""
	m.user = nil
	m.store.Remove(ctx, storage.TokenKey)
	m.store.Remove(ctx, storage.UserKey)
	m.view.ShowAuthSection()
	m.bus.Dispatch(events.AuthLogout, nil)
}

// IsAuthenticated reports whether a session is active in this process.
func (m *Manager) IsAuthenticated() bool {
	return m.token != ""
}

// CurrentUser returns the signed-in user, or nil.
func (m *Manager) CurrentUser() *model.UserInfo {
	return m.user
}

// Token returns the active bearer token, or "".
func (m *Manager) Token() string {
	return m.token
}

func (m *Manager) fail(msg string) error {
	m.view.Notify(view.LevelError, msg)
	return errors.New(msg)
}

// userMessage maps client errors onto the message shown to the user.
func userMessage(err error) string {
	var connErr *apiclient.ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Error()
	}
	if errors.Is(err, model.ErrUnauthorized) {
		return "incorrect username or password"
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}

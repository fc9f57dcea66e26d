package app

import (
	"io"
	"log/slog"

	"github.com/courtside/courtside/internal/apiclient"
	"github.com/courtside/courtside/internal/events"
	"github.com/courtside/courtside/internal/services/mapview"
	"github.com/courtside/courtside/internal/services/players"
	"github.com/courtside/courtside/internal/services/session"
	"github.com/courtside/courtside/internal/services/users"
	"github.com/courtside/courtside/internal/storage"
	"github.com/courtside/courtside/internal/view"
)

// Config carries everything needed to assemble an App.
type Config struct {
	BaseURL string
	Store   storage.Store
	Format  string
	In      io.Reader
	Out     io.Writer
	ErrOut  io.Writer
	Logger  *slog.Logger
}

// App wires the client, the view and the controllers together. One App
// serves both the one-shot commands and the interactive dashboard.
type App struct {
	Bus     *events.Bus
	Client  *apiclient.Client
	View    *view.View
	Session *session.Manager
	Players *players.Controller
	MapView *mapview.Controller
	Users   *users.Controller
	Logger  *slog.Logger
}

// New assembles the full controller graph.
func New(cfg Config) *App {
	bus := events.New()
	v := view.New(cfg.Out, cfg.ErrOut, cfg.In, cfg.Format)
	client := apiclient.New(cfg.BaseURL, cfg.Store, cfg.Logger)
	sess := session.New(client, cfg.Store, bus, v, cfg.Logger)

	return &App{
		Bus:     bus,
		Client:  client,
		View:    v,
		Session: sess,
		Players: players.New(client, sess, bus, v, cfg.Logger),
		MapView: mapview.New(client, sess, v, cfg.Logger),
		Users:   users.New(client, sess, v, cfg.Logger),
		Logger:  cfg.Logger,
	}
}

package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/courtside/courtside/internal/view"
)

// DefaultHealthInterval is how often the dashboard re-probes the backend.
const DefaultHealthInterval = 30 * time.Second

// healthPoller keeps an eye on the backend's liveness endpoint while a
// session is active. It is purely advisory: a failed probe warns the user
// but blocks nothing.
type healthPoller struct {
	app      *App
	interval time.Duration
	logger   *slog.Logger

	// nil until the first probe, so the first result always reports.
	lastUp *bool
}

func newHealthPoller(app *App, interval time.Duration) *healthPoller {
	return &healthPoller{
		app:      app,
		interval: interval,
		logger:   app.Logger.With(slog.String("component", "health")),
	}
}

// run probes immediately and then on every tick until ctx is done.
func (p *healthPoller) run(ctx context.Context) {
	p.probe(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

// probe checks the backend once. Only state changes are reported, so a dead
// backend does not warn on every tick.
func (p *healthPoller) probe(ctx context.Context) {
	if !p.app.Session.IsAuthenticated() {
		return
	}

	up := p.app.Client.CheckHealth(ctx)
	changed := p.lastUp == nil || *p.lastUp != up
	p.lastUp = &up

	if !changed {
		return
	}
	if up {
		p.logger.Debug("backend healthy")
		return
	}
	p.logger.Warn("backend health check failed")
	p.app.View.Notify(view.LevelWarning, "the server is not responding, some actions may fail")
}

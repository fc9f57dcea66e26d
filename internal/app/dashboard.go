package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/courtside/courtside/internal/events"
	"github.com/courtside/courtside/internal/model"
	"github.com/courtside/courtside/internal/view"
)

const dashboardHelp = `Commands:
  login            sign in
  register         create an account
  list             show the current page of players
  next / prev      move between pages
  page N           jump to page N
  add              add a player
  edit ID          edit a player from the current page
  delete ID        delete a player from the current page
  users            list all accounts (admin only)
  map              show the team map
  refresh          reload the current page
  whoami           show the signed-in user
  logout           sign out
  help             show this help
  quit             leave the dashboard`

// RunDashboard starts the interactive loop: restore the session, keep an eye
// on backend health, and read commands until quit or EOF.
func (a *App) RunDashboard(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Whenever a session starts, in this process or restored from disk,
	// the player listing loads.
	a.Bus.On(events.AuthLogin, func(any) {
		_ = a.Players.Load(ctx)
	})

	a.Session.Restore(ctx)

	go newHealthPoller(a, DefaultHealthInterval).run(ctx)

	for {
		fmt.Fprint(a.View.Out(), "courtside> ")
		line, ok := a.View.ReadLine()
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		a.runCommand(ctx, fields)
	}
}

// runCommand executes one dashboard command. A panic in a handler is
// contained so a single bad command cannot take the whole loop down.
func (a *App) runCommand(ctx context.Context, fields []string) {
	defer func() {
		if r := recover(); r != nil {
			a.Logger.Error("command panicked",
				slog.String("command", fields[0]),
				slog.Any("panic", r))
			a.View.Notify(view.LevelError, "something went wrong, please try again")
		}
	}()

	switch fields[0] {
	case "help":
		fmt.Fprintln(a.View.Out(), dashboardHelp)
	case "login":
		a.promptLogin(ctx)
	case "register":
		a.promptRegister(ctx)
	case "list", "refresh":
		_ = a.Players.Load(ctx)
	case "next":
		_ = a.Players.Next(ctx)
	case "prev":
		_ = a.Players.Prev(ctx)
	case "page":
		if len(fields) < 2 {
			a.View.Notify(view.LevelError, "usage: page N")
			return
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			a.View.Notify(view.LevelError, "usage: page N")
			return
		}
		_ = a.Players.ChangePage(ctx, n)
	case "add":
		a.promptAdd(ctx)
	case "edit":
		a.promptEdit(ctx, fields)
	case "delete":
		if len(fields) < 2 {
			a.View.Notify(view.LevelError, "usage: delete ID")
			return
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			a.View.Notify(view.LevelError, "usage: delete ID")
			return
		}
		_ = a.Players.Delete(ctx, id, false)
	case "users":
		_ = a.Users.List(ctx)
	case "map":
		_ = a.MapView.Show(ctx)
	case "whoami":
		if user := a.Session.CurrentUser(); user != nil {
			a.View.Notify(view.LevelInfo, fmt.Sprintf("Signed in as %s", user.Username))
		} else {
			a.View.Notify(view.LevelInfo, "Not signed in.")
		}
	case "logout":
		a.Session.Logout(ctx)
	default:
		a.View.Notify(view.LevelError, fmt.Sprintf("unknown command %q, try 'help'", fields[0]))
	}
}

func (a *App) promptLogin(ctx context.Context) {
	username, ok := a.View.Prompt("Username")
	if !ok {
		return
	}
	password, ok := a.View.Prompt("Password")
	if !ok {
		return
	}
	_ = a.Session.Login(ctx, strings.TrimSpace(username), password)
}

func (a *App) promptRegister(ctx context.Context) {
	username, ok := a.View.Prompt("Username")
	if !ok {
		return
	}
	password, ok := a.View.Prompt("Password (min 6 characters)")
	if !ok {
		return
	}
	_ = a.Session.Register(ctx, strings.TrimSpace(username), password)
}

func (a *App) promptAdd(ctx context.Context) {
	a.Players.StartAdd()
	input, ok := a.promptPlayerForm(model.PlayerInput{}, false)
	if !ok {
		return
	}
	_ = a.Players.Submit(ctx, input)
}

func (a *App) promptEdit(ctx context.Context, fields []string) {
	if len(fields) < 2 {
		a.View.Notify(view.LevelError, "usage: edit ID")
		return
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		a.View.Notify(view.LevelError, "usage: edit ID")
		return
	}

	prefill, err := a.Players.StartEdit(id)
	if err != nil {
		return
	}
	input, ok := a.promptPlayerForm(prefill, true)
	if !ok {
		return
	}
	_ = a.Players.Submit(ctx, input)
}

// promptPlayerForm walks the player fields one prompt at a time. When
// editing, an empty answer keeps the current value shown in the label.
func (a *App) promptPlayerForm(prefill model.PlayerInput, editing bool) (model.PlayerInput, bool) {
	input := prefill

	answer, ok := a.promptField("Name", prefill.Name, editing)
	if !ok {
		return input, false
	}
	if answer != "" {
		input.Name = answer
	}

	answer, ok = a.promptField("Team", prefill.Team, editing)
	if !ok {
		return input, false
	}
	if answer != "" {
		input.Team = answer
	}

	positions := strings.Join(model.Positions(), "/")
	answer, ok = a.promptField("Position ("+positions+")", prefill.Position, editing)
	if !ok {
		return input, false
	}
	if answer != "" {
		input.Position = strings.ToUpper(answer)
	}

	answer, ok = a.promptField("Height in meters", formatFloat(prefill.HeightM), editing)
	if !ok {
		return input, false
	}
	if answer != "" {
		h, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			a.View.Notify(view.LevelError, "height must be a number")
			return input, false
		}
		input.HeightM = h
	}

	answer, ok = a.promptField("Weight in kg", formatFloat(prefill.WeightKg), editing)
	if !ok {
		return input, false
	}
	if answer != "" {
		w, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			a.View.Notify(view.LevelError, "weight must be a number")
			return input, false
		}
		input.WeightKg = w
	}

	birthLabel := "Birth date (YYYY-MM-DD)"
	birthPrefill := ""
	if !prefill.BirthDate.IsZero() {
		birthPrefill = prefill.BirthDate.Format("2006-01-02")
	}
	answer, ok = a.promptField(birthLabel, birthPrefill, editing)
	if !ok {
		return input, false
	}
	if answer != "" {
		d, err := time.Parse("2006-01-02", answer)
		if err != nil {
			a.View.Notify(view.LevelError, "birth date must look like 2001-08-15")
			return input, false
		}
		input.BirthDate = d
	}

	return input, true
}

func (a *App) promptField(label, current string, editing bool) (string, bool) {
	if editing && current != "" {
		label = fmt.Sprintf("%s [%s]", label, current)
	}
	answer, ok := a.View.Prompt(label)
	return strings.TrimSpace(answer), ok
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package view

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/courtside/courtside/internal/model"
)

// Notification levels.
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// Section names for the mutually exclusive top-level views.
const (
	SectionAuth    = "auth"
	SectionPlayers = "players"
)

// TeamMarker is a team location annotated with its roster-size tier, ready to
// render.
type TeamMarker struct {
	Location model.TeamLocation
	Tier     string
	Color    string
}

// View mediates all terminal output: section switching, notifications (the
// toast analog), confirmation prompts (the modal analog) and the rendering of
// players, users and the team map. It holds no domain state beyond which
// section is active.
type View struct {
	out     io.Writer
	errOut  io.Writer
	in      *bufio.Reader
	format  string
	section string
}

// New creates a view writing to out/errOut and reading confirmations from in.
// Format is "text" or "json".
func New(out, errOut io.Writer, in io.Reader, format string) *View {
	return &View{
		out:    out,
		errOut: errOut,
		in:     bufio.NewReader(in),
		format: format,
	}
}

// Out returns the primary output writer, for callers that print directly.
func (v *View) Out() io.Writer {
	return v.out
}

// ShowAuthSection switches to the anonymous view.
func (v *View) ShowAuthSection() {
	if v.section == SectionAuth {
		return
	}
	v.section = SectionAuth
	if v.format != "json" {
		fmt.Fprintln(v.out, "-- Signed out. Use 'login' or 'register' to continue. --")
	}
}

// ShowPlayersSection switches to the authenticated view.
func (v *View) ShowPlayersSection() {
	if v.section == SectionPlayers {
		return
	}
	v.section = SectionPlayers
	if v.format != "json" {
		fmt.Fprintln(v.out, "-- Signed in. --")
	}
}

// Section returns the currently active section.
func (v *View) Section() string {
	return v.section
}

// Notify shows a one-line user-facing notification. A new notification simply
// replaces the previous line of output, which is as close as a terminal gets
// to replacing a toast.
func (v *View) Notify(level, msg string) {
	if v.format == "json" {
		data, _ := json.Marshal(map[string]string{"level": level, "message": msg})
		if level == LevelError {
			fmt.Fprintln(v.errOut, string(data))
		} else {
			fmt.Fprintln(v.out, string(data))
		}
		return
	}

	switch level {
	case LevelError:
		fmt.Fprintf(v.errOut, "Error: %s\n", msg)
	case LevelWarning:
		fmt.Fprintf(v.out, "Warning: %s\n", msg)
	case LevelSuccess:
		fmt.Fprintf(v.out, "OK: %s\n", msg)
	default:
		fmt.Fprintln(v.out, msg)
	}
}

// ShowLoading prints a progress line for a long-running operation.
func (v *View) ShowLoading(msg string) {
	if v.format != "json" {
		fmt.Fprintf(v.out, "... %s\n", msg)
	}
}

// ReadLine reads one line of user input with the trailing newline trimmed.
// Returns false at EOF. All interactive reads go through the view so that
// prompts and confirmations share one buffered reader.
func (v *View) ReadLine() (string, bool) {
	line, err := v.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Prompt prints a label and reads the answer.
func (v *View) Prompt(label string) (string, bool) {
	fmt.Fprintf(v.out, "%s: ", label)
	return v.ReadLine()
}

// Confirm shows a confirmation prompt and blocks until the user answers.
// Only an explicit yes confirms; anything else, including EOF, declines.
func (v *View) Confirm(msg string) bool {
	fmt.Fprintf(v.out, "%s [y/N]: ", msg)
	line, err := v.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// Print renders arbitrary data as indented JSON, for --output json.
func (v *View) Print(data any) {
	enc := json.NewEncoder(v.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

// JSONOutput reports whether the view is in JSON mode.
func (v *View) JSONOutput() bool {
	return v.format == "json"
}

// RenderPlayers shows one page of players plus the pagination footer.
func (v *View) RenderPlayers(players []model.Player, page int, hasNext bool) {
	if v.format == "json" {
		v.Print(map[string]any{"players": players, "page": page, "has_next": hasNext})
		return
	}

	if len(players) == 0 {
		fmt.Fprintln(v.out, "No players registered. Add the first one to get started.")
		return
	}

	for _, p := range players {
		v.playerCard(p)
	}

	teams := make(map[string]struct{})
	for _, p := range players {
		teams[p.Team] = struct{}{}
	}
	fmt.Fprintf(v.out, "%d players on this page across %d teams\n", len(players), len(teams))

	next := ""
	if hasNext {
		next = " (more available)"
	}
	fmt.Fprintf(v.out, "Page %d%s\n", page, next)
}

// RenderPlayer shows a single player card.
func (v *View) RenderPlayer(p model.Player) {
	if v.format == "json" {
		v.Print(p)
		return
	}
	v.playerCard(p)
}

func (v *View) playerCard(p model.Player) {
	fmt.Fprintf(v.out, "#%-4d %s (%s)\n", p.ID, p.Name, p.Team)
	fmt.Fprintf(v.out, "      %s | %.2fm | %.0fkg | born %s | added %s\n",
		p.Position, p.HeightM, p.WeightKg,
		p.BirthDate.Format("2006-01-02"), p.CreatedAt.Format("2006-01-02"))
}

// RenderUsers shows the admin user listing. Stored hashes are truncated for
// display and never shown in full.
func (v *View) RenderUsers(users []model.UserAccount) {
	if v.format == "json" {
		v.Print(users)
		return
	}

	if len(users) == 0 {
		fmt.Fprintln(v.out, "No users found.")
		return
	}

	fmt.Fprintf(v.out, "%-4s %-20s %-33s %-6s %-8s %s\n", "ID", "USERNAME", "PASSWORD (HASH)", "ROLE", "STATUS", "CREATED")
	for _, u := range users {
		status := "inactive"
		if u.IsActive {
			status = "active"
		}
		fmt.Fprintf(v.out, "%-4d %-20s %-33s %-6s %-8s %s\n",
			u.ID, u.Username, truncateHash(u.Password), u.RoleName(), status, u.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintf(v.out, "Total users: %d\n", len(users))
}

// RenderTeamMap draws the marker list with per-team popup blocks.
func (v *View) RenderTeamMap(markers []TeamMarker) {
	if v.format == "json" {
		v.Print(markers)
		return
	}

	for _, m := range markers {
		loc := m.Location
		fmt.Fprintf(v.out, "[%s] %s - %s, %s (%.4f, %.4f)\n",
			m.Tier, loc.Team, loc.City, loc.State, loc.Latitude, loc.Longitude)
		fmt.Fprint(v.out, teamPopup(loc))
	}
}

// RenderMapStats shows the aggregate line under the map.
func (v *View) RenderMapStats(teams, players int) {
	if v.format == "json" {
		v.Print(map[string]int{"teams": teams, "players": players})
		return
	}
	fmt.Fprintf(v.out, "Teams: %d | Players: %d\n", teams, players)
}

// teamPopup builds the indented detail block for one team: stadium, weather
// snapshot and up to five roster names with an overflow count.
func teamPopup(loc model.TeamLocation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "      Stadium: %s\n", loc.Stadium)

	if w := loc.Weather; w != nil {
		fmt.Fprintf(&b, "      Weather: %s %.1f°C, %s (feels like %.1f°C)\n",
			tempEmoji(w.Temperature), w.Temperature, w.Description, w.FeelsLike)
		fmt.Fprintf(&b, "               humidity %d%% | wind %.1f km/h | clouds %d%%\n",
			w.Humidity, w.WindSpeed, w.Clouds)
	}

	if loc.PlayersCount == 1 {
		fmt.Fprintf(&b, "      1 player:\n")
	} else {
		fmt.Fprintf(&b, "      %d players:\n", loc.PlayersCount)
	}

	if len(loc.Players) == 0 {
		fmt.Fprintf(&b, "        (no players registered)\n")
		return b.String()
	}

	const maxRoster = 5
	shown := loc.Players
	if len(shown) > maxRoster {
		shown = shown[:maxRoster]
	}
	for _, name := range shown {
		fmt.Fprintf(&b, "        - %s\n", name)
	}
	if extra := len(loc.Players) - maxRoster; extra > 0 {
		fmt.Fprintf(&b, "        ... and %d more\n", extra)
	}
	return b.String()
}

// tempEmoji buckets a temperature into the same bands the weather popup has
// always used.
func tempEmoji(celsius float64) string {
	switch {
	case celsius > 30:
		return "🥵"
	case celsius > 25:
		return "☀️"
	case celsius > 15:
		return "🌤️"
	case celsius > 5:
		return "🌥️"
	default:
		return "🥶"
	}
}

func truncateHash(hash string) string {
	if len(hash) <= 30 {
		return hash
	}
	return hash[:30] + "..."
}

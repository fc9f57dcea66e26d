package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/courtside/courtside/internal/model"
)

func newTestView(format string, input string) (*View, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return New(out, errOut, strings.NewReader(input), format), out, errOut
}

func TestSectionsAreMutuallyExclusive(t *testing.T) {
	v, out, _ := newTestView("text", "")

	v.ShowAuthSection()
	assert.Equal(t, SectionAuth, v.Section())

	v.ShowPlayersSection()
	assert.Equal(t, SectionPlayers, v.Section())

	// Re-showing the active section prints nothing new.
	before := out.Len()
	v.ShowPlayersSection()
	assert.Equal(t, before, out.Len())
}

func TestNotifyRoutesErrorsToStderr(t *testing.T) {
	v, out, errOut := newTestView("text", "")

	v.Notify(LevelError, "something broke")
	v.Notify(LevelSuccess, "all good")

	assert.Contains(t, errOut.String(), "Error: something broke")
	assert.NotContains(t, out.String(), "something broke")
	assert.Contains(t, out.String(), "OK: all good")
}

func TestConfirmAcceptsOnlyExplicitYes(t *testing.T) {
	for input, want := range map[string]bool{
		"y\n":    true,
		"Y\n":    true,
		"yes\n":  true,
		"n\n":    false,
		"\n":     false,
		"nope\n": false,
		"":       false,
	} {
		v, _, _ := newTestView("text", input)
		assert.Equal(t, want, v.Confirm("Delete?"), "input %q", input)
	}
}

func TestRenderPlayersEmptyState(t *testing.T) {
	v, out, _ := newTestView("text", "")

	v.RenderPlayers(nil, 1, false)

	assert.Contains(t, out.String(), "No players registered")
}

func TestRenderPlayersStatsCountDistinctTeams(t *testing.T) {
	v, out, _ := newTestView("text", "")
	born := time.Date(1988, 12, 30, 0, 0, 0, 0, time.UTC)
	players := []model.Player{
		{ID: 1, Name: "Stephen Curry", Team: "Warriors", Position: "PG", HeightM: 1.88, WeightKg: 84, BirthDate: born},
		{ID: 2, Name: "Klay Thompson", Team: "Warriors", Position: "SG", HeightM: 1.98, WeightKg: 98, BirthDate: born},
		{ID: 3, Name: "Nikola Jokic", Team: "Nuggets", Position: "C", HeightM: 2.11, WeightKg: 129, BirthDate: born},
	}

	v.RenderPlayers(players, 2, true)

	got := out.String()
	assert.Contains(t, got, "3 players on this page across 2 teams")
	assert.Contains(t, got, "Page 2 (more available)")
	assert.Contains(t, got, "Stephen Curry (Warriors)")
}

func TestRenderPlayersLastPageHasNoNextHint(t *testing.T) {
	v, out, _ := newTestView("text", "")

	v.RenderPlayers([]model.Player{{ID: 1, Name: "Luka Doncic", Team: "Mavericks", Position: "PG"}}, 3, false)

	assert.Contains(t, out.String(), "Page 3\n")
	assert.NotContains(t, out.String(), "more available")
}

func TestRenderUsersTruncatesPasswordHash(t *testing.T) {
	v, out, _ := newTestView("text", "")
	hash := "$2b$12$" + strings.Repeat("a", 53)
	v.RenderUsers([]model.UserAccount{
		{ID: 1, Username: "admin", Password: hash, RoleID: model.AdminRoleID, IsActive: true},
	})

	got := out.String()
	assert.Contains(t, got, hash[:30]+"...")
	assert.NotContains(t, got, hash)
	assert.Contains(t, got, "Admin")
	assert.Contains(t, got, "Total users: 1")
}

func TestTeamPopupTruncatesRoster(t *testing.T) {
	loc := model.TeamLocation{
		Team:         "Lakers",
		Stadium:      "Crypto.com Arena",
		PlayersCount: 7,
		Players:      []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"},
	}

	got := teamPopup(loc)
	assert.Contains(t, got, "7 players:")
	assert.Contains(t, got, "- p5")
	assert.NotContains(t, got, "- p6")
	assert.Contains(t, got, "... and 2 more")
}

func TestTeamPopupWithoutWeatherOmitsWeatherLine(t *testing.T) {
	got := teamPopup(model.TeamLocation{Team: "Spurs", Stadium: "Frost Bank Center"})
	assert.NotContains(t, got, "Weather:")
	assert.Contains(t, got, "(no players registered)")
}

func TestTempEmojiBands(t *testing.T) {
	cases := map[float64]string{
		35:  "🥵",
		30:  "☀️",
		26:  "☀️",
		20:  "🌤️",
		10:  "🌥️",
		5:   "🥶",
		-10: "🥶",
	}
	for temp, want := range cases {
		assert.Equal(t, want, tempEmoji(temp), "temp %.0f", temp)
	}
}

func TestJSONModeEmitsMachineReadableOutput(t *testing.T) {
	v, out, _ := newTestView("json", "")

	v.RenderPlayers(nil, 1, false)
	assert.Contains(t, out.String(), `"has_next": false`)

	out.Reset()
	v.RenderMapStats(30, 450)
	assert.Contains(t, out.String(), `"teams": 30`)
}

package cli

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/courtside/internal/fixture"
)

type cliEnv struct {
	backend   *fixture.Server
	serverURL string
	stateDir  string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	backend := fixture.New()
	backend.SeedUser("alice", "secret1", 2)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	return &cliEnv{
		backend:   backend,
		serverURL: srv.URL + "/api/v1",
		stateDir:  t.TempDir(),
	}
}

// run invokes the CLI the way a shell would, sharing the state dir across
// calls so sessions persist between processes.
func (e *cliEnv) run(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--server", e.serverURL, "--state-dir", e.stateDir}, args...))

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLoginPersistsAcrossInvocations(t *testing.T) {
	e := newCLIEnv(t)
	e.backend.SeedPlayers(3)

	out, _, err := e.run(t, "", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, alice!")

	out, _, err = e.run(t, "", "players", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Player 1")
	assert.Contains(t, out, "Page 1")
}

func TestListWithoutSessionFails(t *testing.T) {
	e := newCLIEnv(t)

	_, errOut, err := e.run(t, "", "players", "list")
	require.Error(t, err)
	assert.Contains(t, errOut, "you must log in first")
}

func TestLoginWithBadPassword(t *testing.T) {
	e := newCLIEnv(t)

	_, errOut, err := e.run(t, "", "login", "--user", "alice", "--pass", "nope")
	require.Error(t, err)
	assert.Contains(t, errOut, "incorrect username or password")
}

func TestAddEditDeleteRoundTrip(t *testing.T) {
	e := newCLIEnv(t)
	_, _, err := e.run(t, "", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	out, _, err := e.run(t, "",
		"players", "add",
		"--name", "Jayson Tatum", "--team", "Celtics", "--position", "SF",
		"--height", "2.03", "--weight", "95", "--born", "1998-03-03")
	require.NoError(t, err)
	assert.Contains(t, out, "Jayson Tatum added")

	players := e.backend.Players()
	require.Len(t, players, 1)
	id := players[0].ID

	out, _, err = e.run(t, "", "players", "edit", "1", "--team", "Lakers")
	require.NoError(t, err)
	assert.Contains(t, out, "Jayson Tatum updated")
	assert.Equal(t, "Lakers", e.backend.Players()[0].Team)
	// Unchanged flags keep their values.
	assert.Equal(t, "Jayson Tatum", e.backend.Players()[0].Name)

	_, _, err = e.run(t, "", "players", "delete", "1", "--yes")
	require.NoError(t, err)
	assert.Empty(t, e.backend.Players(), "player %d should be gone", id)
}

func TestAddRejectsInvalidHeight(t *testing.T) {
	e := newCLIEnv(t)
	_, _, err := e.run(t, "", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	_, errOut, err := e.run(t, "",
		"players", "add",
		"--name", "Short Stack", "--team", "Celtics", "--position", "PG",
		"--height", "0.5", "--weight", "95", "--born", "1998-03-03")
	require.Error(t, err)
	assert.Contains(t, errOut, "height must be between 1.0 and 3.0 meters")
	assert.Empty(t, e.backend.Players())
}

func TestDeletePromptCanBeDeclined(t *testing.T) {
	e := newCLIEnv(t)
	e.backend.SeedPlayers(1)
	_, _, err := e.run(t, "", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	out, _, err := e.run(t, "n\n", "players", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `Delete "Player 1"?`)
	assert.Len(t, e.backend.Players(), 1)
}

func TestUsersRequiresAdmin(t *testing.T) {
	e := newCLIEnv(t)
	e.backend.SeedUser("boss", "secret1", 1)

	_, _, err := e.run(t, "", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)
	_, errOut, err := e.run(t, "", "users")
	require.Error(t, err)
	assert.Contains(t, errOut, "Not enough permissions")

	_, _, err = e.run(t, "", "login", "--user", "boss", "--pass", "secret1")
	require.NoError(t, err)
	out, _, err := e.run(t, "", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "boss")
	assert.Contains(t, out, "Total users: 2")
}

func TestLogoutDropsSession(t *testing.T) {
	e := newCLIEnv(t)
	_, _, err := e.run(t, "", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")

	_, _, err = e.run(t, "", "players", "list")
	require.Error(t, err)
}

func TestProfileShowsAccount(t *testing.T) {
	e := newCLIEnv(t)
	_, _, err := e.run(t, "", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as alice (User, active)")
}

func TestHealthCommand(t *testing.T) {
	e := newCLIEnv(t)

	out, _, err := e.run(t, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "server is healthy")

	e.backend.Healthy = false
	_, errOut, err := e.run(t, "", "health")
	require.Error(t, err)
	assert.Contains(t, errOut, "server is not responding")
}

func TestJSONOutput(t *testing.T) {
	e := newCLIEnv(t)
	e.backend.SeedPlayers(2)
	_, _, err := e.run(t, "", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	out, _, err := e.run(t, "", "--output", "json", "players", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"has_next": false`)
	assert.Contains(t, out, `"name": "Player 1"`)
}

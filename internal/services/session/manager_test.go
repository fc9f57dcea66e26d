package session

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/courtside/internal/apiclient"
	"github.com/courtside/courtside/internal/events"
	"github.com/courtside/courtside/internal/model"
	"github.com/courtside/courtside/internal/storage"
	"github.com/courtside/courtside/internal/storage/memory"
	"github.com/courtside/courtside/internal/testutil"
	"github.com/courtside/courtside/internal/view"
)

type harness struct {
	manager *Manager
	store   *memory.Store
	bus     *events.Bus
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	hits    *int
}

func newHarness(t *testing.T, handler http.Handler) *harness {
	t.Helper()

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	store := memory.New()
	bus := events.New()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	v := view.New(out, errOut, strings.NewReader(""), "text")
	logger := testutil.NopLogger()
	client := apiclient.New(srv.URL+"/api/v1", store, logger)

	return &harness{
		manager: New(client, store, bus, v, logger),
		store:   store,
		bus:     bus,
		out:     out,
		errOut:  errOut,
		hits:    &hits,
	}
}

func loginHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok123","token_type":"bearer"}`))
	})
}

func TestLoginPersistsSessionAndAnnouncesIt(t *testing.T) {
	h := newHarness(t, loginHandler(t))
	ctx := context.Background()

	var announced string
	h.bus.On(events.AuthLogin, func(detail any) {
		announced = detail.(events.LoginDetail).Username
	})

	require.NoError(t, h.manager.Login(ctx, "alice", "secret1"))

	assert.True(t, h.manager.IsAuthenticated())
	assert.Equal(t, "tok123", h.manager.Token())
	assert.Equal(t, "alice", announced)

	var token string
	var user model.UserInfo
	require.True(t, h.store.Get(ctx, storage.TokenKey, &token))
	require.True(t, h.store.Get(ctx, storage.UserKey, &user))
	assert.Equal(t, "tok123", token)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "bearer", user.TokenType)
	assert.Contains(t, h.out.String(), "Welcome, alice!")
}

func TestLoginRejectsBlankFieldsWithoutCallingBackend(t *testing.T) {
	h := newHarness(t, loginHandler(t))

	err := h.manager.Login(context.Background(), "", "secret1")
	require.Error(t, err)
	assert.Zero(t, *h.hits)
	assert.Contains(t, h.errOut.String(), "please fill in all fields")
}

func TestLoginMapsUnauthorizedToCredentialsMessage(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Incorrect username or password"}`, http.StatusUnauthorized)
	}))

	err := h.manager.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.False(t, h.manager.IsAuthenticated())
	assert.Contains(t, h.errOut.String(), "incorrect username or password")
}

func TestRegisterEnforcesPasswordLengthLocally(t *testing.T) {
	h := newHarness(t, loginHandler(t))

	err := h.manager.Register(context.Background(), "alice", "short")
	require.Error(t, err)
	assert.Zero(t, *h.hits)
	assert.Contains(t, h.errOut.String(), "at least 6 characters")
}

func TestRegisterLeavesCallerAnonymous(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/register", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"username":"alice","role_id":2,"is_active":true}`))
	}))
	ctx := context.Background()

	require.NoError(t, h.manager.Register(ctx, "alice", "secret1"))

	assert.False(t, h.manager.IsAuthenticated())
	var token string
	assert.False(t, h.store.Get(ctx, storage.TokenKey, &token))
	assert.Contains(t, h.out.String(), "Account created")
}

func TestRegisterSurfacesBackendDetail(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Username already exists"}`, http.StatusConflict)
	}))

	err := h.manager.Register(context.Background(), "alice", "secret1")
	require.Error(t, err)
	assert.Contains(t, h.errOut.String(), "Username already exists")
}

func TestLogoutClearsEverythingSynchronously(t *testing.T) {
	h := newHarness(t, loginHandler(t))
	ctx := context.Background()
	require.NoError(t, h.manager.Login(ctx, "alice", "secret1"))

	cleared := false
	h.bus.On(events.AuthLogout, func(any) { cleared = true })

	h.manager.Logout(ctx)

	assert.True(t, cleared)
	assert.False(t, h.manager.IsAuthenticated())
	assert.Nil(t, h.manager.CurrentUser())

	var token string
	var user model.UserInfo
	assert.False(t, h.store.Get(ctx, storage.TokenKey, &token))
	assert.False(t, h.store.Get(ctx, storage.UserKey, &user))
}

func TestRestoreResumesPersistedSession(t *testing.T) {
	h := newHarness(t, loginHandler(t))
	ctx := context.Background()
	h.store.Set(ctx, storage.TokenKey, "tok123")
	h.store.Set(ctx, storage.UserKey, model.UserInfo{Username: "alice", TokenType: "bearer"})

	var announced string
	h.bus.On(events.AuthLogin, func(detail any) {
		announced = detail.(events.LoginDetail).Username
	})

	h.manager.Restore(ctx)

	assert.True(t, h.manager.IsAuthenticated())
	assert.Equal(t, "alice", announced)
	require.NotNil(t, h.manager.CurrentUser())
	assert.Equal(t, "alice", h.manager.CurrentUser().Username)
}

func TestRestoreWithPartialRecordStaysAnonymous(t *testing.T) {
	h := newHarness(t, loginHandler(t))
	ctx := context.Background()
	h.store.Set(ctx, storage.TokenKey, "tok123")

	h.manager.Restore(ctx)

	assert.False(t, h.manager.IsAuthenticated())
}

func TestExpireTearsDownAndWarns(t *testing.T) {
	h := newHarness(t, loginHandler(t))
	ctx := context.Background()
	require.NoError(t, h.manager.Login(ctx, "alice", "secret1"))

	h.manager.Expire(ctx)

	assert.False(t, h.manager.IsAuthenticated())
	assert.Contains(t, h.out.String(), "session expired")
}

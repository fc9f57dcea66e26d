package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/courtside/internal/storage"
	"github.com/courtside/courtside/internal/testutil"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, testutil.NopLogger()), dir
}

func TestSetAndGetRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	store.Set(ctx, storage.TokenKey, "tok123")

	var token string
	ok := store.Get(ctx, storage.TokenKey, &token)
	require.True(t, ok)
	assert.Equal(t, "tok123", token)
}

func TestGetMissingKeyReportsAbsence(t *testing.T) {
	store, _ := newStore(t)

	var token string
	assert.False(t, store.Get(context.Background(), storage.TokenKey, &token))
}

func TestGetCorruptValueReportsAbsence(t *testing.T) {
	store, dir := newStore(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.TokenKey+".json"), []byte("{not json"), 0o600))

	var token string
	assert.False(t, store.Get(ctx, storage.TokenKey, &token))
}

func TestRemove(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	store.Set(ctx, storage.TokenKey, "tok123")
	store.Remove(ctx, storage.TokenKey)

	var token string
	assert.False(t, store.Get(ctx, storage.TokenKey, &token))
}

func TestRemoveMissingKeyIsNoop(t *testing.T) {
	store, _ := newStore(t)
	assert.NotPanics(t, func() { store.Remove(context.Background(), "never-set") })
}

func TestClearRemovesAllValues(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	store.Set(ctx, storage.TokenKey, "tok123")
	store.Set(ctx, storage.UserKey, map[string]string{"username": "alice"})
	store.Clear(ctx)

	var token string
	var user map[string]string
	assert.False(t, store.Get(ctx, storage.TokenKey, &token))
	assert.False(t, store.Get(ctx, storage.UserKey, &user))
}

func TestSetFailureDegradesToNoop(t *testing.T) {
	// Point the store at a path that cannot be a directory.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store := New(filepath.Join(blocker, "state"), testutil.NopLogger())
	assert.NotPanics(t, func() { store.Set(context.Background(), storage.TokenKey, "tok123") })

	var token string
	assert.False(t, store.Get(context.Background(), storage.TokenKey, &token))
}

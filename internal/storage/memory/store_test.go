package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/courtside/internal/model"
	"github.com/courtside/courtside/internal/storage"
)

func TestSetGetRemoveClear(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.Set(ctx, storage.TokenKey, "tok123")
	store.Set(ctx, storage.UserKey, model.UserInfo{Username: "alice"})

	var token string
	require.True(t, store.Get(ctx, storage.TokenKey, &token))
	assert.Equal(t, "tok123", token)

	store.Remove(ctx, storage.TokenKey)
	assert.False(t, store.Get(ctx, storage.TokenKey, &token))

	store.Clear(ctx)
	var user model.UserInfo
	assert.False(t, store.Get(ctx, storage.UserKey, &user))
}

func TestGetMissingReportsAbsence(t *testing.T) {
	store := New()
	var token string
	assert.False(t, store.Get(context.Background(), storage.TokenKey, &token))
}

func TestUnencodableValueIsDropped(t *testing.T) {
	store := New()
	ctx := context.Background()

	store.Set(ctx, "bad", func() {})

	var dest any
	assert.False(t, store.Get(ctx, "bad", &dest))
}

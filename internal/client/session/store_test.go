package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/adboard/internal/client/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore(filepath.Join(t.TempDir(), "session.json"), nil)
	require.NoError(t, err)
	return st
}

func TestLoginPersistsTokenAndUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.False(t, st.IsAuthenticated())

	st.Login(ctx, "tok-123", models.User{ID: 7, Email: "alice@example.org"})
	assert.True(t, st.IsAuthenticated())
	assert.Equal(t, "tok-123", st.Token())

	// A fresh store reading the same file sees the full session.
	reloaded, err := NewStore(st.path, nil)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load(ctx))

	assert.True(t, reloaded.IsAuthenticated())
	assert.Equal(t, "tok-123", reloaded.Token())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, "alice@example.org", reloaded.User().Email)
}

func TestLogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	st.Login(ctx, "tok", models.User{ID: 1, Email: "a@b.c"})
	st.Logout(ctx)

	assert.False(t, st.IsAuthenticated())
	assert.Empty(t, st.Token())
	assert.Nil(t, st.User())

	_, err := os.Stat(st.path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Idempotent.
	st.Logout(ctx)
	assert.False(t, st.IsAuthenticated())
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.Load(context.Background()))
	assert.False(t, st.IsAuthenticated())
}

func TestLoadDiscardsCorruptFile(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, os.WriteFile(st.path, []byte("{not json"), 0o600))

	require.NoError(t, st.Load(context.Background()))
	assert.False(t, st.IsAuthenticated())
}

func TestLoadRejectsHalfSession(t *testing.T) {
	st := newTestStore(t)
	// Token without a user must not count as authenticated.
	require.NoError(t, os.WriteFile(st.path, []byte(`{"token":"t"}`), 0o600))

	require.NoError(t, st.Load(context.Background()))
	assert.False(t, st.IsAuthenticated())
}

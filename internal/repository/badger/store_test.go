package badger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fileshelf/fileshelf-server/internal/model"
)

func openStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	userID := uuid.New()
	token := uuid.NewString()

	require.NoError(t, store.Set(ctx, token, userID, time.Minute))

	got, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestSessionStore_GetUnknownToken(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	_, err := store.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	token := uuid.NewString()
	require.NoError(t, store.Set(ctx, token, uuid.New(), time.Minute))
	require.NoError(t, store.Delete(ctx, token))

	_, err := store.Get(ctx, token)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// deleting again is not an error
	assert.NoError(t, store.Delete(ctx, token))
}

func TestSessionStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	token := uuid.NewString()
	require.NoError(t, store.Set(ctx, token, uuid.New(), 50*time.Millisecond))

	_, err := store.Get(ctx, token)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionStore_Ping(t *testing.T) {
	store := openStore(t)
	assert.NoError(t, store.Ping())
}

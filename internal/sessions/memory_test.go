package sessions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	sess, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
	assert.True(t, sess.IsAdmin)
	assert.Equal(t, token, sess.Token)

	require.NoError(t, store.Delete(ctx, token))
	_, err = store.Get(ctx, token)
	assert.Equal(t, ErrNoSession, err)
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "no-such-token")
	assert.Equal(t, ErrNoSession, err)

	// Deleting an unknown token is not an error
	assert.NoError(t, store.Delete(context.Background(), "no-such-token"))
}

func TestMemoryStore_DistinctTokens(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	t1, err := store.Create(ctx, "user-1", false)
	require.NoError(t, err)
	t2, err := store.Create(ctx, "user-1", false)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)
}

func TestMemoryStore_SnapshotIsStable(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	token, err := store.Create(ctx, "user-1", true)
	require.NoError(t, err)

	// Mutating a returned session does not affect the stored copy
	sess, err := store.Get(ctx, token)
	require.NoError(t, err)
	sess.IsAdmin = false

	again, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.True(t, again.IsAdmin)
}

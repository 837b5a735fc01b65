package credstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	t.Run("MissingKeysReadEmpty", func(t *testing.T) {
		value, err := store.GetUserValue(ctx, "alice", KeyToken)
		require.NoError(t, err)
		assert.Empty(t, value)

		value, err = store.GetAppValue(ctx, KeyAdminInstanceURL)
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("SetGetDelete", func(t *testing.T) {
		require.NoError(t, store.SetUserValue(ctx, "alice", KeyToken, "tok"))
		value, err := store.GetUserValue(ctx, "alice", KeyToken)
		require.NoError(t, err)
		assert.Equal(t, "tok", value)

		require.NoError(t, store.DeleteUserValue(ctx, "alice", KeyToken))
		value, err = store.GetUserValue(ctx, "alice", KeyToken)
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("UsersAreIsolated", func(t *testing.T) {
		require.NoError(t, store.SetUserValue(ctx, "alice", KeyLogin, "alice@example.com"))
		require.NoError(t, store.SetUserValue(ctx, "bob", KeyLogin, "bob@example.com"))

		value, err := store.GetUserValue(ctx, "alice", KeyLogin)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", value)
	})

	t.Run("AppValues", func(t *testing.T) {
		require.NoError(t, store.SetAppValue(ctx, KeyAdminInstanceURL, "https://mail.example.com"))
		value, err := store.GetAppValue(ctx, KeyAdminInstanceURL)
		require.NoError(t, err)
		assert.Equal(t, "https://mail.example.com", value)
	})

	t.Run("ListUsers", func(t *testing.T) {
		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, users)
	})
}

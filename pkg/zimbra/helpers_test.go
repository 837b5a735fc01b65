package zimbra

import (
	"context"
	"fmt"
	"testing"

	"github.com/groupware-tools/zimbra-go/pkg/credstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testUser     = "alice"
	testUserName = "alice"
	testLogin    = "alice@example.com"
	testPassword = "secret"
	oldToken     = "old-token"
	newToken     = "new-token"
)

// newTestClient returns a client whose session for testUser points at the
// given base URL with a full set of stored credentials.
func newTestClient(t *testing.T, baseURL string) (*Client, *credstore.MemoryStore) {
	t.Helper()
	store := credstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.SetUserValue(ctx, testUser, credstore.KeyURL, baseURL))
	require.NoError(t, store.SetUserValue(ctx, testUser, credstore.KeyUserName, testUserName))
	require.NoError(t, store.SetUserValue(ctx, testUser, credstore.KeyToken, oldToken))
	require.NoError(t, store.SetUserValue(ctx, testUser, credstore.KeyLogin, testLogin))
	require.NoError(t, store.SetUserValue(ctx, testUser, credstore.KeyPassword, testPassword))
	return NewClientWithLogger(store, zap.NewNop()), store
}

func authResponseBody(token string) string {
	return fmt.Sprintf(`{"Body":{"AuthResponse":{"authToken":[{"_content":"%s"}]}}}`, token)
}

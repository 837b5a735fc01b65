// Package credstore defines the per-user credential and preference storage
// consumed by the Zimbra client. The client reads the resolved instance URL
// and account identity through a Store, persists refreshed auth tokens to
// it, and clears login/password from it when they stop working.
package credstore

import "context"

// Keys under which the connector keeps account state. admin_instance_url is
// an app-level value used as the fallback when a user has no url override.
const (
	KeyAdminInstanceURL = "admin_instance_url"
	KeyURL              = "url"
	KeyUserName         = "user_name"
	KeyToken            = "token"
	KeyLogin            = "login"
	KeyPassword         = "password"
)

// Store is the keyed get/set/delete capability backing user sessions.
// Implementations must make each single-key operation atomic; the client
// performs no cross-key coordination of its own. A missing key is not an
// error: lookups return the empty string.
type Store interface {
	GetAppValue(ctx context.Context, key string) (string, error)
	GetUserValue(ctx context.Context, userID, key string) (string, error)
	SetUserValue(ctx context.Context, userID, key, value string) error
	DeleteUserValue(ctx context.Context, userID, key string) error
}

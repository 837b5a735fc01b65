package zimbra

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/groupware-tools/zimbra-go/pkg/credstore"
	httpclient "github.com/groupware-tools/zimbra-go/pkg/http"
	"go.uber.org/zap"
)

// baseURL resolves the instance URL for a user: the per-user override when
// set, otherwise the admin-configured default. Trailing slashes are
// stripped so paths can be joined with a single "/".
func (c *Client) baseURL(ctx context.Context, userID string) string {
	u, _ := c.store.GetUserValue(ctx, userID, credstore.KeyURL)
	if u == "" {
		u, _ = c.store.GetAppValue(ctx, credstore.KeyAdminInstanceURL)
	}
	return strings.TrimRight(u, "/")
}

// IsUserConnected reports whether the user has a complete session: resolved
// instance URL, username, cached token, and stored login/password all
// present.
func (c *Client) IsUserConnected(ctx context.Context, userID string) bool {
	userName, _ := c.store.GetUserValue(ctx, userID, credstore.KeyUserName)
	token, _ := c.store.GetUserValue(ctx, userID, credstore.KeyToken)
	login, _ := c.store.GetUserValue(ctx, userID, credstore.KeyLogin)
	password, _ := c.store.GetUserValue(ctx, userID, credstore.KeyPassword)

	return c.baseURL(ctx, userID) != "" &&
		userName != "" &&
		token != "" &&
		login != "" &&
		password != ""
}

// Login authenticates loginID/password against the user's Zimbra instance
// and returns the fresh auth token. It does not touch the credential store;
// persisting the token is the caller's concern. All failure paths resolve
// to an error value: a rejected login yields ErrInvalidCredentials and a
// response without the expected token path yields ErrInvalidResponse.
func (c *Client) Login(ctx context.Context, userID, loginID, password string) (string, error) {
	base := c.baseURL(ctx, userID)

	envelope := LoginEnvelope(loginID, password)
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.httpClient.Post(ctx, base+"/service/soap", headers, envelope)
	if err != nil {
		var clientErr *httpclient.ClientError
		var serverErr *httpclient.ServerError
		if errors.As(err, &clientErr) || errors.As(err, &serverErr) {
			c.logger.Debug("Zimbra login rejected",
				zap.String("user", userID),
				zap.Error(err))
			return "", ErrInvalidCredentials
		}
		c.logger.Warn("Zimbra login request failed",
			zap.String("user", userID),
			zap.Error(err))
		return "", ErrInvalidResponse
	}

	token, ok := extractAuthToken(resp.Body)
	if !ok {
		c.logger.Warn("Zimbra login response did not contain an auth token",
			zap.String("user", userID))
		return "", ErrInvalidResponse
	}
	return token, nil
}

// extractAuthToken digs Body.AuthResponse.authToken[0]._content out of the
// login response, checking presence at every nesting level.
func extractAuthToken(body []byte) (string, bool) {
	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", false
	}
	respBody, ok := decoded["Body"].(map[string]interface{})
	if !ok {
		return "", false
	}
	authResp, ok := respBody["AuthResponse"].(map[string]interface{})
	if !ok {
		return "", false
	}
	tokens, ok := authResp["authToken"].([]interface{})
	if !ok || len(tokens) == 0 {
		return "", false
	}
	first, ok := tokens[0].(map[string]interface{})
	if !ok {
		return "", false
	}
	token, ok := first["_content"].(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// withReauth runs do with the cached token and, when the server answers
// with the protocol's auth-failure status, performs one re-login-and-retry
// cycle. The bound is explicit: the loop body runs at most twice. On a
// successful re-login the fresh token is persisted before the retry; on a
// failed re-login the stored login/password are deleted (they are
// considered permanently invalid) and the original error is returned.
func (c *Client) withReauth(
	ctx context.Context,
	userID string,
	authFailureStatus int,
	do func(token string) (*httpclient.Response, error),
) (*httpclient.Response, error) {
	token, _ := c.store.GetUserValue(ctx, userID, credstore.KeyToken)

	for attempt := 0; ; attempt++ {
		resp, err := do(token)
		if err == nil || attempt > 0 || !isAuthFailure(err, authFailureStatus) {
			return resp, err
		}

		login, _ := c.store.GetUserValue(ctx, userID, credstore.KeyLogin)
		password, _ := c.store.GetUserValue(ctx, userID, credstore.KeyPassword)
		if login == "" || password == "" {
			return resp, err
		}

		c.logger.Debug("Auth token rejected, attempting re-login",
			zap.String("user", userID),
			zap.Int("status_code", authFailureStatus))

		newToken, loginErr := c.Login(ctx, userID, login, password)
		if loginErr != nil {
			// The stored credentials no longer work; clear them so the
			// user is asked to reconnect.
			_ = c.store.DeleteUserValue(ctx, userID, credstore.KeyLogin)
			_ = c.store.DeleteUserValue(ctx, userID, credstore.KeyPassword)
			c.logger.Warn("Re-login failed, stored credentials invalidated",
				zap.String("user", userID),
				zap.Error(loginErr))
			return resp, err
		}

		if setErr := c.store.SetUserValue(ctx, userID, credstore.KeyToken, newToken); setErr != nil {
			c.logger.Warn("Failed to persist refreshed auth token",
				zap.String("user", userID),
				zap.Error(setErr))
		}
		token = newToken
	}
}

// isAuthFailure reports whether err is a transport fault carrying exactly
// the status the protocol family uses to signal an expired token. The REST
// endpoints use 401 while the SOAP endpoint uses 500; the asymmetry is how
// the server behaves, not a policy of this client.
func isAuthFailure(err error, authFailureStatus int) bool {
	var clientErr *httpclient.ClientError
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode == authFailureStatus
	}
	var serverErr *httpclient.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.StatusCode == authFailureStatus
	}
	return false
}

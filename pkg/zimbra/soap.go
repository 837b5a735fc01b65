package zimbra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/groupware-tools/zimbra-go/pkg/credstore"
	httpclient "github.com/groupware-tools/zimbra-go/pkg/http"
	"go.uber.org/zap"
)

// SoapCall invokes function in the given namespace by posting a JSON
// envelope to baseUrl/service/soap. The envelope is rebuilt per attempt so
// a token refreshed mid-call is actually used on the retry.
//
// Unlike the REST endpoints, the SOAP endpoint reports an expired token as
// a 500, so that status (and only that status) triggers the
// re-login-and-retry cycle here. A 4xx is logged and surfaced without
// retry.
func (c *Client) SoapCall(ctx context.Context, userID, function, namespace string, params map[string]interface{}, wantJSON bool) (*Result, error) {
	base := c.baseURL(ctx, userID)
	userName, _ := c.store.GetUserValue(ctx, userID, credstore.KeyUserName)

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := c.withReauth(ctx, userID, http.StatusInternalServerError, func(token string) (*httpclient.Response, error) {
		envelope := RequestEnvelope(function, namespace, params, userName, token)
		return c.httpClient.Post(ctx, base+"/service/soap", headers, envelope)
	})
	if err != nil {
		// SOAP client faults are not an auth signal; they are surfaced
		// with their own message rather than mapped to ErrBadCredentials.
		var clientErr *httpclient.ClientError
		if errors.As(err, &clientErr) {
			c.logger.Debug("Zimbra SOAP call rejected",
				zap.String("function", function),
				zap.Int("status_code", clientErr.StatusCode))
			return nil, err
		}
		var serverErr *httpclient.ServerError
		if errors.As(err, &serverErr) {
			c.logger.Debug("Zimbra SOAP call failed on the server side",
				zap.String("function", function),
				zap.Int("status_code", serverErr.StatusCode))
		}
		return nil, err
	}

	if !wantJSON {
		return &Result{Body: resp.Body, Headers: resp.Headers}, nil
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse SOAP response: %w", err)
	}
	return &Result{JSON: decoded, Headers: resp.Headers}, nil
}

package zimbra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	httpclient "github.com/groupware-tools/zimbra-go/pkg/http"
	"go.uber.org/zap"
)

// RestCall performs a resource call against baseUrl/path. Authentication
// always travels as query parameters (auth=qp plus the token). For GET the
// params go on the query string, sequence values flattened into repeated
// key[]= pairs; for POST/PUT/DELETE the params are sent as a JSON body and
// only the auth parameters stay on the query string. With wantJSON the
// body is decoded into Result.JSON, otherwise the raw body and headers are
// returned untouched.
//
// A 401 triggers one transparent re-login-and-retry cycle; any other 4xx
// maps to ErrBadCredentials. Server faults are logged and surfaced as-is.
func (c *Client) RestCall(ctx context.Context, userID, path string, params map[string]interface{}, method string, wantJSON bool) (*Result, error) {
	base := c.baseURL(ctx, userID)

	resp, err := c.withReauth(ctx, userID, http.StatusUnauthorized, func(token string) (*httpclient.Response, error) {
		return c.doRest(ctx, base, token, path, params, method, wantJSON)
	})
	if err != nil {
		var clientErr *httpclient.ClientError
		if errors.As(err, &clientErr) {
			c.logger.Debug("Zimbra REST call rejected",
				zap.String("path", path),
				zap.Int("status_code", clientErr.StatusCode))
			return nil, ErrBadCredentials
		}
		var serverErr *httpclient.ServerError
		if errors.As(err, &serverErr) {
			c.logger.Debug("Zimbra REST call failed on the server side",
				zap.String("path", path),
				zap.Int("status_code", serverErr.StatusCode))
		}
		return nil, err
	}

	if !wantJSON {
		return &Result{Body: resp.Body, Headers: resp.Headers}, nil
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse REST response: %w", err)
	}
	return &Result{JSON: decoded, Headers: resp.Headers}, nil
}

func (c *Client) doRest(ctx context.Context, base, token, path string, params map[string]interface{}, method string, wantJSON bool) (*httpclient.Response, error) {
	auth := url.Values{}
	auth.Set("auth", "qp")
	auth.Set("zauthtoken", token)
	if wantJSON {
		auth.Set("fmt", "json")
	}

	switch method {
	case http.MethodGet:
		query := httpclient.EncodeQuery(params, auth)
		return c.httpClient.Get(ctx, base+"/"+path+"?"+query, nil)
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		target := base + "/" + path + "?" + auth.Encode()
		var body interface{}
		if len(params) > 0 {
			body = params
		}
		return c.httpClient.Do(httpclient.RequestOptions{
			Method:  method,
			URL:     target,
			Body:    body,
			Context: ctx,
		})
	default:
		// Refused before any network I/O happens.
		return nil, fmt.Errorf("unsupported HTTP method %q", method)
	}
}

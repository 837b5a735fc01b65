package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

type RequestOptions struct {
	Method          string
	URL             string
	Headers         map[string]string
	Body            interface{}
	Context         context.Context
	MaxTries        uint
	MaxElapsed      time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

func NewClient() *Client {
	logger, _ := zap.NewProduction()
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NewClientWithLogger creates a new HTTP client with a custom logger
func NewClientWithLogger(logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Do performs the HTTP exchange described by opts. Network-level failures
// are retried with exponential backoff. Any completed exchange is final,
// including 4xx and 5xx responses, because the calling layer needs the
// exact status code to drive re-authentication. A 4xx response yields a
// *ClientError and a 5xx response a *ServerError.
func (c *Client) Do(opts RequestOptions) (*Response, error) {
	// Set default backoff configuration
	if opts.MaxTries == 0 {
		opts.MaxTries = 3
	}
	if opts.MaxElapsed == 0 {
		opts.MaxElapsed = 2 * time.Minute
	}
	if opts.InitialInterval == 0 {
		opts.InitialInterval = 100 * time.Millisecond
	}
	if opts.MaxInterval == 0 {
		opts.MaxInterval = 10 * time.Second
	}

	// Create exponential backoff
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = opts.InitialInterval
	expBackoff.MaxInterval = opts.MaxInterval
	expBackoff.Reset()

	// Use context if provided
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	operation := func() (*Response, error) {
		req, err := c.buildRequest(ctx, opts)
		if err != nil {
			c.logger.Error("Failed to build request", zap.Error(err), zap.String("method", opts.Method), zap.String("url", opts.URL))
			return nil, backoff.Permanent(err)
		}

		c.logger.Debug("Making HTTP request",
			zap.String("method", opts.Method),
			zap.String("url", opts.URL))

		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			// Network errors are retryable
			c.logger.Warn("HTTP request failed, will retry",
				zap.Error(err),
				zap.String("method", opts.Method),
				zap.String("url", opts.URL))
			return nil, err
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			c.logger.Error("Failed to read response body", zap.Error(err))
			return nil, backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		if httpResp.StatusCode >= 500 {
			c.logger.Debug("Server error response",
				zap.Int("status_code", httpResp.StatusCode),
				zap.String("method", opts.Method),
				zap.String("url", opts.URL))
			return nil, backoff.Permanent(&ServerError{StatusCode: httpResp.StatusCode, Body: body})
		}

		if httpResp.StatusCode >= 400 {
			c.logger.Debug("Client error response",
				zap.Int("status_code", httpResp.StatusCode),
				zap.String("method", opts.Method),
				zap.String("url", opts.URL))
			return nil, backoff.Permanent(&ClientError{StatusCode: httpResp.StatusCode, Body: body})
		}

		c.logger.Debug("HTTP request successful",
			zap.Int("status_code", httpResp.StatusCode),
			zap.String("method", opts.Method),
			zap.String("url", opts.URL))

		return &Response{
			StatusCode: httpResp.StatusCode,
			Headers:    httpResp.Header,
			Body:       body,
		}, nil
	}

	retryOpts := []backoff.RetryOption{
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxTries(opts.MaxTries),
		backoff.WithMaxElapsedTime(opts.MaxElapsed),
	}

	resp, err := backoff.Retry(ctx, operation, retryOpts...)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) buildRequest(ctx context.Context, opts RequestOptions) (*http.Request, error) {
	var bodyReader io.Reader
	if opts.Body != nil {
		contentType := opts.Headers["Content-Type"]
		if contentType == "" {
			contentType = opts.Headers["content-type"]
		}

		switch v := opts.Body.(type) {
		case io.Reader:
			bodyReader = v
		case []byte:
			bodyReader = bytes.NewReader(v)
		case string:
			bodyReader = strings.NewReader(v)
		default:
			if strings.HasPrefix(strings.ToLower(contentType), "application/x-www-form-urlencoded") {
				form := url.Values{}

				switch vv := opts.Body.(type) {
				case url.Values:
					form = vv
				case map[string]string:
					for k, val := range vv {
						form.Set(k, val)
					}
				case map[string]interface{}:
					for k, val := range vv {
						if val == nil {
							continue
						}
						form.Set(k, fmt.Sprint(val))
					}
				default:
					// Convert structs (or other JSON-marshalable types) into a map first.
					bodyJSON, err := json.Marshal(opts.Body)
					if err != nil {
						return nil, fmt.Errorf("failed to marshal request body: %w", err)
					}
					var m map[string]interface{}
					if err := json.Unmarshal(bodyJSON, &m); err != nil {
						return nil, fmt.Errorf("failed to unmarshal request body: %w", err)
					}
					for k, val := range m {
						if val == nil {
							continue
						}
						form.Set(k, fmt.Sprint(val))
					}
				}

				bodyReader = strings.NewReader(form.Encode())
			} else {
				bodyJSON, err := json.Marshal(opts.Body)
				if err != nil {
					return nil, fmt.Errorf("failed to marshal request body: %w", err)
				}
				bodyReader = bytes.NewReader(bodyJSON)
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set default headers
	if opts.Body != nil && opts.Headers["Content-Type"] == "" && opts.Headers["content-type"] == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// Set custom headers
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodGet,
		URL:     url,
		Headers: headers,
		Context: ctx,
	})
}

func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodPost,
		URL:     url,
		Headers: headers,
		Body:    body,
		Context: ctx,
	})
}

func (c *Client) Put(ctx context.Context, url string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodPut,
		URL:     url,
		Headers: headers,
		Body:    body,
		Context: ctx,
	})
}

func (c *Client) Delete(ctx context.Context, url string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodDelete,
		URL:     url,
		Headers: headers,
		Body:    body,
		Context: ctx,
	})
}

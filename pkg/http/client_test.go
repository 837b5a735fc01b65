package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDoSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewClientWithLogger(zap.NewNop())
	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
}

func TestDoMarshalsJSONBody(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClientWithLogger(zap.NewNop())
	_, err := client.Post(context.Background(), server.URL, nil, map[string]interface{}{
		"name": "test",
	})
	require.NoError(t, err)
	assert.Equal(t, "test", received["name"])
}

func TestDoClientError(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("no token"))
	}))
	defer server.Close()

	client := NewClientWithLogger(zap.NewNop())
	_, err := client.Get(context.Background(), server.URL, nil)
	require.Error(t, err)

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, http.StatusUnauthorized, clientErr.StatusCode)
	assert.Contains(t, clientErr.Error(), "no token")

	// Status responses are final, never retried.
	assert.Equal(t, 1, hits)
}

func TestDoServerError(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("soap fault"))
	}))
	defer server.Close()

	client := NewClientWithLogger(zap.NewNop())
	_, err := client.Get(context.Background(), server.URL, nil)
	require.Error(t, err)

	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
	assert.Equal(t, 1, hits)
}

func TestDoFormEncodedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "value", r.PostFormValue("field"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClientWithLogger(zap.NewNop())
	_, err := client.Post(context.Background(), server.URL,
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		map[string]string{"field": "value"})
	require.NoError(t, err)
}

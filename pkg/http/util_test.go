package http

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	u, err := BuildURL("https://mail.example.com", "/service/home/~/", map[string]string{
		"id":   "261",
		"part": "1",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "https://mail.example.com/service/home/~/?"))
	assert.Contains(t, u, "id=261")
	assert.Contains(t, u, "part=1")
}

func TestEncodeQuery(t *testing.T) {
	auth := url.Values{}
	auth.Set("auth", "qp")
	auth.Set("zauthtoken", "tok-123")
	auth.Set("fmt", "json")

	t.Run("FlattensSequenceParams", func(t *testing.T) {
		query := EncodeQuery(map[string]interface{}{
			"tags":  []string{"a", "b"},
			"query": "is:unread",
		}, auth)

		// Array pairs come first, URL-encoded.
		assert.True(t, strings.HasPrefix(query, "tags%5B%5D=a&tags%5B%5D=b&"))
		assert.Contains(t, query, "query=is%3Aunread")
		assert.Equal(t, 1, strings.Count(query, "zauthtoken="))
		assert.Equal(t, 1, strings.Count(query, "auth=qp"))

		// The parsed form must round-trip both array values.
		parsed, err := url.ParseQuery(query)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, parsed["tags[]"])
		assert.Equal(t, "tok-123", parsed.Get("zauthtoken"))
	})

	t.Run("ScalarsOnly", func(t *testing.T) {
		query := EncodeQuery(map[string]interface{}{"query": "hello world"}, auth)
		parsed, err := url.ParseQuery(query)
		require.NoError(t, err)
		assert.Equal(t, "hello world", parsed.Get("query"))
		assert.Equal(t, "qp", parsed.Get("auth"))
		assert.Equal(t, "json", parsed.Get("fmt"))
	})

	t.Run("InterfaceSequences", func(t *testing.T) {
		query := EncodeQuery(map[string]interface{}{
			"ids": []interface{}{1, 2},
		}, url.Values{})
		assert.Equal(t, "ids%5B%5D=1&ids%5B%5D=2", query)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", EncodeQuery(nil, url.Values{}))
	})
}

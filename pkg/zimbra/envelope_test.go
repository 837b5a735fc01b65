package zimbra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestEnvelope(t *testing.T) {
	envelope := RequestEnvelope("SearchRequest", "urn:zimbraMail", map[string]interface{}{
		"query": "is:unread",
	}, "alice", "tok-1")

	header := envelope["Header"].(map[string]interface{})
	headerCtx := header["context"].(map[string]interface{})
	assert.Equal(t, "urn:zimbra", headerCtx["_jsns"])
	assert.Equal(t, "tok-1", headerCtx["authToken"])

	account := headerCtx["account"].(map[string]interface{})
	assert.Equal(t, "alice", account["_content"])
	assert.Equal(t, "name", account["by"])

	control := headerCtx["authTokenControl"].(map[string]interface{})
	assert.Equal(t, true, control["voidOnExpired"])

	agent := headerCtx["userAgent"].(map[string]interface{})
	assert.Equal(t, UserAgentName, agent["name"])
	assert.Equal(t, UserAgentVersion, agent["version"])

	body := envelope["Body"].(map[string]interface{})
	payload := body["SearchRequest"].(map[string]interface{})
	assert.Equal(t, "urn:zimbraMail", payload["_jsns"])
	assert.Equal(t, "is:unread", payload["query"])
}

func TestLoginEnvelope(t *testing.T) {
	envelope := LoginEnvelope("alice@example.com", "secret")

	header := envelope["Header"].(map[string]interface{})
	headerCtx := header["context"].(map[string]interface{})
	assert.Equal(t, "urn:zimbra", headerCtx["_jsns"])
	assert.Contains(t, headerCtx, "userAgent")
	assert.NotContains(t, headerCtx, "authToken")
	assert.NotContains(t, headerCtx, "account")
	assert.NotContains(t, headerCtx, "authTokenControl")

	body := envelope["Body"].(map[string]interface{})
	payload := body["AuthRequest"].(map[string]interface{})
	assert.Equal(t, "urn:zimbraAccount", payload["_jsns"])
	assert.Equal(t, "secret", payload["password"])

	account := payload["account"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", account["_content"])
	assert.Equal(t, "name", account["by"])
}

func TestEnvelopeBodyDoesNotMutateParams(t *testing.T) {
	params := map[string]interface{}{"view": "appointment"}
	envelope := RequestEnvelope("GetFolderRequest", "urn:zimbraMail", params, "alice", "tok")
	require.NotNil(t, envelope)
	assert.Equal(t, map[string]interface{}{"view": "appointment"}, params)
	assert.NotContains(t, params, "_jsns")
}

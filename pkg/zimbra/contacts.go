package zimbra

import (
	"context"
	"net/http"

	"github.com/groupware-tools/zimbra-go/pkg/credstore"
)

// GetContacts retrieves the user's contacts folder.
func (c *Client) GetContacts(ctx context.Context, userID string) (map[string]interface{}, error) {
	userName, _ := c.store.GetUserValue(ctx, userID, credstore.KeyUserName)

	result, err := c.RestCall(ctx, userID, "home/"+userName+"/contacts", nil, http.MethodGet, true)
	if err != nil {
		return nil, err
	}
	return result.JSON, nil
}

// SearchContacts searches the user's contacts and returns the matched
// contact entries ("cn" array). An absent or wrong-shaped result reads as
// an empty list.
func (c *Client) SearchContacts(ctx context.Context, userID, query string) ([]interface{}, error) {
	userName, _ := c.store.GetUserValue(ctx, userID, credstore.KeyUserName)

	params := map[string]interface{}{
		"query": query,
	}
	result, err := c.RestCall(ctx, userID, "home/"+userName+"/contacts", params, http.MethodGet, true)
	if err != nil {
		return nil, err
	}
	contacts := asSlice(result.JSON["cn"])
	if contacts == nil {
		return []interface{}{}, nil
	}
	return contacts, nil
}

// GetContactAvatar fetches a contact's avatar image, scaled server-side to
// at most 240x240. The response is returned raw with its headers so the
// caller can forward the image bytes and content type downstream.
func (c *Client) GetContactAvatar(ctx context.Context, userID, resourceID string) (*Result, error) {
	params := map[string]interface{}{
		"id":         resourceID,
		"part":       1,
		"max_width":  240,
		"max_height": 240,
	}
	return c.RestCall(ctx, userID, "service/home/~/", params, http.MethodGet, false)
}

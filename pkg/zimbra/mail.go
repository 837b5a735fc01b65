package zimbra

import (
	"context"
	"net/http"
	"sort"

	"github.com/groupware-tools/zimbra-go/pkg/credstore"
)

// GetUnreadEmails returns a page of the user's unread inbox messages,
// newest first.
func (c *Client) GetUnreadEmails(ctx context.Context, userID string, offset, limit int) ([]interface{}, error) {
	return c.SearchEmails(ctx, userID, "is:unread", offset, limit)
}

// SearchEmails runs query against the user's inbox and returns the
// requested offset/limit page of matching messages, sorted descending by
// date.
func (c *Client) SearchEmails(ctx context.Context, userID, query string, offset, limit int) ([]interface{}, error) {
	userName, _ := c.store.GetUserValue(ctx, userID, credstore.KeyUserName)

	params := map[string]interface{}{
		"query": query,
	}
	result, err := c.RestCall(ctx, userID, "home/"+userName+"/inbox", params, http.MethodGet, true)
	if err != nil {
		return nil, err
	}

	messages := asSlice(result.JSON["m"])
	sort.SliceStable(messages, func(i, j int) bool {
		return messageDate(messages[i]) > messageDate(messages[j])
	})
	return paginate(messages, offset, limit), nil
}

func messageDate(v interface{}) float64 {
	return numberValue(asMap(v)["d"])
}

func paginate(items []interface{}, offset, limit int) []interface{} {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) || limit <= 0 {
		return []interface{}{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

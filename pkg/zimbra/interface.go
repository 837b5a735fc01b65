package zimbra

import (
	"context"
	"time"
)

// ZimbraClient defines the interface for Zimbra API operations
type ZimbraClient interface {
	// IsUserConnected reports whether the user has a complete session
	IsUserConnected(ctx context.Context, userID string) bool

	// Login authenticates loginID/password and returns a fresh auth token
	Login(ctx context.Context, userID, loginID, password string) (string, error)

	// RestCall performs a low-level call against the resource REST API
	RestCall(ctx context.Context, userID, path string, params map[string]interface{}, method string, wantJSON bool) (*Result, error)

	// SoapCall performs a low-level call against the SOAP-over-JSON endpoint
	SoapCall(ctx context.Context, userID, function, namespace string, params map[string]interface{}, wantJSON bool) (*Result, error)

	// GetContacts retrieves the user's contacts folder
	GetContacts(ctx context.Context, userID string) (map[string]interface{}, error)

	// SearchContacts searches the user's contacts
	SearchContacts(ctx context.Context, userID, query string) ([]interface{}, error)

	// GetContactAvatar fetches a contact's avatar image as a raw result
	GetContactAvatar(ctx context.Context, userID, resourceID string) (*Result, error)

	// GetUpcomingEvents returns upcoming appointments across the user's calendars
	GetUpcomingEvents(ctx context.Context, userID string, since time.Time) ([]interface{}, error)

	// GetUnreadEmails returns a page of unread inbox messages, newest first
	GetUnreadEmails(ctx context.Context, userID string, offset, limit int) ([]interface{}, error)

	// SearchEmails runs a mail query and returns the requested page of results
	SearchEmails(ctx context.Context, userID, query string, offset, limit int) ([]interface{}, error)
}

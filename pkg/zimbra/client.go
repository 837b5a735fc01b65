// Package zimbra provides a client for interacting with a Zimbra groupware
// server (contacts, calendar, mail) over the two protocol families exposed
// by the same endpoint: the resource-path REST API and the SOAP-over-JSON
// envelope API.
//
// Authentication uses an opaque bearer token obtained from AuthRequest and
// cached in the injected credential store. Every call injects the cached
// token; when the server reports it invalid (401 on the REST endpoints,
// 500 on the SOAP endpoint) the client transparently re-logs-in with the
// stored login/password, persists the fresh token, and retries the call
// exactly once. If the re-login itself fails, the stored login/password
// are deleted so the user is forced to re-enter credentials.
//
// On top of the two low-level call primitives the package exposes the
// domain operations used by the dashboard: contacts, contact avatars,
// upcoming calendar events, and unread-mail search.
package zimbra

import (
	"github.com/groupware-tools/zimbra-go/pkg/credstore"
	httpclient "github.com/groupware-tools/zimbra-go/pkg/http"
	"go.uber.org/zap"
)

// Name and version reported in the userAgent block of every SOAP envelope.
const (
	UserAgentName    = "zimbra-go"
	UserAgentVersion = "1.0.0"
)

// Client is the main client for interacting with a Zimbra server. It holds
// no session state of its own: the base URL, account identity, and token
// are read from (and written back to) the credential store on every call.
type Client struct {
	store      credstore.Store
	httpClient *httpclient.Client
	logger     *zap.Logger
}

// NewClient creates a new Zimbra client with default production logger
func NewClient(store credstore.Store) *Client {
	logger, _ := zap.NewProduction()
	return &Client{
		store:      store,
		httpClient: httpclient.NewClientWithLogger(logger),
		logger:     logger,
	}
}

// NewClientWithLogger creates a new Zimbra client with a custom logger
func NewClientWithLogger(store credstore.Store, logger *zap.Logger) *Client {
	return &Client{
		store:      store,
		httpClient: httpclient.NewClientWithLogger(logger),
		logger:     logger,
	}
}

package zimbra

import (
	"errors"
	"net/http"
)

// Result holds the outcome of a successful REST or SOAP call. When JSON
// output was requested JSON carries the decoded body; otherwise Body holds
// the raw bytes. Headers are passed through verbatim in both cases.
type Result struct {
	JSON    map[string]interface{}
	Body    []byte
	Headers http.Header
}

// Fixed error values surfaced to callers. The messages are part of the
// client's contract and are matched by downstream consumers, so they are
// not rephrased.
var (
	// ErrBadCredentials is returned for REST 4xx responses that could not
	// be recovered by re-authentication.
	ErrBadCredentials = errors.New("Bad credentials")

	// ErrInvalidCredentials is returned when the login request itself is
	// rejected by the server.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrInvalidResponse is returned when the login response does not
	// carry a token at the expected nested path.
	ErrInvalidResponse = errors.New("Invalid response")
)

package http

import "fmt"

// ClientError is returned when the server answers with a 4xx status.
// The status code is preserved so callers can react to specific codes
// (the Zimbra REST endpoints report an expired auth token as 401).
type ClientError struct {
	StatusCode int
	Body       []byte
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("client error: %d - %s", e.StatusCode, string(e.Body))
}

// ServerError is returned when the server answers with a 5xx status.
// The Zimbra SOAP endpoint reports an expired auth token as 500, so these
// are never retried at the transport level either.
type ServerError struct {
	StatusCode int
	Body       []byte
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %d - %s", e.StatusCode, string(e.Body))
}

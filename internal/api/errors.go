package api

import (
	"fmt"
)

// TransportError covers everything that keeps a call from producing a
// usable payload: unreachable endpoint, non-2xx status, undecodable body.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		if e.Body != "" {
			return fmt.Sprintf("api: %s: %s returned status %d: %s", e.Op, e.URL, e.StatusCode, e.Body)
		}
		return fmt.Sprintf("api: %s: %s returned status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a well-formed response in which the backend reports a
// failure through its "error" field.
type ServerError struct {
	Op      string
	Message string
	Code    string
}

func (e *ServerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s: %s (code %s)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("api: %s: %s", e.Op, e.Message)
}

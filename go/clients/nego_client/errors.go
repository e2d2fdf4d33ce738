package nego_client

import (
	"errors"
)

// ErrTransport marks network failures and malformed responses
var ErrTransport = errors.New("nego: transport failure")

// RejectionError is a domain error reported by the server in an "error"
// field. Message is shown to the user verbatim.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

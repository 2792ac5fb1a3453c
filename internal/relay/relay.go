// Package relay delivers plain-text messages to a messaging-app contact
// through an external chat-relay HTTP API. The whole contract is: accept a
// {phone, message} payload, answer success or failure.
package relay

import (
	"context"
	"fmt"
)

// Sender delivers one text message to the pre-configured destination.
// Implementations do not retry and impose no timeout of their own; a hang
// blocks only the calling operation.
type Sender interface {
	SendText(ctx context.Context, message string) error
}

// StatusError is a non-2xx answer from the relay, carrying the response
// body for the caller to surface.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay returned status %d: %s", e.Code, e.Body)
}

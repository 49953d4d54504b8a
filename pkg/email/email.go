package email

import "context"

// Message is a single outbound transactional email
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers one message through an external provider and returns the
// provider's message ID. Retries and rate limits are left to the provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

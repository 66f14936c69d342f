package ports

import "context"

// Mailer delivers a plain-text message to an address.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

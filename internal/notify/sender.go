// Package notify implements the order notification dispatcher: formatting
// of Telegram messages for customers and administrators, and their
// fire-and-forget delivery through a bounded background worker set.
//
// Delivery is best effort by design: each message is attempted once, a
// failure for one recipient never blocks the others, and the triggering
// request has already returned by the time anything is sent. Failures are
// logged and discarded.
package notify

import "context"

// Sender delivers one message to one Telegram chat. Implementations must
// be safe for concurrent use by the dispatcher workers.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

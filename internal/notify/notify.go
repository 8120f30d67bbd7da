// Package notify delivers desktop-style notifications through whatever host
// bridge is configured. Delivery is fire-and-forget: failures are logged.
package notify

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/bond-keeper/internal/relationship"
)

type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Notifier interface {
	// Available reports whether a host is present to show notifications.
	Available() bool
	Notify(ctx context.Context, n Notification)
}

// Noop is used when no host bridge is configured.
type Noop struct{}

func (Noop) Available() bool                      { return false }
func (Noop) Notify(context.Context, Notification) {}

// ForOccurrence renders a reminder for an upcoming important date.
func ForOccurrence(o relationship.Occurrence) Notification {
	title := o.Title
	if o.ContactName != "" {
		title = fmt.Sprintf("%s (%s)", o.Title, o.ContactName)
	}
	return Notification{
		Title: title,
		Body:  fmt.Sprintf("%s: %s", o.Label, o.Next.String()),
	}
}

// Reminders sends one notification per occurrence and returns how many were
// handed to the notifier. Nothing is sent when no host is available.
func Reminders(ctx context.Context, n Notifier, due []relationship.Occurrence) int {
	if !n.Available() {
		return 0
	}
	for _, o := range due {
		n.Notify(ctx, ForOccurrence(o))
	}
	return len(due)
}

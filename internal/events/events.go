// Package events publishes domain events to an optional message bus.
package events

import (
	"context"
	"time"
)

const TopicContactSubmitted = "portfolio.contact.submitted"

// ContactSubmitted is emitted after a contact record is saved and the
// confirmation has gone out. The submitter's email address is left out.
type ContactSubmitted struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher sends events to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Discard drops every event. It stands in when no bus is configured.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(context.Context, string, any) error { return nil }
func (discard) Close() error                               { return nil }

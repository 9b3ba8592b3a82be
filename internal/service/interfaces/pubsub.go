package interfaces

import (
	"context"
)

// PublisherInterface is the seam between the notification publisher and the
// Pub/Sub client, kept narrow so tests can swap in a fake client.
type PublisherInterface interface {
	Publisher(topic string) TopicPublisherInterface
	Close() error
}

// TopicPublisherInterface publishes one message and blocks until the server
// acknowledges it, returning the assigned message ID.
type TopicPublisherInterface interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error)
}

package pubsub

import (
	"context"

	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/service/interfaces"

	"cloud.google.com/go/pubsub/v2"
)

// PubSubPublisherInterface defines the interface for PubSub publishing operations
type PubSubPublisherInterface interface {
	Publish(ctx context.Context, topic string, data []byte, attributes map[string]string) (string, error)
	Stop(ctx context.Context) error
	Close() error
}

// PublisherFactory builds the underlying client; tests inject a fake one.
type PublisherFactory interface {
	NewPublisher(ctx context.Context, projectID string) (interfaces.PublisherInterface, error)
}

// gcpFactory builds the real Pub/Sub client.
type gcpFactory struct{}

func (gcpFactory) NewPublisher(ctx context.Context, projectID string) (interfaces.PublisherInterface, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &clientAdapter{client: client}, nil
}

// clientAdapter narrows *pubsub.Client to the publisher interface.
type clientAdapter struct {
	client *pubsub.Client
}

func (a *clientAdapter) Publisher(topic string) interfaces.TopicPublisherInterface {
	return &topicAdapter{client: a.client, topic: topic}
}

func (a *clientAdapter) Close() error {
	return a.client.Close()
}

// topicAdapter publishes to one topic and waits for the server ack.
type topicAdapter struct {
	client *pubsub.Client
	topic  string
}

func (t *topicAdapter) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	result := t.client.Publisher(t.topic).Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})
	return result.Get(ctx)
}

// PubSubPublisher manages publishing to Google Cloud Pub/Sub
type PubSubPublisher struct {
	client    interfaces.PublisherInterface
	lifecycle context.Context
	cancel    context.CancelFunc
}

// NewPubSubPublisher uses the real GCP client factory.
func NewPubSubPublisher(ctx context.Context, projectID string) (*PubSubPublisher, error) {
	return NewPubSubPublisherWithFactory(ctx, projectID, gcpFactory{})
}

func NewPubSubPublisherWithFactory(ctx context.Context, projectID string, factory PublisherFactory) (*PubSubPublisher, error) {
	client, err := factory.NewPublisher(ctx, projectID)
	if err != nil {
		return nil, err
	}

	lifecycle, cancel := context.WithCancel(ctx)
	return &PubSubPublisher{
		client:    client,
		lifecycle: lifecycle,
		cancel:    cancel,
	}, nil
}

// Publish sends a single message to the specified topic. After Stop the
// publisher refuses further sends.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, data []byte, attributes map[string]string) (string, error) {
	if err := p.lifecycle.Err(); err != nil {
		return "", err
	}

	messageID, err := p.client.Publisher(topic).Publish(ctx, data, attributes)
	if err != nil {
		logger.Error(ctx, "Failed to publish message to topic %s: %v", topic, err)
		return "", err
	}

	logger.Info(ctx, "Successfully published message to topic %s with ID: %s", topic, messageID)
	return messageID, nil
}

// Stop gracefully stops the publisher
func (p *PubSubPublisher) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
		logger.Info(ctx, "PubSub publisher stopped gracefully")
	}
	return nil
}

// Close cancels pending work and releases the client.
func (p *PubSubPublisher) Close() error {
	if p.cancel != nil {
		p.cancel()
	}
	return p.client.Close()
}

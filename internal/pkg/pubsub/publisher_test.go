package pubsub

import (
	"context"
	"errors"
	"sync"
	"testing"

	"aurum/karat_gold_loan/internal/service/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mock.Mock
}

func (f *fakeClient) Publisher(topicName string) interfaces.TopicPublisherInterface {
	args := f.Called(topicName)
	return args.Get(0).(interfaces.TopicPublisherInterface)
}

func (f *fakeClient) Close() error {
	return f.Called().Error(0)
}

type fakeTopic struct {
	mock.Mock
}

func (f *fakeTopic) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	args := f.Called(ctx, data, attributes)
	return args.String(0), args.Error(1)
}

type fakeFactory struct {
	client interfaces.PublisherInterface
	err    error
}

func (f *fakeFactory) NewPublisher(ctx context.Context, projectID string) (interfaces.PublisherInterface, error) {
	return f.client, f.err
}

func newTestPublisher(t *testing.T, client *fakeClient) *PubSubPublisher {
	t.Helper()
	publisher, err := NewPubSubPublisherWithFactory(context.Background(), "aurum-lending", &fakeFactory{client: client})
	require.NoError(t, err)
	return publisher
}

func TestNewPubSubPublisherFactoryError(t *testing.T) {
	publisher, err := NewPubSubPublisherWithFactory(context.Background(), "aurum-lending", &fakeFactory{err: errors.New("credentials missing")})

	assert.Error(t, err)
	assert.Nil(t, publisher)
}

func TestPublishDeliversToTopic(t *testing.T) {
	client := new(fakeClient)
	topic := new(fakeTopic)
	publisher := newTestPublisher(t, client)

	smsPayload := []byte(`{"msisdn":"9876543210","sms_db_event_name":"GOLD_LOAN_APPROVED"}`)
	attrs := map[string]string{"event": "loan_created"}

	client.On("Publisher", "notification-topic").Return(topic)
	topic.On("Publish", mock.Anything, smsPayload, attrs).Return("msg-id-1", nil)

	messageID, err := publisher.Publish(context.Background(), "notification-topic", smsPayload, attrs)

	assert.NoError(t, err)
	assert.Equal(t, "msg-id-1", messageID)
	client.AssertExpectations(t)
	topic.AssertExpectations(t)
}

func TestPublishSurfacesTopicError(t *testing.T) {
	client := new(fakeClient)
	topic := new(fakeTopic)
	publisher := newTestPublisher(t, client)

	client.On("Publisher", "error-topic").Return(topic)
	topic.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("publish failed"))

	messageID, err := publisher.Publish(context.Background(), "error-topic", []byte("payment received"), nil)

	assert.Error(t, err)
	assert.Empty(t, messageID)
}

func TestPublishAfterStopIsRefused(t *testing.T) {
	client := new(fakeClient)
	publisher := newTestPublisher(t, client)

	require.NoError(t, publisher.Stop(context.Background()))

	_, err := publisher.Publish(context.Background(), "notification-topic", []byte("late"), nil)
	assert.ErrorIs(t, err, context.Canceled)
	client.AssertNotCalled(t, "Publisher", mock.Anything)
}

func TestCloseReleasesClient(t *testing.T) {
	client := new(fakeClient)
	client.On("Close").Return(nil)
	publisher := newTestPublisher(t, client)

	assert.NoError(t, publisher.Close())
	client.AssertExpectations(t)
}

func TestConcurrentPublishes(t *testing.T) {
	client := new(fakeClient)
	topic := new(fakeTopic)
	publisher := newTestPublisher(t, client)

	client.On("Publisher", "notification-topic").Return(topic)
	topic.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return("concurrent-id", nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			messageID, err := publisher.Publish(context.Background(), "notification-topic", []byte("payment received"), nil)
			assert.NoError(t, err)
			assert.Equal(t, "concurrent-id", messageID)
		}()
	}
	wg.Wait()
}

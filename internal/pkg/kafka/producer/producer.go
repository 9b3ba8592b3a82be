package producer

import (
	"context"
	"strings"
	"time"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

type Producer struct {
	producer *kafka.Producer
	topic    string
}

// KafkaProducer is the shared long-lived producer used by the retry sweep.
var KafkaProducer *Producer

// brokerConfig is the SASL connection shared by every producer this service
// creates.
func brokerConfig() *kafka.ConfigMap {
	return &kafka.ConfigMap{
		"bootstrap.servers":  configs.KAFKA_SERVER,
		"security.protocol":  configs.KAFKA_SECURITY_PROTOCOL,
		"sasl.mechanisms":    configs.KAFKA_SASL_MECHANISM,
		"sasl.username":      configs.KAFKA_SASL_USERNAME,
		"sasl.password":      configs.KAFKA_SASL_PASSWORD,
		"session.timeout.ms": configs.KAFKA_SESSION_TIMEOUT_MS,
		"client.id":          configs.KAFKA_CLIENT_ID,
		"log_level":          0,
	}
}

func NewKafkaProducer(broker, topic string) (*Producer, error) {
	p, err := kafka.NewProducer(brokerConfig())
	if err != nil {
		return nil, err
	}
	return &Producer{producer: p, topic: topic}, nil
}

// SendMessageBatch produces one Kafka message per row. Each row is the
// comma-joined event payload with the event document id in position 0, so the
// id doubles as the message key and the handle for flagging the document
// after delivery.
func SendMessageBatch(ctx context.Context, kafkaProducer *Producer, messages [][]string, topic string, retryCount int) ([]string, []string, error) {
	var successIDs []string
	var failedIDs []string

	for _, msg := range messages {
		eventId := msg[0]
		kafkaMsg := &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
			Value:          []byte(strings.Join(msg, ",")),
			Key:            []byte(eventId),
		}

		if err := produceWithRetry(ctx, kafkaProducer, kafkaMsg, retryCount); err != nil {
			failedIDs = append(failedIDs, eventId)
			continue
		}
		successIDs = append(successIDs, eventId)
	}

	// Wait for all messages to be delivered
	kafkaProducer.producer.Flush(15 * 1000)
	return successIDs, failedIDs, nil
}

func produceWithRetry(ctx context.Context, kafkaProducer *Producer, msg *kafka.Message, retryCount int) error {
	var err error
	for attempt := 0; attempt <= retryCount; attempt++ {
		if err = kafkaProducer.producer.Produce(msg, nil); err == nil {
			logger.Info(ctx, "kafka message sent successfully")
			return nil
		}
		logger.Error(ctx, "Failed to send Kafka message on attempt %d: %v", attempt+1, err)
		time.Sleep(time.Second * time.Duration(attempt+1))
	}
	return err
}

func (p *Producer) Close() {
	p.producer.Close()
}

package producer

import (
	"context"
	"fmt"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

type KafkaService struct {
}

func NewKafkaService() *KafkaService {
	return &KafkaService{}
}

// KafkaPublisher publishes a single payload and waits for the delivery
// report before returning.
func KafkaPublisher(ctx context.Context, payload string) error {
	topic := configs.KAFKA_TOPIC

	p, err := kafka.NewProducer(brokerConfig())
	if err != nil {
		return fmt.Errorf("failed to create producer: %w", err)
	}
	defer p.Close()

	deliveryChan := make(chan kafka.Event, 1)
	err = p.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          []byte(payload),
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	// Block until the broker acknowledges or rejects the message.
	report := (<-deliveryChan).(*kafka.Message)
	if report.TopicPartition.Error != nil {
		return fmt.Errorf("delivery failed: %w", report.TopicPartition.Error)
	}

	logger.Info(ctx, "Message delivered to topic: %s, partition: %d, offset: %v, Message content: %s",
		*report.TopicPartition.Topic, report.TopicPartition.Partition, report.TopicPartition.Offset, payload)
	return nil
}

// PublishLoanEventToKafka publishes an already-serialized loan lifecycle
// record to the downstream analytics topic. Callers serialize once, so the
// live publish and the retry sweep ship the identical payload.
func (k *KafkaService) PublishLoanEventToKafka(ctx context.Context, payload string) error {
	return KafkaPublisher(ctx, payload)
}

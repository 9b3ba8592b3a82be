package producer

import (
	"context"
	"fmt"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"
)

type LoanEventStoreInterface interface {
	GetFailedKafkaEntries(context.Context, int32) ([]models.LoanEvent, error)
	SetKafkaFlag(context.Context, []string) ([]string, error)
}

type KafkaRetryService struct {
	loanEventStore LoanEventStoreInterface
}

func NewKafkaRetryService(loanEventStore LoanEventStoreInterface) *KafkaRetryService {
	return &KafkaRetryService{loanEventStore: loanEventStore}
}

// ensureProducer lazily builds the shared producer; startup normally does
// this, but the sweep must also work when it runs first.
func ensureProducer(ctx context.Context) error {
	if KafkaProducer != nil {
		return nil
	}
	p, err := NewKafkaProducer(configs.KAFKA_SERVER, configs.KAFKA_TOPIC)
	if err != nil {
		logger.Error(ctx, "failed to create Kafka Producer error: %v", err)
		return err
	}
	logger.Info(ctx, "Kafka Producer Created")
	KafkaProducer = p
	return nil
}

// RetryLoanEventMessages republishes loan events whose first publish never
// reached Kafka, then flags the delivered ones. Retry messages are keyed and
// prefixed by the event document id so delivery can be reconciled.
func (ks *KafkaRetryService) RetryLoanEventMessages(ctx context.Context) ([]string, []string, error) {
	if err := ensureProducer(ctx); err != nil {
		return nil, nil, err
	}

	events, err := ks.loanEventStore.GetFailedKafkaEntries(ctx, int32(configs.KAFKA_RETRY_DURATION))
	if err != nil {
		return nil, nil, err
	}
	if len(events) == 0 {
		return nil, nil, fmt.Errorf("no unpublished loan events found in the duration")
	}

	eventMessages := make([][]string, 0, len(events))
	for _, event := range events {
		eventMessages = append(eventMessages, []string{event.ID.Hex(), event.Payload})
	}

	successMessagesId, failedMessagesId, err := SendMessageBatch(ctx, KafkaProducer, eventMessages, configs.KAFKA_TOPIC, 2)
	if err != nil {
		return nil, nil, err
	}
	if len(successMessagesId) == 0 {
		return successMessagesId, failedMessagesId, nil
	}

	failedList, err := ks.loanEventStore.SetKafkaFlag(ctx, successMessagesId)
	if err != nil {
		return successMessagesId, failedMessagesId, fmt.Errorf("error updating Kafka flag in database for events %v with error %v", failedList, err)
	}
	return successMessagesId, failedMessagesId, nil
}

package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/common"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"
	"aurum/karat_gold_loan/internal/pkg/pubsub"
	"aurum/karat_gold_loan/internal/pkg/store"
	"aurum/karat_gold_loan/internal/pkg/utils"
)

type MessagesRepo interface {
	GetMessageID(ctx context.Context, event string) (*models.MessageResponse, error)
}

// NotificationService handles customer SMS notifications
type NotificationService struct {
	messageRepo     MessagesRepo
	pubsubPublisher pubsub.PubSubPublisherInterface
}

func NewNotificationService(pubsubPublisher pubsub.PubSubPublisherInterface) *NotificationService {
	return &NotificationService{
		messageRepo:     store.NewMessagesRepository(),
		pubsubPublisher: pubsubPublisher,
	}
}

// NotifyCustomer sends the SMS registered for a loan lifecycle event. The
// payment and summary arguments may be nil for events that do not concern a
// payment; the caller computes the summary so this service never re-reads
// the ledger.
func (h *NotificationService) NotifyCustomer(ctx context.Context, phone string, event string, loan *models.Loan, payment *models.Payment, summary *models.PaymentSummary) error {
	response, err := h.messageRepo.GetMessageID(ctx, event)
	if err != nil {
		return err
	}

	msisdn, err := utils.NationalNumber(phone)
	if err != nil {
		logger.Warn(ctx, "Notification skipped, phone %v failed validation: %v", phone, err)
		return err
	}

	payload := models.SmsNotificationRequestPayload{
		NotificationParameter: h.getValuesOfParameters(response.Parameters, loan, payment, summary),
		PatternID:             response.MessageID,
	}

	logger.Info(ctx, "NotifyCustomer msisdn: %v PatternID: %v LoanNumber: %v", msisdn, response.MessageID, loan.LoanNumber)

	if err := h.sendNotificationToPubSub(ctx, payload, msisdn, event); err != nil {
		logger.Error(ctx, "Failed to send notification to PubSub: %v", err)
		return err
	}
	return nil
}

func (h *NotificationService) sendNotificationToPubSub(ctx context.Context, payload models.SmsNotificationRequestPayload, msisdn string, event string) error {
	var notifParameters []models.SmsNotificationParameter
	for _, param := range payload.NotificationParameter {
		notifParameters = append(notifParameters, models.SmsNotificationParameter(param))
	}

	smsRequest := models.SmsNotificationRequest{
		Msisdn:          msisdn,
		SmsDbEventName:  event,
		NotifParameters: notifParameters,
		PatternID:       payload.PatternID,
	}

	payloadBytes, err := json.Marshal(smsRequest)
	if err != nil {
		logger.Error(ctx, "Failed to marshal SMS notification request: %v", err)
		return fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	topicName := configs.PUBSUB_TOPIC

	// The SMS gateway takes the sender id from message attributes when set.
	var attributes map[string]string
	if configs.SMS_SOURCE_ADDRESS != "" {
		attributes = map[string]string{"source_address": configs.SMS_SOURCE_ADDRESS}
	}

	// Separate context with timeout so an aborted request cannot cancel the publish
	pubsubCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	messageID, err := h.pubsubPublisher.Publish(pubsubCtx, topicName, payloadBytes, attributes)
	if err != nil {
		logger.Error(ctx, "Failed to publish SMS notification to PubSub topic %s: %v", topicName, err)
		return fmt.Errorf("failed to publish to pubsub: %w", err)
	}

	logger.Info(ctx, "Successfully published SMS notification to PubSub topic %s with message ID: %s", topicName, messageID)
	return nil
}

func formatFloat(value float64) string {
	return fmt.Sprintf(consts.FloatTwoDecimalFormat, value)
}

// placeholderValues renders every pattern placeholder the given sources can
// fill. Placeholders whose source is nil stay absent and render empty, the
// same as a placeholder no event provides.
func placeholderValues(loan *models.Loan, payment *models.Payment, summary *models.PaymentSummary) map[string]string {
	values := map[string]string{}

	if loan != nil {
		values[consts.CustomerName] = loan.CustomerName
		values[consts.LoanNumber] = loan.LoanNumber
		values[consts.LoanAmount] = formatFloat(loan.LoanAmount)
		values[consts.EmiAmount] = formatFloat(loan.MonthlyEMI)
		values[consts.FinalAmount] = formatFloat(loan.FinalAmount)
		values[consts.LoanDate] = common.ConvertUTCToIST(loan.CreatedAt).Format(consts.DocumentDateFormat)
	}
	if payment != nil {
		values[consts.PaymentAmount] = formatFloat(payment.Amount)
		values[consts.PaymentMonth] = strconv.Itoa(payment.Month)
	}
	if summary != nil {
		values[consts.RemainingAmount] = formatFloat(summary.RemainingAmount)
	}

	return values
}

// getValuesOfParameters resolves the pattern's parameter list in order. SMS
// patterns are positional, so every requested name yields an entry even when
// it renders empty.
func (h *NotificationService) getValuesOfParameters(parameters []string, loan *models.Loan, payment *models.Payment, summary *models.PaymentSummary) []models.NotificationParameter {
	values := placeholderValues(loan, payment, summary)

	var result []models.NotificationParameter
	for _, param := range parameters {
		result = append(result, models.NotificationParameter{
			Name:  param,
			Value: values[param],
		})
	}
	return result
}

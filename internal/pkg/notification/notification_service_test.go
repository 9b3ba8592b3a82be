package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockMessagesRepo struct {
	mock.Mock
}

func (m *MockMessagesRepo) GetMessageID(ctx context.Context, event string) (*models.MessageResponse, error) {
	args := m.Called(ctx, event)
	if args.Get(0) != nil {
		return args.Get(0).(*models.MessageResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPubSubPublisher struct {
	mock.Mock
}

func (m *MockPubSubPublisher) Publish(ctx context.Context, topic string, data []byte, attributes map[string]string) (string, error) {
	args := m.Called(ctx, topic, data, attributes)
	return args.String(0), args.Error(1)
}

func (m *MockPubSubPublisher) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPubSubPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func sampleLoan() *models.Loan {
	return &models.Loan{
		LoanId:       primitive.NewObjectID(),
		LoanNumber:   "KGL-2026-0042",
		CustomerName: "Ramesh Kumar",
		Phone:        "9876543210",
		LoanAmount:   50000,
		MonthlyEMI:   5000,
		TermMonths:   12,
		Status:       string(consts.LoanStatusApproved),
		Account:      string(consts.LoanAccountShop),
		CreatedAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestNotifyCustomer_Success(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockMsgRepo := new(MockMessagesRepo)
	mockPubSub := new(MockPubSubPublisher)

	mockMsgRepo.On("GetMessageID", ctx, consts.GoldLoanPaymentReceived).
		Return(&models.MessageResponse{MessageID: 123, Parameters: []string{consts.CustomerName, consts.PaymentAmount, consts.RemainingAmount}}, nil)
	mockPubSub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("msg-123", nil)

	svc := &NotificationService{
		messageRepo:     mockMsgRepo,
		pubsubPublisher: mockPubSub,
	}

	loan := sampleLoan()
	payment := &models.Payment{Month: 2, Amount: 3000}
	summary := &models.PaymentSummary{TotalPaid: 3000, IsPaid: false, RemainingAmount: 2000}

	err := svc.NotifyCustomer(ctx, "9876543210", consts.GoldLoanPaymentReceived, loan, payment, summary)
	require.NoError(t, err)

	mockMsgRepo.AssertExpectations(t)
	mockPubSub.AssertExpectations(t)
}

func TestNotifyCustomer_PubSubFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockMsgRepo := new(MockMessagesRepo)
	mockPubSub := new(MockPubSubPublisher)

	mockMsgRepo.On("GetMessageID", ctx, consts.GoldLoanApproved).
		Return(&models.MessageResponse{MessageID: 456, Parameters: []string{consts.LoanNumber}}, nil)
	mockPubSub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("pubsub publish failed"))

	svc := &NotificationService{
		messageRepo:     mockMsgRepo,
		pubsubPublisher: mockPubSub,
	}

	err := svc.NotifyCustomer(ctx, "9876543210", consts.GoldLoanApproved, sampleLoan(), nil, nil)
	require.Error(t, err)
	mockPubSub.AssertExpectations(t)
}

func TestNotifyCustomer_TemplateMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockMsgRepo := new(MockMessagesRepo)
	mockPubSub := new(MockPubSubPublisher)

	mockMsgRepo.On("GetMessageID", ctx, consts.GoldLoanClosed).
		Return(nil, errors.New("no documents"))

	svc := &NotificationService{
		messageRepo:     mockMsgRepo,
		pubsubPublisher: mockPubSub,
	}

	err := svc.NotifyCustomer(ctx, "9876543210", consts.GoldLoanClosed, sampleLoan(), nil, nil)
	require.Error(t, err)
	mockPubSub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyCustomer_InvalidPhone(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockMsgRepo := new(MockMessagesRepo)
	mockPubSub := new(MockPubSubPublisher)

	mockMsgRepo.On("GetMessageID", ctx, consts.GoldLoanApproved).
		Return(&models.MessageResponse{MessageID: 789, Parameters: []string{consts.LoanNumber}}, nil)

	svc := &NotificationService{
		messageRepo:     mockMsgRepo,
		pubsubPublisher: mockPubSub,
	}

	// Landline-style number, not a valid mobile
	err := svc.NotifyCustomer(ctx, "04412345", consts.GoldLoanApproved, sampleLoan(), nil, nil)
	require.Error(t, err)
	mockPubSub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetValuesOfParameters(t *testing.T) {
	t.Parallel()

	svc := &NotificationService{}
	loan := sampleLoan()
	payment := &models.Payment{Month: 4, Amount: 5000}
	summary := &models.PaymentSummary{TotalPaid: 5000, IsPaid: true, RemainingAmount: 0}

	params := svc.getValuesOfParameters(
		[]string{consts.CustomerName, consts.EmiAmount, consts.PaymentMonth, consts.RemainingAmount, consts.LoanDate, "UNKNOWN_PARAM"},
		loan, payment, summary,
	)

	require.Len(t, params, 6)
	assert.Equal(t, "Ramesh Kumar", params[0].Value)
	assert.Equal(t, "5000.00", params[1].Value)
	assert.Equal(t, "4", params[2].Value)
	assert.Equal(t, "0.00", params[3].Value)
	// CreatedAt 2026-03-14 09:30 UTC is 14/03/2026 in IST
	assert.Equal(t, "14/03/2026", params[4].Value)
	assert.Equal(t, "", params[5].Value)
}

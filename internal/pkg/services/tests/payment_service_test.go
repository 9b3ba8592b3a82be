package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/models"
	"aurum/karat_gold_loan/internal/pkg/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPaymentService(lr *MockLoanRepo, er *MockLoanEventRepo, kp *MockKafkaPublisher, ns *MockNotificationService, dc *MockDashboardCache) *services.PaymentService {
	return services.NewPaymentService(lr, er, kp, ns, dc)
}

func expectAsyncPaymentEvent(er *MockLoanEventRepo, kp *MockKafkaPublisher) {
	er.On("CreateLoanEvent", mock.Anything, mock.AnythingOfType("models.LoanEvent")).Return(primitive.NewObjectID(), nil)
	er.On("SetKafkaFlag", mock.Anything, mock.Anything).Return([]string{}, nil).Maybe()
	kp.On("PublishLoanEventToKafka", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func TestAddPayment(t *testing.T) {
	loanId := primitive.NewObjectID()

	tests := []struct {
		name          string
		request       models.AddPaymentRequest
		ledger        []models.Payment
		setupMocks    func(*MockLoanRepo, *MockLoanEventRepo, *MockKafkaPublisher, *MockNotificationService, *MockDashboardCache)
		expectedError error
		checkResult   func(*testing.T, *models.Loan, *models.Payment)
	}{
		{
			name:    "Success - first instalment",
			request: models.AddPaymentRequest{Month: 1, Amount: 3000, Method: string(consts.PaymentMethodCash)},
			ledger:  nil,
			setupMocks: func(lr *MockLoanRepo, er *MockLoanEventRepo, kp *MockKafkaPublisher, ns *MockNotificationService, dc *MockDashboardCache) {
				lr.On("ReplaceLoan", mock.Anything, mock.MatchedBy(func(loan *models.Loan) bool {
					return len(loan.Payments) == 1 && loan.Payments[0].Amount == 3000
				})).Return(nil)
				expectAsyncPaymentEvent(er, kp)
				ns.On("NotifyCustomer", mock.Anything, "9876543210", consts.GoldLoanPaymentReceived, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
				dc.On("Invalidate", mock.Anything).Return(nil)
			},
			expectedError: nil,
			checkResult: func(t *testing.T, loan *models.Loan, payment *models.Payment) {
				assert.Equal(t, 1, payment.Month)
				assert.Equal(t, float64(3000), payment.Amount)
				assert.Equal(t, "staff-1", payment.ReceivedBy)
				assert.False(t, payment.PaymentId.IsZero())
				assert.Len(t, loan.Payments, 1)
			},
		},
		{
			name:    "Duplicate month refused",
			request: models.AddPaymentRequest{Month: 1, Amount: 3000, Method: string(consts.PaymentMethodCash)},
			ledger: []models.Payment{
				{PaymentId: primitive.NewObjectID(), Month: 1, Amount: 2500, Method: string(consts.PaymentMethodUPI)},
			},
			setupMocks:    func(lr *MockLoanRepo, er *MockLoanEventRepo, kp *MockKafkaPublisher, ns *MockNotificationService, dc *MockDashboardCache) {},
			expectedError: consts.ErrorDuplicatePaymentMonth,
		},
		{
			name:          "Month zero out of range",
			request:       models.AddPaymentRequest{Month: 0, Amount: 3000, Method: string(consts.PaymentMethodCash)},
			ledger:        nil,
			setupMocks:    func(lr *MockLoanRepo, er *MockLoanEventRepo, kp *MockKafkaPublisher, ns *MockNotificationService, dc *MockDashboardCache) {},
			expectedError: consts.ErrorPaymentMonthOutOfRange,
		},
		{
			name:          "Month beyond term out of range",
			request:       models.AddPaymentRequest{Month: 13, Amount: 3000, Method: string(consts.PaymentMethodCash)},
			ledger:        nil,
			setupMocks:    func(lr *MockLoanRepo, er *MockLoanEventRepo, kp *MockKafkaPublisher, ns *MockNotificationService, dc *MockDashboardCache) {},
			expectedError: consts.ErrorPaymentMonthOutOfRange,
		},
		{
			name:          "Unknown payment method",
			request:       models.AddPaymentRequest{Month: 1, Amount: 3000, Method: "barter"},
			ledger:        nil,
			setupMocks:    func(lr *MockLoanRepo, er *MockLoanEventRepo, kp *MockKafkaPublisher, ns *MockNotificationService, dc *MockDashboardCache) {},
			expectedError: consts.ErrorInvalidPaymentMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLoanRepo := new(MockLoanRepo)
			mockEventRepo := new(MockLoanEventRepo)
			mockKafkaPublisher := new(MockKafkaPublisher)
			mockNotificationService := new(MockNotificationService)
			mockDashboardCache := new(MockDashboardCache)

			mockLoanRepo.On("ActiveLoanById", loanId).Return(storedLoan(loanId, string(consts.LoanStatusApproved), tt.ledger), nil)
			tt.setupMocks(mockLoanRepo, mockEventRepo, mockKafkaPublisher, mockNotificationService, mockDashboardCache)

			service := newPaymentService(mockLoanRepo, mockEventRepo, mockKafkaPublisher, mockNotificationService, mockDashboardCache)

			loan, payment, err := service.AddPayment(context.Background(), loanId.Hex(), tt.request, "staff-1")
			time.Sleep(100 * time.Millisecond)

			assert.Equal(t, tt.expectedError, err)
			if tt.checkResult != nil {
				tt.checkResult(t, loan, payment)
			}
			if tt.expectedError != nil {
				mockLoanRepo.AssertNotCalled(t, "ReplaceLoan", mock.Anything, mock.Anything)
			}

			mockLoanRepo.AssertExpectations(t)
			mockEventRepo.AssertExpectations(t)
			mockDashboardCache.AssertExpectations(t)
		})
	}
}

func TestPaymentEventPublishesStoredRecord(t *testing.T) {
	loanId := primitive.NewObjectID()

	mockLoanRepo := new(MockLoanRepo)
	mockEventRepo := new(MockLoanEventRepo)
	mockKafkaPublisher := new(MockKafkaPublisher)
	mockNotificationService := new(MockNotificationService)
	mockDashboardCache := new(MockDashboardCache)

	mockLoanRepo.On("ActiveLoanById", loanId).Return(storedLoan(loanId, string(consts.LoanStatusApproved), nil), nil)
	mockLoanRepo.On("ReplaceLoan", mock.Anything, mock.Anything).Return(nil)
	mockNotificationService.On("NotifyCustomer", mock.Anything, "9876543210", consts.GoldLoanPaymentReceived, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	mockDashboardCache.On("Invalidate", mock.Anything).Return(nil)

	var recorded models.LoanEvent
	mockEventRepo.On("CreateLoanEvent", mock.Anything, mock.AnythingOfType("models.LoanEvent")).
		Run(func(args mock.Arguments) { recorded = args.Get(1).(models.LoanEvent) }).
		Return(primitive.NewObjectID(), nil)
	mockEventRepo.On("SetKafkaFlag", mock.Anything, mock.Anything).Return([]string{}, nil).Maybe()

	published := make(chan string, 1)
	mockKafkaPublisher.On("PublishLoanEventToKafka", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { published <- args.String(1) }).
		Return(nil)

	service := newPaymentService(mockLoanRepo, mockEventRepo, mockKafkaPublisher, mockNotificationService, mockDashboardCache)

	_, _, err := service.AddPayment(context.Background(), loanId.Hex(), models.AddPaymentRequest{Month: 1, Amount: 3000, Method: string(consts.PaymentMethodCash)}, "staff-1")
	assert.NoError(t, err)

	select {
	case payload := <-published:
		// The retry sweep replays the stored record, so the live publish has
		// to send the same bytes under the event's own identifier.
		assert.Equal(t, recorded.Payload, payload)
		assert.Equal(t, recorded.GUID, strings.Split(payload, ",")[0])
	case <-time.After(time.Second):
		t.Fatal("event never published")
	}
}

func TestUpdatePayment(t *testing.T) {
	loanId := primitive.NewObjectID()
	paymentId := primitive.NewObjectID()

	t.Run("Corrects the amount and keeps the month", func(t *testing.T) {
		mockLoanRepo := new(MockLoanRepo)
		mockEventRepo := new(MockLoanEventRepo)
		mockKafkaPublisher := new(MockKafkaPublisher)
		mockDashboardCache := new(MockDashboardCache)

		receivedAt := time.Now().Add(-48 * time.Hour)
		ledger := []models.Payment{
			{PaymentId: paymentId, Month: 2, Amount: 4000, Method: string(consts.PaymentMethodCash), ReceivedAt: receivedAt},
		}
		mockLoanRepo.On("ActiveLoanById", loanId).Return(storedLoan(loanId, string(consts.LoanStatusApproved), ledger), nil)
		mockLoanRepo.On("ReplaceLoan", mock.Anything, mock.MatchedBy(func(loan *models.Loan) bool {
			return loan.Payments[0].Amount == 4500 && loan.Payments[0].Month == 2
		})).Return(nil)
		expectAsyncPaymentEvent(mockEventRepo, mockKafkaPublisher)
		mockDashboardCache.On("Invalidate", mock.Anything).Return(nil)

		service := newPaymentService(mockLoanRepo, mockEventRepo, mockKafkaPublisher, new(MockNotificationService), mockDashboardCache)

		newAmount := float64(4500)
		_, payment, err := service.UpdatePayment(context.Background(), loanId.Hex(), paymentId.Hex(), models.UpdatePaymentRequest{Amount: &newAmount}, "staff-1")
		time.Sleep(100 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, float64(4500), payment.Amount)
		assert.Equal(t, 2, payment.Month)
		// A correction restamps the instalment.
		assert.True(t, payment.ReceivedAt.After(receivedAt))
		assert.WithinDuration(t, time.Now(), payment.ReceivedAt, time.Minute)
		mockLoanRepo.AssertExpectations(t)
		mockEventRepo.AssertExpectations(t)
		mockDashboardCache.AssertExpectations(t)
	})

	t.Run("Unknown payment id", func(t *testing.T) {
		mockLoanRepo := new(MockLoanRepo)
		mockLoanRepo.On("ActiveLoanById", loanId).Return(storedLoan(loanId, string(consts.LoanStatusApproved), nil), nil)

		service := newPaymentService(mockLoanRepo, new(MockLoanEventRepo), new(MockKafkaPublisher), new(MockNotificationService), new(MockDashboardCache))

		newAmount := float64(4500)
		_, _, err := service.UpdatePayment(context.Background(), loanId.Hex(), primitive.NewObjectID().Hex(), models.UpdatePaymentRequest{Amount: &newAmount}, "staff-1")

		assert.Equal(t, consts.ErrorPaymentNotFound, err)
		mockLoanRepo.AssertNotCalled(t, "ReplaceLoan", mock.Anything, mock.Anything)
	})

	t.Run("Malformed payment id", func(t *testing.T) {
		mockLoanRepo := new(MockLoanRepo)
		mockLoanRepo.On("ActiveLoanById", loanId).Return(storedLoan(loanId, string(consts.LoanStatusApproved), nil), nil)

		service := newPaymentService(mockLoanRepo, new(MockLoanEventRepo), new(MockKafkaPublisher), new(MockNotificationService), new(MockDashboardCache))

		_, _, err := service.UpdatePayment(context.Background(), loanId.Hex(), "nope", models.UpdatePaymentRequest{}, "staff-1")

		assert.Equal(t, consts.ErrorPaymentNotFound, err)
	})
}

func TestDeletePayment(t *testing.T) {
	loanId := primitive.NewObjectID()
	paymentId := primitive.NewObjectID()

	t.Run("Removes the instalment", func(t *testing.T) {
		mockLoanRepo := new(MockLoanRepo)
		mockEventRepo := new(MockLoanEventRepo)
		mockKafkaPublisher := new(MockKafkaPublisher)
		mockDashboardCache := new(MockDashboardCache)

		ledger := []models.Payment{
			{PaymentId: paymentId, Month: 1, Amount: 3000},
			{PaymentId: primitive.NewObjectID(), Month: 2, Amount: 2000},
		}
		mockLoanRepo.On("ActiveLoanById", loanId).Return(storedLoan(loanId, string(consts.LoanStatusApproved), ledger), nil)
		mockLoanRepo.On("ReplaceLoan", mock.Anything, mock.MatchedBy(func(loan *models.Loan) bool {
			return len(loan.Payments) == 1 && loan.Payments[0].Month == 2
		})).Return(nil)
		expectAsyncPaymentEvent(mockEventRepo, mockKafkaPublisher)
		mockDashboardCache.On("Invalidate", mock.Anything).Return(nil)

		service := newPaymentService(mockLoanRepo, mockEventRepo, mockKafkaPublisher, new(MockNotificationService), mockDashboardCache)

		loan, err := service.DeletePayment(context.Background(), loanId.Hex(), paymentId.Hex(), "admin-1")
		time.Sleep(100 * time.Millisecond)

		assert.NoError(t, err)
		assert.Len(t, loan.Payments, 1)
		mockLoanRepo.AssertExpectations(t)
		mockEventRepo.AssertExpectations(t)
		mockDashboardCache.AssertExpectations(t)
	})

	t.Run("Unknown payment id", func(t *testing.T) {
		mockLoanRepo := new(MockLoanRepo)
		mockLoanRepo.On("ActiveLoanById", loanId).Return(storedLoan(loanId, string(consts.LoanStatusApproved), nil), nil)

		service := newPaymentService(mockLoanRepo, new(MockLoanEventRepo), new(MockKafkaPublisher), new(MockNotificationService), new(MockDashboardCache))

		_, err := service.DeletePayment(context.Background(), loanId.Hex(), primitive.NewObjectID().Hex(), "admin-1")

		assert.Equal(t, consts.ErrorPaymentNotFound, err)
		mockLoanRepo.AssertNotCalled(t, "ReplaceLoan", mock.Anything, mock.Anything)
	})
}

func TestListPayments(t *testing.T) {
	loanId := primitive.NewObjectID()

	t.Run("Returns ledger with reconciliation", func(t *testing.T) {
		mockLoanRepo := new(MockLoanRepo)
		ledger := []models.Payment{
			{PaymentId: primitive.NewObjectID(), Month: 1, Amount: 3000},
		}
		mockLoanRepo.On("ActiveLoanById", loanId).Return(storedLoan(loanId, string(consts.LoanStatusApproved), ledger), nil)

		service := newPaymentService(mockLoanRepo, new(MockLoanEventRepo), new(MockKafkaPublisher), new(MockNotificationService), new(MockDashboardCache))

		payments, summary, err := service.ListPayments(context.Background(), loanId.Hex())

		assert.NoError(t, err)
		assert.Len(t, payments, 1)
		assert.Equal(t, float64(3000), summary.TotalPaid)
		assert.False(t, summary.IsPaid)
		assert.Equal(t, float64(2000), summary.RemainingAmount)
	})

	t.Run("Nil ledger comes back empty, not nil", func(t *testing.T) {
		mockLoanRepo := new(MockLoanRepo)
		mockLoanRepo.On("ActiveLoanById", loanId).Return(storedLoan(loanId, string(consts.LoanStatusApproved), nil), nil)

		service := newPaymentService(mockLoanRepo, new(MockLoanEventRepo), new(MockKafkaPublisher), new(MockNotificationService), new(MockDashboardCache))

		payments, summary, err := service.ListPayments(context.Background(), loanId.Hex())

		assert.NoError(t, err)
		assert.NotNil(t, payments)
		assert.Len(t, payments, 0)
		assert.Equal(t, float64(0), summary.TotalPaid)
		assert.Equal(t, float64(5000), summary.RemainingAmount)
	})
}

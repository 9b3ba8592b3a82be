package services

import (
	"context"
	"time"

	"aurum/karat_gold_loan/internal/pkg/common"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentService struct {
	loanRepo            LoanRepo
	eventRepo           LoanEventRepo
	producer            KafkaPublisherInterface
	notificationService NotificationServiceInterface
	dashboardCache      DashboardCacheInterface
}

func NewPaymentService(loanRepo LoanRepo, eventRepo LoanEventRepo, producer KafkaPublisherInterface, notificationService NotificationServiceInterface, dashboardCache DashboardCacheInterface) *PaymentService {
	return &PaymentService{
		loanRepo:            loanRepo,
		eventRepo:           eventRepo,
		producer:            producer,
		notificationService: notificationService,
		dashboardCache:      dashboardCache,
	}
}

// AddPayment appends an EMI instalment to the loan's ledger. One instalment
// per month of the term; the whole loan document is written back so the
// ledger never drifts from the record it belongs to.
func (s *PaymentService) AddPayment(ctx context.Context, loanId string, request models.AddPaymentRequest, receivedBy string) (*models.Loan, *models.Payment, error) {
	loan, err := s.loanById(ctx, loanId)
	if err != nil {
		return nil, nil, err
	}

	if !consts.IsValidPaymentMethod(consts.PaymentMethod(request.Method)) {
		return nil, nil, consts.ErrorInvalidPaymentMethod
	}
	if request.Month < 1 || request.Month > loan.TermMonths {
		logger.Warn(ctx, "Payment month %v outside term of %v months for loan %v", request.Month, loan.TermMonths, loan.LoanNumber)
		return nil, nil, consts.ErrorPaymentMonthOutOfRange
	}
	for _, existing := range loan.Payments {
		if existing.Month == request.Month {
			logger.Warn(ctx, "Month %v already collected for loan %v", request.Month, loan.LoanNumber)
			return nil, nil, consts.ErrorDuplicatePaymentMonth
		}
	}

	payment := common.SerializePayment(request, receivedBy)
	loan.Payments = append(loan.Payments, payment)

	if err := s.loanRepo.ReplaceLoan(ctx, loan); err != nil {
		return nil, nil, err
	}

	summary := BuildPaymentSummary(loan.MonthlyEMI, loan.Payments)
	logger.Info(ctx, "PAYMENT of %v received for loan %v month %v, total paid %v", payment.Amount, loan.LoanNumber, payment.Month, summary.TotalPaid)

	s.recordPaymentEvent(ctx, loan, consts.EventPaymentAdded, summary.TotalPaid, payment.Month)
	s.invalidateDashboard(ctx)
	go s.notificationService.NotifyCustomer(ctx, loan.Phone, consts.GoldLoanPaymentReceived, loan, &payment, &summary)

	return loan, &payment, nil
}

func (s *PaymentService) UpdatePayment(ctx context.Context, loanId string, paymentId string, request models.UpdatePaymentRequest, updatedBy string) (*models.Loan, *models.Payment, error) {
	loan, err := s.loanById(ctx, loanId)
	if err != nil {
		return nil, nil, err
	}

	paymentObjectId, err := primitive.ObjectIDFromHex(paymentId)
	if err != nil {
		return nil, nil, consts.ErrorPaymentNotFound
	}

	index := -1
	for i := range loan.Payments {
		if loan.Payments[i].PaymentId == paymentObjectId {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, nil, consts.ErrorPaymentNotFound
	}

	if request.Method != nil {
		if !consts.IsValidPaymentMethod(consts.PaymentMethod(*request.Method)) {
			return nil, nil, consts.ErrorInvalidPaymentMethod
		}
		loan.Payments[index].Method = *request.Method
	}
	if request.Amount != nil {
		loan.Payments[index].Amount = *request.Amount
	}
	if request.Notes != nil {
		loan.Payments[index].Notes = *request.Notes
	}
	// A correction restamps the instalment; the ledger records when the
	// figures were last touched, not when the cash first changed hands.
	loan.Payments[index].ReceivedAt = time.Now()

	if err := s.loanRepo.ReplaceLoan(ctx, loan); err != nil {
		return nil, nil, err
	}

	payment := loan.Payments[index]
	logger.Info(ctx, "PAYMENT %v on loan %v corrected by %v", paymentId, loan.LoanNumber, updatedBy)

	s.recordPaymentEvent(ctx, loan, consts.EventPaymentUpdated, TotalPaid(loan.Payments), payment.Month)
	s.invalidateDashboard(ctx)

	return loan, &payment, nil
}

func (s *PaymentService) DeletePayment(ctx context.Context, loanId string, paymentId string, deletedBy string) (*models.Loan, error) {
	loan, err := s.loanById(ctx, loanId)
	if err != nil {
		return nil, err
	}

	paymentObjectId, err := primitive.ObjectIDFromHex(paymentId)
	if err != nil {
		return nil, consts.ErrorPaymentNotFound
	}

	index := -1
	for i := range loan.Payments {
		if loan.Payments[i].PaymentId == paymentObjectId {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, consts.ErrorPaymentNotFound
	}

	removedMonth := loan.Payments[index].Month
	loan.Payments = append(loan.Payments[:index], loan.Payments[index+1:]...)

	if err := s.loanRepo.ReplaceLoan(ctx, loan); err != nil {
		return nil, err
	}
	logger.Info(ctx, "PAYMENT for month %v removed from loan %v by %v", removedMonth, loan.LoanNumber, deletedBy)

	s.recordPaymentEvent(ctx, loan, consts.EventPaymentDeleted, TotalPaid(loan.Payments), removedMonth)
	s.invalidateDashboard(ctx)

	return loan, nil
}

// ListPayments returns the ledger alongside its reconciliation.
func (s *PaymentService) ListPayments(ctx context.Context, loanId string) ([]models.Payment, models.PaymentSummary, error) {
	loan, err := s.loanById(ctx, loanId)
	if err != nil {
		return nil, models.PaymentSummary{}, err
	}

	payments := loan.Payments
	if payments == nil {
		payments = []models.Payment{}
	}

	return payments, BuildPaymentSummary(loan.MonthlyEMI, payments), nil
}

func (s *PaymentService) loanById(ctx context.Context, loanId string) (*models.Loan, error) {
	objectId, err := primitive.ObjectIDFromHex(loanId)
	if err != nil {
		return nil, consts.ErrorLoanNotFound
	}

	loan, err := s.loanRepo.ActiveLoanById(objectId)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			logger.Warn(ctx, "No loan found for id %v", loanId)
			return nil, consts.ErrorLoanNotFound
		}
		logger.Error(ctx, "Error fetching loan: %v", err)
		return nil, err
	}

	return loan, nil
}

func (s *PaymentService) recordPaymentEvent(ctx context.Context, loan *models.Loan, eventType consts.LoanEventType, totalPaid float64, paymentMonth int) {
	// The record carries the event's own GUID, and the live publish ships the
	// stored payload byte for byte, so the retry sweep replays the same thing.
	event := common.SerializeLoanEvent(*loan, eventType, "")
	event.Payload = common.SerializeLoanEventKafkaMessage(event.GUID, string(eventType), loan.LoanNumber, loan.CustomerName, loan.Phone, loan.Status, loan.Account, loan.LoanAmount, loan.MonthlyEMI, totalPaid, paymentMonth, "")

	eventId, err := s.eventRepo.CreateLoanEvent(ctx, event)
	if err != nil {
		logger.Error(ctx, "Error inserting loan event: %v", err)
		return
	}

	go func(ctx context.Context) {
		err := s.producer.PublishLoanEventToKafka(ctx, event.Payload)
		if err == nil {
			s.eventRepo.SetKafkaFlag(ctx, []string{eventId.Hex()})
		} else {
			logger.Error(ctx, "PublishLoanEventToKafka: %v", err)
		}
	}(ctx)
}

func (s *PaymentService) invalidateDashboard(ctx context.Context) {
	if err := s.dashboardCache.Invalidate(ctx); err != nil {
		logger.Error(ctx, "Dashboard cache invalidation failed: %v", err)
	}
}

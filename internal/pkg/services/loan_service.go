package services

import (
	"context"
	"time"

	"aurum/karat_gold_loan/internal/pkg/common"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"
	"aurum/karat_gold_loan/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LoanService struct {
	loanRepo            LoanRepo
	counterRepo         CounterRepo
	eventRepo           LoanEventRepo
	producer            KafkaPublisherInterface
	notificationService NotificationServiceInterface
	dashboardCache      DashboardCacheInterface
}

func NewLoanService(loanRepo LoanRepo, counterRepo CounterRepo, eventRepo LoanEventRepo, producer KafkaPublisherInterface, notificationService NotificationServiceInterface, dashboardCache DashboardCacheInterface) *LoanService {
	return &LoanService{
		loanRepo:            loanRepo,
		counterRepo:         counterRepo,
		eventRepo:           eventRepo,
		producer:            producer,
		notificationService: notificationService,
		dashboardCache:      dashboardCache,
	}
}

// CreateLoan registers a new gold loan. Loans are approved on submission;
// the shop owner vets the collateral in person before anything is keyed in.
func (s *LoanService) CreateLoan(ctx context.Context, request models.CreateLoanRequest, createdBy string) (*models.Loan, error) {

	cleanedPhone := utils.CleanPhone(request.Phone)
	isPhoneValid, phone_err := utils.IsValidPhone(cleanedPhone)
	if phone_err != nil {
		logger.Error(ctx, "Error in checking phone format")
	}
	if !isPhoneValid {
		logger.Error(ctx, "Phone format not valid")
		return nil, consts.ErrorPhoneFormatValidationFailed
	}
	request.Phone = cleanedPhone

	loanNumber, err := s.counterRepo.NextLoanNumber(ctx)
	if err != nil {
		logger.Error(ctx, "Error generating loan number: %v", err)
		return nil, err
	}

	loan := common.SerializeLoan(request, loanNumber, createdBy)
	if err := s.loanRepo.CreateLoan(ctx, loan); err != nil {
		return nil, err
	}
	logger.Info(ctx, "LOAN CREATED: %v for %v", loan.LoanNumber, loan.CustomerName)

	s.recordLoanEvent(ctx, &loan, consts.EventLoanCreated, 0, 0)
	s.invalidateDashboard(ctx)
	go s.notificationService.NotifyCustomer(ctx, loan.Phone, consts.GoldLoanApproved, &loan, nil, nil)

	return &loan, nil
}

// LoanById resolves one loan. Soft-deleted records stay hidden unless the
// caller asks for them; the handler grants that only to admins.
func (s *LoanService) LoanById(ctx context.Context, loanId string, includeInactive bool) (*models.Loan, error) {
	if !includeInactive {
		return s.activeLoan(ctx, loanId)
	}

	objectId, err := primitive.ObjectIDFromHex(loanId)
	if err != nil {
		return nil, consts.ErrorLoanNotFound
	}
	loan, err := s.loanRepo.LoanByFilter(bson.M{"_id": objectId})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, consts.ErrorLoanNotFound
		}
		logger.Error(ctx, "Error fetching loan: %v", err)
		return nil, err
	}
	return loan, nil
}

// activeLoan is the lookup every mutation starts from; writes against a
// soft-deleted loan are never allowed.
func (s *LoanService) activeLoan(ctx context.Context, loanId string) (*models.Loan, error) {
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

func (s *LoanService) ListLoans(ctx context.Context, query models.ListLoansQuery) ([]models.Loan, int64, error) {
	return s.loanRepo.FindLoans(ctx, query)
}

// UpdateLoan merges the set fields of the request into the stored record.
// Status, account, payments and closure move through their own operations.
func (s *LoanService) UpdateLoan(ctx context.Context, loanId string, request models.UpdateLoanRequest) (*models.Loan, error) {
	loan, err := s.activeLoan(ctx, loanId)
	if err != nil {
		return nil, err
	}

	if request.Phone != nil {
		cleanedPhone := utils.CleanPhone(*request.Phone)
		isPhoneValid, phone_err := utils.IsValidPhone(cleanedPhone)
		if phone_err != nil {
			logger.Error(ctx, "Error in checking phone format")
		}
		if !isPhoneValid {
			logger.Error(ctx, "Phone format not valid")
			return nil, consts.ErrorPhoneFormatValidationFailed
		}
		loan.Phone = cleanedPhone
	}
	if request.CustomerName != nil {
		loan.CustomerName = *request.CustomerName
	}
	if request.GuardianName != nil {
		loan.GuardianName = *request.GuardianName
	}
	if request.Address != nil {
		loan.Address = *request.Address
	}
	if request.IDProof != nil {
		loan.IDProof = *request.IDProof
	}
	if request.LoanAmount != nil {
		loan.LoanAmount = *request.LoanAmount
	}
	if request.InterestRate != nil {
		loan.InterestRate = *request.InterestRate
	}
	if request.MonthlyEMI != nil {
		loan.MonthlyEMI = *request.MonthlyEMI
	}
	if request.TermMonths != nil {
		loan.TermMonths = *request.TermMonths
	}
	if request.CollateralItems != nil {
		loan.CollateralItems = *request.CollateralItems
	}
	if request.Outsourcing != nil {
		loan.Outsourcing = request.Outsourcing
	}

	if err := s.loanRepo.ReplaceLoan(ctx, loan); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	return loan, nil
}

func (s *LoanService) UpdateStatus(ctx context.Context, loanId string, request models.UpdateStatusRequest, updatedBy string) (*models.Loan, error) {
	if request.Status == "" {
		return nil, consts.ErrorMissingStatus
	}
	status := consts.LoanStatus(request.Status)
	if status == consts.LoanStatusClosed {
		logger.Warn(ctx, "Attempted to close loan %v through a status update", loanId)
		return nil, consts.ErrorStatusClosedNotAllowed
	}
	if !consts.IsValidLoanStatus(status) {
		return nil, consts.ErrorInvalidStatus
	}

	loan, err := s.activeLoan(ctx, loanId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	fields := bson.M{"status": string(status)}
	loan.Status = string(status)
	if status == consts.LoanStatusApproved && loan.ApprovedAt == nil {
		fields["approvedAt"] = now
		loan.ApprovedAt = &now
	}

	if err := s.loanRepo.UpdateLoanFields(ctx, loan.LoanId, fields); err != nil {
		return nil, err
	}
	logger.Info(ctx, "LOAN %v STATUS CHANGED TO %v by %v", loan.LoanNumber, loan.Status, updatedBy)

	s.recordLoanEvent(ctx, loan, consts.EventStatusChanged, TotalPaid(loan.Payments), 0)
	s.invalidateDashboard(ctx)
	if status == consts.LoanStatusApproved {
		go s.notificationService.NotifyCustomer(ctx, loan.Phone, consts.GoldLoanApproved, loan, nil, nil)
	}

	return loan, nil
}

func (s *LoanService) UpdateAccount(ctx context.Context, loanId string, request models.UpdateAccountRequest, updatedBy string) (*models.Loan, error) {
	if !consts.IsValidLoanAccount(consts.LoanAccount(request.Account)) {
		return nil, consts.ErrorInvalidAccount
	}

	loan, err := s.activeLoan(ctx, loanId)
	if err != nil {
		return nil, err
	}

	loan.Account = request.Account
	if err := s.loanRepo.UpdateLoanFields(ctx, loan.LoanId, bson.M{"account": request.Account}); err != nil {
		return nil, err
	}
	logger.Info(ctx, "LOAN %v MOVED TO %v BOOK by %v", loan.LoanNumber, loan.Account, updatedBy)

	s.invalidateDashboard(ctx)
	return loan, nil
}

// CloseLoan settles an approved loan. When the caller does not supply a
// settlement figure the collected total stands in for it.
func (s *LoanService) CloseLoan(ctx context.Context, loanId string, request models.CloseLoanRequest, closedBy string) (*models.Loan, error) {
	loan, err := s.activeLoan(ctx, loanId)
	if err != nil {
		return nil, err
	}

	if loan.Status == string(consts.LoanStatusClosed) {
		return nil, consts.ErrorLoanAlreadyClosed
	}
	if loan.Status != string(consts.LoanStatusApproved) {
		logger.Warn(ctx, "Close refused for loan %v in status %v", loan.LoanNumber, loan.Status)
		return nil, consts.ErrorCloseNotApproved
	}

	totalPaid := TotalPaid(loan.Payments)
	finalAmount := totalPaid
	if request.FinalAmount != nil {
		finalAmount = *request.FinalAmount
	}

	now := time.Now()
	loan.Status = string(consts.LoanStatusClosed)
	loan.ClosedAt = &now
	loan.ClosedBy = closedBy
	loan.FinalAmount = finalAmount

	if err := s.loanRepo.ReplaceLoan(ctx, loan); err != nil {
		return nil, err
	}
	logger.Info(ctx, "LOAN %v CLOSED, settled at %v", loan.LoanNumber, finalAmount)

	s.recordLoanEvent(ctx, loan, consts.EventLoanClosed, totalPaid, 0)
	s.invalidateDashboard(ctx)
	go s.notificationService.NotifyCustomer(ctx, loan.Phone, consts.GoldLoanClosed, loan, nil, nil)

	return loan, nil
}

func (s *LoanService) SaveSignature(ctx context.Context, loanId string, request models.SignatureRequest) (*models.Loan, error) {
	if request.Signature == "" {
		return nil, consts.ErrorMissingSignature
	}

	loan, err := s.activeLoan(ctx, loanId)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	loan.Signature = request.Signature
	loan.SignedAt = &now
	if err := s.loanRepo.UpdateLoanFields(ctx, loan.LoanId, bson.M{"signature": request.Signature, "signedAt": now}); err != nil {
		return nil, err
	}

	return loan, nil
}

// DeleteLoan retires the record from every listing without destroying it.
func (s *LoanService) DeleteLoan(ctx context.Context, loanId string, deletedBy string) error {
	loan, err := s.activeLoan(ctx, loanId)
	if err != nil {
		return err
	}

	if err := s.loanRepo.SoftDeleteLoan(ctx, loan.LoanId); err != nil {
		return err
	}
	logger.Info(ctx, "LOAN %v DELETED by %v", loan.LoanNumber, deletedBy)

	s.recordLoanEvent(ctx, loan, consts.EventLoanDeleted, TotalPaid(loan.Payments), 0)
	s.invalidateDashboard(ctx)
	return nil
}

// PurgeLoans drops every loan document, active or not. Dev environments only.
func (s *LoanService) PurgeLoans(ctx context.Context, confirm string) (int64, error) {
	if confirm != "yes" {
		return 0, consts.ErrorPurgeNotConfirmed
	}

	deleted, err := s.loanRepo.PurgeLoans(ctx)
	if err != nil {
		return 0, err
	}
	logger.Warn(ctx, "PURGED %v loan documents", deleted)

	s.invalidateDashboard(ctx)
	return deleted, nil
}

// recordLoanEvent writes the lifecycle event and ships it to Kafka off the
// request path. The event document keeps the serialized record and both the
// live publish and the retry sweep send that record byte for byte; the
// published flag only flips on delivery.
func (s *LoanService) recordLoanEvent(ctx context.Context, loan *models.Loan, eventType consts.LoanEventType, totalPaid float64, paymentMonth int) {
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

func (s *LoanService) invalidateDashboard(ctx context.Context) {
	if err := s.dashboardCache.Invalidate(ctx); err != nil {
		logger.Error(ctx, "Dashboard cache invalidation failed: %v", err)
	}
}

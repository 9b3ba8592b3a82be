package services

import (
	"context"
	"time"

	"aurum/karat_gold_loan/internal/pkg/cache"
	"aurum/karat_gold_loan/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SFTPClientInterface interface {
	UploadFileToSFTP(localFilePath, remoteFilePath string) error
	MoveFileOnSFTP(srcPath, destPath string) error
	DeleteFileOnSFTP(filepath string) error
	DeleteLocalFile(filePath string) error
}

type LoanRepo interface {
	CreateLoan(ctx context.Context, loan models.Loan) error
	ActiveLoanById(loanId primitive.ObjectID) (*models.Loan, error)
	LoanByFilter(filter interface{}) (*models.Loan, error)
	FindLoans(ctx context.Context, query models.ListLoansQuery) ([]models.Loan, int64, error)
	ReplaceLoan(ctx context.Context, loan *models.Loan) error
	UpdateLoanFields(ctx context.Context, loanId primitive.ObjectID, fields bson.M) error
	SoftDeleteLoan(ctx context.Context, loanId primitive.ObjectID) error
	PurgeLoans(ctx context.Context) (int64, error)
}

type CounterRepo interface {
	NextLoanNumber(ctx context.Context) (string, error)
}

type LoanEventRepo interface {
	CreateLoanEvent(ctx context.Context, event models.LoanEvent) (primitive.ObjectID, error)
	SetKafkaFlag(ctx context.Context, eventIds []string) ([]string, error)
}

type NotificationServiceInterface interface {
	NotifyCustomer(ctx context.Context, phone string, event string, loan *models.Loan, payment *models.Payment, summary *models.PaymentSummary) error
}

type KafkaPublisherInterface interface {
	PublishLoanEventToKafka(ctx context.Context, payload string) error
}

type DashboardCacheInterface interface {
	Get(ctx context.Context, role string, userID string) (*models.DashboardStats, bool)
	Put(ctx context.Context, role string, userID string, stats *models.DashboardStats) error
	Invalidate(ctx context.Context) error
	Stats(ctx context.Context) cache.CacheStats
}

type LoanReportsRepo interface {
	DashboardTotals(ctx context.Context, matchFilter bson.M) (*models.DashboardTotalsRow, error)
	StatusSummary(ctx context.Context, matchFilter bson.M) ([]models.StatusSummary, error)
	AccountSummary(ctx context.Context, matchFilter bson.M) ([]models.AccountSummary, error)
	MonthlyLoanTrends(ctx context.Context, matchFilter bson.M, since time.Time) ([]models.MonthlyTrend, error)
	MonthlyCollections(ctx context.Context, matchFilter bson.M, since time.Time) ([]models.MonthlyCollectionRow, error)
	CollectionReportRows(ctx context.Context, dynamicStartDay string) ([]models.CollectionReportRow, error)
}

type ReminderLoanRepo interface {
	ApprovedActiveLoans(ctx context.Context) ([]models.Loan, error)
}

type LoanServiceInterface interface {
	CreateLoan(ctx context.Context, request models.CreateLoanRequest, createdBy string) (*models.Loan, error)
	LoanById(ctx context.Context, loanId string, includeInactive bool) (*models.Loan, error)
	ListLoans(ctx context.Context, query models.ListLoansQuery) ([]models.Loan, int64, error)
	UpdateLoan(ctx context.Context, loanId string, request models.UpdateLoanRequest) (*models.Loan, error)
	UpdateStatus(ctx context.Context, loanId string, request models.UpdateStatusRequest, updatedBy string) (*models.Loan, error)
	UpdateAccount(ctx context.Context, loanId string, request models.UpdateAccountRequest, updatedBy string) (*models.Loan, error)
	CloseLoan(ctx context.Context, loanId string, request models.CloseLoanRequest, closedBy string) (*models.Loan, error)
	SaveSignature(ctx context.Context, loanId string, request models.SignatureRequest) (*models.Loan, error)
	DeleteLoan(ctx context.Context, loanId string, deletedBy string) error
	PurgeLoans(ctx context.Context, confirm string) (int64, error)
}

type PaymentServiceInterface interface {
	AddPayment(ctx context.Context, loanId string, request models.AddPaymentRequest, receivedBy string) (*models.Loan, *models.Payment, error)
	UpdatePayment(ctx context.Context, loanId string, paymentId string, request models.UpdatePaymentRequest, updatedBy string) (*models.Loan, *models.Payment, error)
	DeletePayment(ctx context.Context, loanId string, paymentId string, deletedBy string) (*models.Loan, error)
	ListPayments(ctx context.Context, loanId string) ([]models.Payment, models.PaymentSummary, error)
}

type DashboardServiceInterface interface {
	DashboardStats(ctx context.Context, role string, userID string) (*models.DashboardStats, error)
	CacheStats(ctx context.Context) cache.CacheStats
	FlushCache(ctx context.Context) error
}

package services

import (
	"context"
	"time"

	"aurum/karat_gold_loan/internal/pkg/common"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"
	"aurum/karat_gold_loan/internal/pkg/utils/worker"
)

// PaymentReminderService walks the approved book and queues an SMS for every
// loan whose current instalment has not been collected.
type PaymentReminderService struct {
	loanRepo            ReminderLoanRepo
	notificationService NotificationServiceInterface
	workerPool          *worker.WorkerPool
}

func NewPaymentReminderService(loanRepo ReminderLoanRepo, notificationService NotificationServiceInterface, workerPool *worker.WorkerPool) *PaymentReminderService {
	return &PaymentReminderService{
		loanRepo:            loanRepo,
		notificationService: notificationService,
		workerPool:          workerPool,
	}
}

// SendDueReminders returns how many reminders were handed to the worker pool.
func (s *PaymentReminderService) SendDueReminders(ctx context.Context) (int, error) {
	loans, err := s.loanRepo.ApprovedActiveLoans(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	queued := 0
	for _, loan := range loans {
		dueMonth, ok := CurrentDueMonth(&loan, now)
		if !ok {
			continue
		}
		if hasPaymentForMonth(loan.Payments, dueMonth) {
			continue
		}

		reminderLoan := loan
		summary := BuildPaymentSummary(reminderLoan.MonthlyEMI, reminderLoan.Payments)
		s.workerPool.Submit(func() {
			err := s.notificationService.NotifyCustomer(ctx, reminderLoan.Phone, consts.GoldLoanPaymentDue, &reminderLoan, nil, &summary)
			if err != nil {
				logger.Error(ctx, "Payment reminder for %v failed: %v", reminderLoan.LoanNumber, err)
			}
		})
		queued++
	}

	logger.Info(ctx, "PAYMENT REMINDERS QUEUED: %v of %v approved loans", queued, len(loans))
	return queued, nil
}

// CurrentDueMonth returns which instalment is currently payable. The schedule
// starts at approval; instalment n falls due n calendar months later, and the
// final instalment stays due until collected.
func CurrentDueMonth(loan *models.Loan, now time.Time) (int, bool) {
	start := loan.AppliedAt
	if loan.ApprovedAt != nil {
		start = *loan.ApprovedAt
	}

	startIST := common.ConvertUTCToIST(start)
	nowIST := common.ConvertUTCToIST(now)
	months := (nowIST.Year()-startIST.Year())*12 + int(nowIST.Month()) - int(startIST.Month())
	if months < 1 {
		return 0, false
	}
	if months > loan.TermMonths {
		months = loan.TermMonths
	}

	return months, true
}

func hasPaymentForMonth(payments []models.Payment, month int) bool {
	for _, payment := range payments {
		if payment.Month == month {
			return true
		}
	}
	return false
}

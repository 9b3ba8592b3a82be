package jobs

import (
	"context"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"

	"github.com/robfig/cron/v3"
)

type CollectionReportRunner interface {
	CollectionDetailsReports(ctx context.Context, dynamicStartDay string) ([]models.CollectionReportRow, error)
}

type KafkaRetryRunner interface {
	RetryLoanEventMessages(ctx context.Context) ([]string, []string, error)
}

type DueReminderRunner interface {
	SendDueReminders(ctx context.Context) (int, error)
}

// Scheduler drives the in-process recurring jobs: the daily collections
// report, the Kafka retry sweep and the payment due reminders. Cron
// expressions come from the environment and include a seconds field.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(reportService CollectionReportRunner, retryService KafkaRetryRunner, reminderService DueReminderRunner) (*Scheduler, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(configs.REPORT_CRON, func() {
		ctx := context.Background()
		logger.Info(ctx, "CRON: collections report started")
		if _, err := reportService.CollectionDetailsReports(ctx, ""); err != nil {
			logger.Error(ctx, "CRON: collections report failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	_, err = c.AddFunc(configs.KAFKA_RETRY_CRON, func() {
		ctx := context.Background()
		successMessages, failedMessages, err := retryService.RetryLoanEventMessages(ctx)
		if err != nil {
			logger.Error(ctx, "CRON: kafka retry sweep failed: %v", err)
			return
		}
		logger.Info(ctx, "CRON: kafka retry sweep republished %v, failed %v", len(successMessages), len(failedMessages))
	})
	if err != nil {
		return nil, err
	}

	_, err = c.AddFunc(configs.REMINDER_CRON, func() {
		ctx := context.Background()
		if _, err := reminderService.SendDueReminders(ctx); err != nil {
			logger.Error(ctx, "CRON: payment reminder sweep failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info(context.Background(), "Scheduler started with report=%v retry=%v reminder=%v", configs.REPORT_CRON, configs.KAFKA_RETRY_CRON, configs.REMINDER_CRON)
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

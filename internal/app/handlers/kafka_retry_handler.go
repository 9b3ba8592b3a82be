package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoanEventRetrier re-publishes loan events whose Kafka publish failed.
type LoanEventRetrier interface {
	RetryLoanEventMessages(ctx context.Context) ([]string, []string, error)
}

// KafkaRetryHandler exposes the retry sweep over REST so operators can run
// it on demand between the scheduled cron passes.
type KafkaRetryHandler struct {
	service LoanEventRetrier
}

func NewKafkaRetryHandler(service LoanEventRetrier) *KafkaRetryHandler {
	return &KafkaRetryHandler{service: service}
}

func (h *KafkaRetryHandler) RetryLoanEventMessages(c *gin.Context) {
	successMessages, failedMessages, err := h.service.RetryLoanEventMessages(c.Request.Context())
	if err != nil && len(successMessages) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Partial failures still report 200: the sweep ran, and the failed
	// entries stay flagged for the next pass.
	body := gin.H{"Success Messages": successMessages, "failedMessages": failedMessages}
	if err != nil {
		body["error"] = err
	}
	c.JSON(http.StatusOK, body)
}

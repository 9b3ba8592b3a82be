package services

import (
	"math"

	"aurum/karat_gold_loan/internal/pkg/models"
)

// TotalPaid sums the ledger. An empty or nil ledger is zero, never an error.
func TotalPaid(payments []models.Payment) float64 {
	total := float64(0)
	for _, payment := range payments {
		total += payment.Amount
	}
	return total
}

// BuildPaymentSummary reconciles a loan's ledger against its EMI. The paid
// flag compares the collected total against a single monthly EMI; records
// migrated without an EMI reconcile as zero.
func BuildPaymentSummary(monthlyEMI float64, payments []models.Payment) models.PaymentSummary {
	totalPaid := TotalPaid(payments)

	remaining := monthlyEMI - totalPaid
	if remaining < 0 {
		remaining = 0
	}

	return models.PaymentSummary{
		TotalPaid:       totalPaid,
		IsPaid:          totalPaid >= monthlyEMI,
		RemainingAmount: remaining,
	}
}

// CollectionRate is the whole-percent ratio of collected to expected EMI.
func CollectionRate(totalPaid float64, totalEMI float64) int {
	if totalEMI == 0 {
		return 0
	}
	return int(math.Round(totalPaid / totalEMI * 100))
}

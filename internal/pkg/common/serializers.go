package common

import (
	"fmt"
	"strings"
	"time"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SerializeLoan builds a loan record from a create request. New loans are
// approved on submission, so approval and disbursement are stamped here.
func SerializeLoan(request models.CreateLoanRequest, loanNumber string, createdBy string) models.Loan {

	now := time.Now()
	account := request.Account
	if account == "" {
		account = string(consts.LoanAccountShop)
	}

	loan := models.Loan{
		LoanId:          primitive.NewObjectID(),
		LoanNumber:      loanNumber,
		GUID:            uuid.NewString(),
		CustomerName:    request.CustomerName,
		GuardianName:    request.GuardianName,
		Phone:           request.Phone,
		Address:         request.Address,
		IDProof:         request.IDProof,
		LoanAmount:      request.LoanAmount,
		InterestRate:    request.InterestRate,
		MonthlyEMI:      request.MonthlyEMI,
		TermMonths:      request.TermMonths,
		Status:          string(consts.LoanStatusApproved),
		Account:         account,
		AppliedAt:       now,
		ApprovedAt:      &now,
		DisbursedAt:     &now,
		Payments:        []models.Payment{},
		CollateralItems: request.CollateralItems,
		CreatedBy:       createdBy,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if loan.CollateralItems == nil {
		loan.CollateralItems = []models.CollateralItem{}
	}
	if request.Signature != "" {
		loan.Signature = request.Signature
		loan.SignedAt = &now
	}

	return loan
}

func SerializePayment(request models.AddPaymentRequest, receivedBy string) models.Payment {

	return models.Payment{
		PaymentId:  primitive.NewObjectID(),
		Month:      request.Month,
		Amount:     request.Amount,
		Method:     request.Method,
		Notes:      request.Notes,
		ReceivedBy: receivedBy,
		ReceivedAt: time.Now(),
	}

}

func SerializeLoanEvent(loan models.Loan, eventType consts.LoanEventType, payload string) models.LoanEvent {

	return models.LoanEvent{
		ID:               primitive.NewObjectID(),
		GUID:             uuid.NewString(),
		LoanId:           loan.LoanId,
		LoanNumber:       loan.LoanNumber,
		EventType:        string(eventType),
		Payload:          payload,
		PublishedToKafka: false,
		CreatedAt:        time.Now(),
	}

}

// SerializeLoanEventKafkaMessage flattens a lifecycle event into the
// comma-joined record the downstream consumer expects.
func SerializeLoanEventKafkaMessage(guid string, eventType string, loanNumber string, customerName string, phone string, status string, account string, loanAmount float64, monthlyEMI float64, totalPaid float64, paymentMonth int, errorCode string) string {
	values := []string{
		guid,
		time.Now().Format("01/02/2006 15:04"),
		eventType,
		loanNumber,
		customerName,
		phone,
		status,
		account,
		fmt.Sprintf("%.0f", loanAmount),
		fmt.Sprintf("%.0f", monthlyEMI),
		fmt.Sprintf("%.0f", totalPaid),
		fmt.Sprintf("%d", paymentMonth),
		errorCode,
	}
	return strings.Join(values, ",")

}

package documents

import (
	"testing"
	"time"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func documentLoan() *models.Loan {
	appliedAt := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	approvedAt := appliedAt
	return &models.Loan{
		LoanId:       primitive.NewObjectID(),
		LoanNumber:   "KGL-2026-0042",
		CustomerName: "Ramesh Kumar",
		GuardianName: "Suresh Kumar",
		Phone:        "9876543210",
		Address:      "12 Sarafa Bazaar, Indore",
		IDProof:      "Aadhaar XXXX-1234",
		LoanAmount:   50000,
		InterestRate: 18,
		MonthlyEMI:   5000,
		TermMonths:   12,
		Status:       string(consts.LoanStatusApproved),
		Account:      string(consts.LoanAccountShop),
		AppliedAt:    appliedAt,
		ApprovedAt:   &approvedAt,
		CollateralItems: []models.CollateralItem{
			{Name: "Gold chain", ItemType: "chain", GrossWeight: 25.5, NetWeight: 24.8, Purity: "22K", EstimatedValue: 80000},
		},
		Payments: []models.Payment{
			{PaymentId: primitive.NewObjectID(), Month: 1, Amount: 5000, Method: "cash", ReceivedBy: "staff-1", ReceivedAt: appliedAt.AddDate(0, 1, 0)},
		},
		CreatedBy: "staff-1",
		IsActive:  true,
	}
}

func TestRenderLoanDocument(t *testing.T) {
	loan := documentLoan()
	summary := models.PaymentSummary{TotalPaid: 5000, IsPaid: true, RemainingAmount: 0}

	html, err := RenderLoanDocument(loan, summary)

	assert.NoError(t, err)
	assert.Contains(t, html, "KGL-2026-0042")
	assert.Contains(t, html, "Ramesh Kumar")
	assert.Contains(t, html, "Rs. 50000.00")
	assert.Contains(t, html, "18.00% p.a.")
	assert.Contains(t, html, "Gold chain")
	assert.Contains(t, html, "24.800")
	assert.Contains(t, html, ">PAID<")
	// 2026-03-10 22:00 UTC is already the 11th in IST.
	assert.Contains(t, html, "11/03/2026")
	assert.NotContains(t, html, "<img")
}

func TestRenderLoanDocumentDueAndEmptySections(t *testing.T) {
	loan := documentLoan()
	loan.CollateralItems = nil
	loan.Payments = nil
	summary := models.PaymentSummary{TotalPaid: 0, IsPaid: false, RemainingAmount: 5000}

	html, err := RenderLoanDocument(loan, summary)

	assert.NoError(t, err)
	assert.Contains(t, html, ">DUE<")
	assert.Contains(t, html, "No collateral recorded.")
	assert.Contains(t, html, "No payments received yet.")
	assert.Contains(t, html, "Remaining: <strong>Rs. 5000.00</strong>")
}

func TestRenderLoanDocumentSignatureHandling(t *testing.T) {
	signedAt := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	loan := documentLoan()
	loan.Signature = "data:image/png;base64,iVBORw0KGgo="
	loan.SignedAt = &signedAt
	summary := models.PaymentSummary{TotalPaid: 5000, IsPaid: true}

	html, err := RenderLoanDocument(loan, summary)
	assert.NoError(t, err)
	assert.Contains(t, html, `src="data:image/png;base64,iVBORw0KGgo="`)

	// Anything that is not an inline image never reaches the img tag.
	loan.Signature = "javascript:alert(1)"
	html, err = RenderLoanDocument(loan, summary)
	assert.NoError(t, err)
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "javascript:alert")
}

func TestRenderLoanDocumentClosure(t *testing.T) {
	closedAt := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

	loan := documentLoan()
	loan.Status = string(consts.LoanStatusClosed)
	loan.ClosedAt = &closedAt
	loan.ClosedBy = "admin-1"
	loan.FinalAmount = 60000
	summary := models.PaymentSummary{TotalPaid: 60000, IsPaid: true}

	html, err := RenderLoanDocument(loan, summary)

	assert.NoError(t, err)
	assert.Contains(t, html, "Closure")
	assert.Contains(t, html, "admin-1")
	assert.Contains(t, html, "Rs. 60000.00")
	assert.Contains(t, html, "15/06/2026")
}

func TestRenderTraditionalLoanDocument(t *testing.T) {
	loan := documentLoan()
	summary := models.PaymentSummary{TotalPaid: 5000, IsPaid: true, RemainingAmount: 0}

	html, err := RenderTraditionalLoanDocument(loan, summary)

	assert.NoError(t, err)
	assert.Contains(t, html, "स्वर्ण ऋण पत्र")
	assert.Contains(t, html, "KGL-2026-0042")
	assert.Contains(t, html, "Ramesh Kumar")
	assert.Contains(t, html, "₹ 50000.00")
	assert.Contains(t, html, "12 माह")
	assert.Contains(t, html, "कुल जमा: ₹ 5000.00")
	assert.Contains(t, html, "गिरवी रखे गए आभूषणों का विवरण")
}

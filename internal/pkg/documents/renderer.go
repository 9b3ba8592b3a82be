package documents

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"aurum/karat_gold_loan/internal/pkg/common"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	standardTemplate    = "loan_document.html"
	traditionalTemplate = "loan_document_traditional.html"
)

// RenderLoanDocument renders the printable English agreement sheet for a loan.
func RenderLoanDocument(loan *models.Loan, summary models.PaymentSummary) (string, error) {
	return render(standardTemplate, loan, summary)
}

// RenderTraditionalLoanDocument renders the Hindi pawn-ticket style sheet with
// the same data.
func RenderTraditionalLoanDocument(loan *models.Loan, summary models.PaymentSummary) (string, error) {
	return render(traditionalTemplate, loan, summary)
}

func render(name string, loan *models.Loan, summary models.PaymentSummary) (string, error) {
	var buf bytes.Buffer
	err := documentTemplates.ExecuteTemplate(&buf, name, buildLoanDocumentData(loan, summary))
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

type loanDocumentData struct {
	LoanNumber      string
	CustomerName    string
	GuardianName    string
	Phone           string
	Address         string
	IDProof         string
	LoanAmount      string
	InterestRate    string
	MonthlyEMI      string
	TermMonths      int
	Status          string
	Account         string
	AppliedOn       string
	ApprovedOn      string
	ClosedOn        string
	ClosedBy        string
	FinalAmount     string
	TotalPaid       string
	RemainingAmount string
	IsPaid          bool
	CollateralItems []collateralItemData
	Payments        []paymentRowData
	Signature       template.URL
	SignedOn        string
	GeneratedOn     string
}

type collateralItemData struct {
	Name           string
	ItemType       string
	GrossWeight    string
	NetWeight      string
	Purity         string
	EstimatedValue string
	Description    string
}

type paymentRowData struct {
	Month      int
	Amount     string
	Method     string
	ReceivedBy string
	ReceivedOn string
}

func buildLoanDocumentData(loan *models.Loan, summary models.PaymentSummary) loanDocumentData {
	data := loanDocumentData{
		LoanNumber:      loan.LoanNumber,
		CustomerName:    loan.CustomerName,
		GuardianName:    loan.GuardianName,
		Phone:           loan.Phone,
		Address:         loan.Address,
		IDProof:         loan.IDProof,
		LoanAmount:      common.FormatMoney(loan.LoanAmount),
		InterestRate:    fmt.Sprintf("%.2f", loan.InterestRate),
		MonthlyEMI:      common.FormatMoney(loan.MonthlyEMI),
		TermMonths:      loan.TermMonths,
		Status:          loan.Status,
		Account:         loan.Account,
		AppliedOn:       formatDocumentDate(loan.AppliedAt),
		ApprovedOn:      formatOptionalDocumentDate(loan.ApprovedAt),
		ClosedOn:        formatOptionalDocumentDate(loan.ClosedAt),
		ClosedBy:        loan.ClosedBy,
		TotalPaid:       common.FormatMoney(summary.TotalPaid),
		RemainingAmount: common.FormatMoney(summary.RemainingAmount),
		IsPaid:          summary.IsPaid,
		SignedOn:        formatOptionalDocumentDate(loan.SignedAt),
		GeneratedOn:     common.ConvertUTCToIST(time.Now().UTC()).Format(consts.ReportDateTimeFormat),
	}

	if loan.ClosedAt != nil {
		data.FinalAmount = common.FormatMoney(loan.FinalAmount)
	}

	// html/template refuses data URIs in src attributes unless they are typed;
	// anything that is not an inline image stays out of the img tag.
	if strings.HasPrefix(loan.Signature, "data:image/") {
		data.Signature = template.URL(loan.Signature)
	}

	for _, item := range loan.CollateralItems {
		data.CollateralItems = append(data.CollateralItems, collateralItemData{
			Name:           item.Name,
			ItemType:       item.ItemType,
			GrossWeight:    fmt.Sprintf("%.3f", item.GrossWeight),
			NetWeight:      fmt.Sprintf("%.3f", item.NetWeight),
			Purity:         item.Purity,
			EstimatedValue: common.FormatMoney(item.EstimatedValue),
			Description:    item.Description,
		})
	}

	for _, payment := range loan.Payments {
		data.Payments = append(data.Payments, paymentRowData{
			Month:      payment.Month,
			Amount:     common.FormatMoney(payment.Amount),
			Method:     payment.Method,
			ReceivedBy: payment.ReceivedBy,
			ReceivedOn: formatDocumentDate(payment.ReceivedAt),
		})
	}

	return data
}

func formatDocumentDate(t time.Time) string {
	return common.ConvertUTCToIST(t).Format(consts.DocumentDateFormat)
}

func formatOptionalDocumentDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return formatDocumentDate(*t)
}

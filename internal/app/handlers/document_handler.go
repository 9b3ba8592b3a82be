package handlers

import (
	"net/http"

	"aurum/karat_gold_loan/internal/pkg/documents"
	"aurum/karat_gold_loan/internal/pkg/models"
	"aurum/karat_gold_loan/internal/pkg/services"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	loanService services.LoanServiceInterface
}

func NewDocumentHandler(loanService services.LoanServiceInterface) *DocumentHandler {
	return &DocumentHandler{loanService: loanService}
}

// DownloadLoanDocument serves the printable English agreement sheet.
func (h *DocumentHandler) DownloadLoanDocument(c *gin.Context) {
	h.renderDocument(c, documents.RenderLoanDocument)
}

// DownloadTraditionalLoanDocument serves the Hindi pawn-ticket variant.
func (h *DocumentHandler) DownloadTraditionalLoanDocument(c *gin.Context) {
	h.renderDocument(c, documents.RenderTraditionalLoanDocument)
}

func (h *DocumentHandler) renderDocument(c *gin.Context, render func(*models.Loan, models.PaymentSummary) (string, error)) {
	// Admins can still print documents for retired records.
	loan, err := h.loanService.LoanById(c.Request.Context(), c.Param("id"), allowInactive(c))
	if err != nil {
		respondError(c, err)
		return
	}

	html, err := render(loan, services.BuildPaymentSummary(loan.MonthlyEMI, loan.Payments))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

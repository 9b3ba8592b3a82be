package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"aurum/karat_gold_loan/internal/app/middleware"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/models"
	"aurum/karat_gold_loan/internal/pkg/services"
	"aurum/karat_gold_loan/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const validationCodePrefix = "KARAT1_GOLD_LOAN_VALIDATION_"

// respondError maps service errors onto HTTP statuses: unknown entities are
// 404, catalog validation failures are 400, everything else is 500 with the
// raw error text and the generic internal code.
func respondError(c *gin.Context, err error) {
	var customErr *models.CustomError
	if errors.As(err, &customErr) {
		switch {
		case errors.Is(err, consts.ErrorLoanNotFound), errors.Is(err, consts.ErrorPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": customErr.ErrorCode()})
			return
		case strings.HasPrefix(customErr.ErrorCode(), validationCodePrefix):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": customErr.ErrorCode()})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": utils.GetErrorCode(err)})
}

type LoanHandler struct {
	loanService services.LoanServiceInterface
	validator   *validator.Validate
}

func NewLoanHandler(loanService services.LoanServiceInterface) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		validator:   validator.New(),
	}
}

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var body models.CreateLoanRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.Struct(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	loan, err := h.loanService.CreateLoan(c.Request.Context(), body, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, loan)
}

func (h *LoanHandler) ListLoans(c *gin.Context) {
	query := parseListLoansQuery(c)

	loans, total, err := h.loanService.ListLoans(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loans": loans,
		"total": total,
		"page":  query.Page,
		"limit": query.Limit,
	})
}

func (h *LoanHandler) LoanById(c *gin.Context) {
	loan, err := h.loanService.LoanById(c.Request.Context(), c.Param("id"), allowInactive(c))
	if err != nil {
		respondError(c, err)
		return
	}

	summary := services.BuildPaymentSummary(loan.MonthlyEMI, loan.Payments)
	c.JSON(http.StatusOK, gin.H{"loan": loan, "paymentSummary": summary})
}

func (h *LoanHandler) UpdateLoan(c *gin.Context) {
	var body models.UpdateLoanRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.Struct(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := h.loanService.UpdateLoan(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) UpdateStatus(c *gin.Context) {
	var body models.UpdateStatusRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	loan, err := h.loanService.UpdateStatus(c.Request.Context(), c.Param("id"), body, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) UpdateAccount(c *gin.Context) {
	var body models.UpdateAccountRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	loan, err := h.loanService.UpdateAccount(c.Request.Context(), c.Param("id"), body, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) CloseLoan(c *gin.Context) {
	var body models.CloseLoanRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.Struct(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	loan, err := h.loanService.CloseLoan(c.Request.Context(), c.Param("id"), body, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) SaveSignature(c *gin.Context) {
	var body models.SignatureRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := h.loanService.SaveSignature(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	user := middleware.CurrentUser(c)
	err := h.loanService.DeleteLoan(c.Request.Context(), c.Param("id"), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "loan deactivated"})
}

func (h *LoanHandler) PurgeLoans(c *gin.Context) {
	purged, err := h.loanService.PurgeLoans(c.Request.Context(), c.Query("confirm"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"purged": purged})
}

// allowInactive honors the includeInactive query flag for admins only; staff
// never see soft-deleted records.
func allowInactive(c *gin.Context) bool {
	return c.Query("includeInactive") == "true" && middleware.CurrentUser(c).Role == consts.RoleAdmin
}

func parseListLoansQuery(c *gin.Context) models.ListLoansQuery {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return models.ListLoansQuery{
		Status:          c.Query("status"),
		Account:         c.Query("account"),
		Search:          c.Query("search"),
		IncludeInactive: allowInactive(c),
		Page:            page,
		Limit:           limit,
		SortBy:          c.Query("sortBy"),
		SortOrder:       c.Query("sortOrder"),
	}
}

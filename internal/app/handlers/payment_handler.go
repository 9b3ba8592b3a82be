package handlers

import (
	"net/http"

	"aurum/karat_gold_loan/internal/app/middleware"
	"aurum/karat_gold_loan/internal/pkg/models"
	"aurum/karat_gold_loan/internal/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PaymentHandler struct {
	paymentService services.PaymentServiceInterface
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService services.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator.New(),
	}
}

func (h *PaymentHandler) AddPayment(c *gin.Context) {
	var body models.AddPaymentRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.Struct(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	loan, payment, err := h.paymentService.AddPayment(c.Request.Context(), c.Param("id"), body, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"payment":        payment,
		"paymentSummary": services.BuildPaymentSummary(loan.MonthlyEMI, loan.Payments),
	})
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, summary, err := h.paymentService.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments, "paymentSummary": summary})
}

func (h *PaymentHandler) UpdatePayment(c *gin.Context) {
	var body models.UpdatePaymentRequest

	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.Struct(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	loan, payment, err := h.paymentService.UpdatePayment(c.Request.Context(), c.Param("id"), c.Param("paymentId"), body, user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment":        payment,
		"paymentSummary": services.BuildPaymentSummary(loan.MonthlyEMI, loan.Payments),
	})
}

func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	user := middleware.CurrentUser(c)
	loan, err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("id"), c.Param("paymentId"), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "payment removed",
		"paymentSummary": services.BuildPaymentSummary(loan.MonthlyEMI, loan.Payments),
	})
}

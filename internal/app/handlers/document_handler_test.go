package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"aurum/karat_gold_loan/internal/pkg/consts"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDownloadLoanDocumentHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Renders HTML", func(t *testing.T) {
		loan := handlerLoan()
		mockService := new(MockLoanService)
		mockService.On("LoanById", mock.Anything, loan.LoanId.Hex(), false).Return(loan, nil)
		handler := NewDocumentHandler(mockService)

		w := httptest.NewRecorder()
		c, _ := testContext(w, "GET", "/loans/"+loan.LoanId.Hex()+"/download", "")
		c.Params = gin.Params{{Key: "id", Value: loan.LoanId.Hex()}}

		handler.DownloadLoanDocument(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "KGL-2026-0042")
		assert.Contains(t, w.Body.String(), "Ramesh Kumar")
	})

	t.Run("Unknown loan is JSON 404", func(t *testing.T) {
		mockService := new(MockLoanService)
		mockService.On("LoanById", mock.Anything, "missing", false).Return(nil, consts.ErrorLoanNotFound)
		handler := NewDocumentHandler(mockService)

		w := httptest.NewRecorder()
		c, _ := testContext(w, "GET", "/loans/missing/download", "")
		c.Params = gin.Params{{Key: "id", Value: "missing"}}

		handler.DownloadLoanDocument(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"KARAT1_GOLD_LOAN_LOAN_NOT_FOUND"`)
	})
}

func TestDownloadTraditionalLoanDocumentHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	loan := handlerLoan()
	mockService := new(MockLoanService)
	mockService.On("LoanById", mock.Anything, loan.LoanId.Hex(), false).Return(loan, nil)
	handler := NewDocumentHandler(mockService)

	w := httptest.NewRecorder()
	c, _ := testContext(w, "GET", "/loans/"+loan.LoanId.Hex()+"/download/traditional", "")
	c.Params = gin.Params{{Key: "id", Value: loan.LoanId.Hex()}}

	handler.DownloadTraditionalLoanDocument(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "स्वर्ण ऋण पत्र")
}

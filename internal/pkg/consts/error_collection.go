package consts

import "aurum/karat_gold_loan/internal/pkg/models"

var (
	ErrorLoanNotFound = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_LOAN_NOT_FOUND",
		Message: "loan not found",
	}
	ErrorPaymentNotFound = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_PAYMENT_NOT_FOUND",
		Message: "payment not found",
	}
	ErrorMissingStatus = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_STATUS_MISSING",
		Message: "status is required",
	}
	ErrorInvalidStatus = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_STATUS_INVALID",
		Message: "invalid loan status",
	}
	ErrorStatusClosedNotAllowed = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_STATUS_CLOSED_NOT_ALLOWED",
		Message: "loans are closed through the close operation, not a status update",
	}
	ErrorInvalidAccount = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_ACCOUNT_INVALID",
		Message: "invalid loan account",
	}
	ErrorInvalidPaymentMethod = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_PAYMENT_METHOD_INVALID",
		Message: "invalid payment method",
	}
	ErrorDuplicatePaymentMonth = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_PAYMENT_MONTH_DUPLICATE",
		Message: "payment already recorded for this month",
	}
	ErrorPaymentMonthOutOfRange = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_PAYMENT_MONTH_OUT_OF_RANGE",
		Message: "payment month must be between 1 and the loan term",
	}
	ErrorCloseNotApproved = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_CLOSE_REQUIRES_APPROVED",
		Message: "only approved loans can be closed",
	}
	ErrorLoanAlreadyClosed = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_LOAN_ALREADY_CLOSED",
		Message: "loan is already closed",
	}
	ErrorMissingSignature = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_SIGNATURE_MISSING",
		Message: "signature is required",
	}
	ErrorPhoneFormatValidationFailed = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_PHONE_FORMAT",
		Message: "phone number failed format validation",
	}
	ErrorNoDocumentFound = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_INTERNAL_ERROR_NO_DOCUMENTS_FOUND",
		Message: "No documents in result",
	}
	ErrorPurgeNotConfirmed = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_VALIDATION_PURGE_NOT_CONFIRMED",
		Message: "purge requires confirm=yes",
	}
	ErrorMissingRequiredInputs = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_INTERNAL_ERROR_MISSING_MESSAGE_EVENT",
		Message: "Missing required inputs for get message Id function",
	}
	ErrorMessageTemplateNotFound = &models.CustomError{
		Code:    "KARAT1_GOLD_LOAN_INTERNAL_ERROR_MESSAGE_TEMPLATE_NOT_FOUND",
		Message: "no active message template for event",
	}
)

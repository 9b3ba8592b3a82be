package consts

type LoanStatus string

const (
	LoanStatusPending     LoanStatus = "pending"
	LoanStatusUnderReview LoanStatus = "under_review"
	LoanStatusApproved    LoanStatus = "approved"
	LoanStatusRejected    LoanStatus = "rejected"
	// LoanStatusDisbursed is still present on older records; new flows never set it.
	LoanStatusDisbursed LoanStatus = "disbursed"
	LoanStatusClosed    LoanStatus = "closed"
)

type LoanAccount string

const (
	LoanAccountShop       LoanAccount = "shop"
	LoanAccountBank       LoanAccount = "bank"
	LoanAccountOutsourced LoanAccount = "outsourced"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodCard         PaymentMethod = "card"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type LoanEventType string

const (
	EventLoanCreated    LoanEventType = "loan_created"
	EventStatusChanged  LoanEventType = "status_changed"
	EventPaymentAdded   LoanEventType = "payment_received"
	EventPaymentUpdated LoanEventType = "payment_updated"
	EventPaymentDeleted LoanEventType = "payment_deleted"
	EventLoanClosed     LoanEventType = "loan_closed"
	EventLoanDeleted    LoanEventType = "loan_deleted"
)

// ValidLoanStatuses lists every status accepted on records, legacy values included.
var ValidLoanStatuses = []LoanStatus{
	LoanStatusPending,
	LoanStatusUnderReview,
	LoanStatusApproved,
	LoanStatusRejected,
	LoanStatusDisbursed,
	LoanStatusClosed,
}

var ValidLoanAccounts = []LoanAccount{
	LoanAccountShop,
	LoanAccountBank,
	LoanAccountOutsourced,
}

var ValidPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodUPI,
	PaymentMethodBankTransfer,
	PaymentMethodCheque,
	PaymentMethodCard,
}

func IsValidLoanStatus(s LoanStatus) bool {
	for _, v := range ValidLoanStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func IsValidLoanAccount(a LoanAccount) bool {
	for _, v := range ValidLoanAccounts {
		if v == a {
			return true
		}
	}
	return false
}

func IsValidPaymentMethod(m PaymentMethod) bool {
	for _, v := range ValidPaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

package consts

const (
	GoldLoanApproved        = "GoldLoanApproved"
	GoldLoanPaymentReceived = "GoldLoanPaymentReceived"
	GoldLoanClosed          = "GoldLoanClosed"
	GoldLoanPaymentDue      = "GoldLoanPaymentDue"
)

package consts

const (
	CustomerName    = "CUSTOMER_NAME"
	LoanNumber      = "LOAN_NUMBER"
	LoanAmount      = "LOAN_AMOUNT"
	EmiAmount       = "EMI_AMOUNT"
	PaymentAmount   = "PAYMENT_AMOUNT"
	PaymentMonth    = "PAYMENT_MONTH"
	RemainingAmount = "REMAINING_AMOUNT"
	FinalAmount     = "FINAL_AMOUNT"
	LoanDate        = "LOAN_DATE"
)

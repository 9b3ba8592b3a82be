package models

type CreateLoanRequest struct {
	CustomerName    string           `json:"customerName" validate:"required"`
	GuardianName    string           `json:"guardianName"`
	Phone           string           `json:"phone" validate:"required"`
	Address         string           `json:"address"`
	IDProof         string           `json:"idProof"`
	LoanAmount      float64          `json:"loanAmount" validate:"required,gt=0"`
	InterestRate    float64          `json:"interestRate" validate:"gte=0"`
	MonthlyEMI      float64          `json:"monthlyEMI" validate:"required,gt=0"`
	TermMonths      int              `json:"termMonths" validate:"required,gte=1,lte=120"`
	Account         string           `json:"account" validate:"omitempty,oneof=shop bank outsourced"`
	CollateralItems []CollateralItem `json:"collateralItems"`
	Signature       string           `json:"signature"`
}

type UpdateLoanRequest struct {
	CustomerName    *string             `json:"customerName"`
	GuardianName    *string             `json:"guardianName"`
	Phone           *string             `json:"phone"`
	Address         *string             `json:"address"`
	IDProof         *string             `json:"idProof"`
	LoanAmount      *float64            `json:"loanAmount" validate:"omitempty,gt=0"`
	InterestRate    *float64            `json:"interestRate" validate:"omitempty,gte=0"`
	MonthlyEMI      *float64            `json:"monthlyEMI" validate:"omitempty,gt=0"`
	TermMonths      *int                `json:"termMonths" validate:"omitempty,gte=1,lte=120"`
	CollateralItems *[]CollateralItem   `json:"collateralItems"`
	Outsourcing     *OutsourcingDetails `json:"outsourcing"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type UpdateAccountRequest struct {
	Account string `json:"account"`
}

type CloseLoanRequest struct {
	FinalAmount *float64 `json:"finalAmount" validate:"omitempty,gt=0"`
	Notes       string   `json:"notes"`
}

type SignatureRequest struct {
	Signature string `json:"signature"`
}

type AddPaymentRequest struct {
	Month  int     `json:"month" validate:"required,gte=1"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=cash upi bank_transfer cheque card"`
	Notes  string  `json:"notes"`
}

type UpdatePaymentRequest struct {
	Amount *float64 `json:"amount" validate:"omitempty,gt=0"`
	Method *string  `json:"method" validate:"omitempty,oneof=cash upi bank_transfer cheque card"`
	Notes  *string  `json:"notes"`
}

// ListLoansQuery carries the parsed query string of GET /loans.
type ListLoansQuery struct {
	Status          string
	Account         string
	Search          string
	IncludeInactive bool
	Page            int64
	Limit           int64
	SortBy          string
	SortOrder       string
}

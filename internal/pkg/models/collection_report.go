package models

import "time"

type CollectionReportRow struct {
	LoanNumber       string    `json:"loanNumber"`
	CustomerName     string    `json:"customerName"`
	Phone            string    `json:"phone"`
	Account          string    `json:"account"`
	PaymentMonth     int       `json:"paymentMonth"`
	Amount           float64   `json:"amount"`
	Method           string    `json:"method"`
	ReceivedBy       string    `json:"receivedBy"`
	ReceivedDatetime time.Time `json:"receivedDatetime"`
}

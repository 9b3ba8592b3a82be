package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Loan struct {
	LoanId          primitive.ObjectID  `bson:"_id" json:"id"`
	LoanNumber      string              `bson:"loanNumber" json:"loanNumber"`
	GUID            string              `bson:"GUID" json:"guid"`
	CustomerName    string              `bson:"customerName" json:"customerName"`
	GuardianName    string              `bson:"guardianName" json:"guardianName"`
	Phone           string              `bson:"phone" json:"phone"`
	Address         string              `bson:"address" json:"address"`
	IDProof         string              `bson:"idProof" json:"idProof"`
	LoanAmount      float64             `bson:"loanAmount" json:"loanAmount"`
	InterestRate    float64             `bson:"interestRate" json:"interestRate"`
	MonthlyEMI      float64             `bson:"monthlyEMI" json:"monthlyEMI"`
	TermMonths      int                 `bson:"termMonths" json:"termMonths"`
	Status          string              `bson:"status" json:"status"`
	Account         string              `bson:"account" json:"account"`
	AppliedAt       time.Time           `bson:"appliedAt" json:"appliedAt"`
	ApprovedAt      *time.Time          `bson:"approvedAt" json:"approvedAt,omitempty"`
	DisbursedAt     *time.Time          `bson:"disbursedAt" json:"disbursedAt,omitempty"`
	ClosedAt        *time.Time          `bson:"closedAt" json:"closedAt,omitempty"`
	ClosedBy        string              `bson:"closedBy" json:"closedBy,omitempty"`
	FinalAmount     float64             `bson:"finalAmount" json:"finalAmount,omitempty"`
	Payments        []Payment           `bson:"payments" json:"payments"`
	CollateralItems []CollateralItem    `bson:"collateralItems" json:"collateralItems"`
	Signature       string              `bson:"signature,omitempty" json:"signature,omitempty"`
	SignedAt        *time.Time          `bson:"signedAt" json:"signedAt,omitempty"`
	Outsourcing     *OutsourcingDetails `bson:"outsourcing,omitempty" json:"outsourcing,omitempty"`
	CreatedBy       string              `bson:"createdBy" json:"createdBy"`
	IsActive        bool                `bson:"isActive" json:"isActive"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type Payment struct {
	PaymentId  primitive.ObjectID `bson:"paymentId" json:"paymentId"`
	Month      int                `bson:"month" json:"month"`
	Amount     float64            `bson:"amount" json:"amount"`
	Method     string             `bson:"method" json:"method"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ReceivedBy string             `bson:"receivedBy" json:"receivedBy"`
	ReceivedAt time.Time          `bson:"receivedAt" json:"receivedAt"`
}

type CollateralItem struct {
	Name           string  `bson:"name" json:"name"`
	ItemType       string  `bson:"itemType" json:"itemType"`
	GrossWeight    float64 `bson:"grossWeight" json:"grossWeight"`
	NetWeight      float64 `bson:"netWeight" json:"netWeight"`
	Purity         string  `bson:"purity" json:"purity"`
	EstimatedValue float64 `bson:"estimatedValue" json:"estimatedValue"`
	Description    string  `bson:"description,omitempty" json:"description,omitempty"`
}

type OutsourcingDetails struct {
	PartnerName   string     `bson:"partnerName" json:"partnerName"`
	PartnerRef    string     `bson:"partnerRef" json:"partnerRef"`
	TransferredAt *time.Time `bson:"transferredAt" json:"transferredAt,omitempty"`
	Notes         string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

// PaymentSummary is derived from a loan's EMI and ledger, never stored.
type PaymentSummary struct {
	TotalPaid       float64 `json:"totalPaid"`
	IsPaid          bool    `json:"isPaid"`
	RemainingAmount float64 `json:"remainingAmount"`
}

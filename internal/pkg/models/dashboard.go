package models

// DashboardStats is the cached payload of GET /loans/dashboard/stats.
type DashboardStats struct {
	Totals         DashboardTotals  `json:"totals"`
	StatusSummary  []StatusSummary  `json:"statusSummary"`
	AccountSummary []AccountSummary `json:"accountSummary"`
	MonthlyTrends  []MonthlyTrend   `json:"monthlyTrends"`
	GeneratedAt    string           `json:"generatedAt"`
}

type DashboardTotals struct {
	TotalLoans     int64   `json:"totalLoans"`
	TotalPrincipal float64 `json:"totalPrincipal"`
	TotalEMI       float64 `json:"totalEMI"`
	TotalCollected float64 `json:"totalCollected"`
	CollectionRate int     `json:"collectionRate"`
}

type StatusSummary struct {
	Status    string  `bson:"_id" json:"status"`
	Count     int64   `bson:"count" json:"count"`
	Principal float64 `bson:"principal" json:"principal"`
}

type AccountSummary struct {
	Account   string  `bson:"_id" json:"account"`
	Count     int64   `bson:"count" json:"count"`
	Principal float64 `bson:"principal" json:"principal"`
}

type MonthlyTrend struct {
	Month          string  `bson:"_id" json:"month"`
	LoansOpened    int64   `bson:"loansOpened" json:"loansOpened"`
	PrincipalGiven float64 `bson:"principalGiven" json:"principalGiven"`
	Collected      float64 `bson:"collected" json:"collected"`
}

// DashboardTotalsRow is the single-document result of the totals pipeline.
type DashboardTotalsRow struct {
	TotalLoans     int64   `bson:"totalLoans"`
	TotalPrincipal float64 `bson:"totalPrincipal"`
	TotalEMI       float64 `bson:"totalEMI"`
	TotalCollected float64 `bson:"totalCollected"`
}

// MonthlyCollectionRow is the per-month result of the collections pipeline.
type MonthlyCollectionRow struct {
	Month     string  `bson:"_id"`
	Collected float64 `bson:"collected"`
}

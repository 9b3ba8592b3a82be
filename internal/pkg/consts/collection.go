package consts

const (
	LoansCollection      = "Loans"
	LoanEventsCollection = "LoanEvents"
	MessagesCollection   = "Messages"
	CountersCollection   = "Counters"
)

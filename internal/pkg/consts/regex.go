package consts

const (
	ObjectIDRegexStr   = `^[0-9a-fA-F]{24}$`
	DatetimeRegexStr   = `^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}\.[0-9]{3}Z$`
	ValidIndianMobile  = `^(\+91|91|0)?[6-9]\d{9}$`
	ValidLoanNumberStr = `^[A-Z]{2,5}-[0-9]{4}-[0-9]{4,}$`
)

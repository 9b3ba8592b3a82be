package consts

const (
	Success  = "Success"
	Fail     = "Fail"
	Active   = "Active"
	Inactive = "Inactive"

	SuccessMessageCollectionsReport           = "Report uploaded to GCS Bucket"
	SuccessProcessingMessageCollectionsReport = "Report Generation request received"

	ReportDateTimeFormat     = "2006-01-02 15:04:05"
	ReportFileNameDateFormat = "2006-01-02"
	DocumentDateFormat       = "02/01/2006"
	FloatTwoDecimalFormat    = "%.2f"

	DatetimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

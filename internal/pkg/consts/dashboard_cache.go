package consts

type DashboardCacheError string

const (
	DashboardCacheKeyPrefix = "dashboard:stats:"
	DashboardCacheKeySet    = "dashboard:stats:keys"

	ErrorQueryingDatabase   DashboardCacheError = "error querying the database"
	NoDataInDatabase        DashboardCacheError = "No data found in MongoDB"
	DataFetchedFromDatabase DashboardCacheError = "data fetched from mongodb successfully"
)

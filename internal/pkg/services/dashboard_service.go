package services

import (
	"context"
	"sort"
	"time"

	"aurum/karat_gold_loan/internal/pkg/cache"
	"aurum/karat_gold_loan/internal/pkg/common"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"
	"aurum/karat_gold_loan/internal/pkg/otel"

	"go.mongodb.org/mongo-driver/bson"
)

// trendWindowMonths is how far back the monthly trend series reaches,
// current month included.
const trendWindowMonths = 12

type DashboardService struct {
	reportsRepo    LoanReportsRepo
	dashboardCache DashboardCacheInterface
}

func NewDashboardService(reportsRepo LoanReportsRepo, dashboardCache DashboardCacheInterface) *DashboardService {
	return &DashboardService{
		reportsRepo:    reportsRepo,
		dashboardCache: dashboardCache,
	}
}

// DashboardStats serves the portfolio dashboard for one requester. Figures
// are cached per role and requester; any loan mutation flushes the cache, so
// a hit is always current. Admins see the whole book, staff see their own.
func (s *DashboardService) DashboardStats(ctx context.Context, role string, userID string) (*models.DashboardStats, error) {
	if cached, ok := s.dashboardCache.Get(ctx, role, userID); ok {
		return cached, nil
	}

	ctx, span := otel.GetTracer().Start(ctx, "dashboard.recompute")
	defer span.End()

	matchFilter := bson.M{"isActive": true}
	if role != consts.RoleAdmin {
		matchFilter["createdBy"] = userID
	}

	totals, err := s.reportsRepo.DashboardTotals(ctx, matchFilter)
	if err != nil {
		logger.Error(ctx, "Error aggregating dashboard totals: %v", err)
		return nil, err
	}

	statusSummary, err := s.reportsRepo.StatusSummary(ctx, matchFilter)
	if err != nil {
		logger.Error(ctx, "Error aggregating status summary: %v", err)
		return nil, err
	}

	accountSummary, err := s.reportsRepo.AccountSummary(ctx, matchFilter)
	if err != nil {
		logger.Error(ctx, "Error aggregating account summary: %v", err)
		return nil, err
	}

	since := trendWindowStart(time.Now())
	trends, err := s.reportsRepo.MonthlyLoanTrends(ctx, matchFilter, since)
	if err != nil {
		logger.Error(ctx, "Error aggregating monthly trends: %v", err)
		return nil, err
	}
	collections, err := s.reportsRepo.MonthlyCollections(ctx, matchFilter, since)
	if err != nil {
		logger.Error(ctx, "Error aggregating monthly collections: %v", err)
		return nil, err
	}

	stats := &models.DashboardStats{
		Totals: models.DashboardTotals{
			TotalLoans:     totals.TotalLoans,
			TotalPrincipal: totals.TotalPrincipal,
			TotalEMI:       totals.TotalEMI,
			TotalCollected: totals.TotalCollected,
			CollectionRate: CollectionRate(totals.TotalCollected, totals.TotalEMI),
		},
		StatusSummary:  statusSummary,
		AccountSummary: accountSummary,
		MonthlyTrends:  mergeMonthlySeries(trends, collections),
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if stats.StatusSummary == nil {
		stats.StatusSummary = []models.StatusSummary{}
	}
	if stats.AccountSummary == nil {
		stats.AccountSummary = []models.AccountSummary{}
	}

	if err := s.dashboardCache.Put(ctx, role, userID, stats); err != nil {
		logger.Error(ctx, "Dashboard cache store failed: %v", err)
	}

	return stats, nil
}

func (s *DashboardService) CacheStats(ctx context.Context) cache.CacheStats {
	return s.dashboardCache.Stats(ctx)
}

func (s *DashboardService) FlushCache(ctx context.Context) error {
	return s.dashboardCache.Invalidate(ctx)
}

// trendWindowStart is the UTC instant where the oldest trend bucket begins:
// the first of the month, IST, trendWindowMonths-1 months back.
func trendWindowStart(now time.Time) time.Time {
	ist := common.ConvertUTCToIST(now)
	monthStart := time.Date(ist.Year(), ist.Month(), 1, 0, 0, 0, 0, ist.Location())
	return monthStart.AddDate(0, -(trendWindowMonths - 1), 0).UTC()
}

// mergeMonthlySeries folds the collections series into the loans-opened
// series; a month with payments but no new loans still gets a row.
func mergeMonthlySeries(trends []models.MonthlyTrend, collections []models.MonthlyCollectionRow) []models.MonthlyTrend {
	byMonth := make(map[string]models.MonthlyTrend, len(trends))
	for _, row := range trends {
		byMonth[row.Month] = row
	}
	for _, row := range collections {
		trend := byMonth[row.Month]
		trend.Month = row.Month
		trend.Collected = row.Collected
		byMonth[row.Month] = trend
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	merged := make([]models.MonthlyTrend, 0, len(months))
	for _, month := range months {
		merged = append(merged, byMonth[month])
	}
	return merged
}

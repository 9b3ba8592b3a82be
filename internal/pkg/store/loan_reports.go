package store

import (
	"context"
	"fmt"
	"time"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/common"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/db"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoanReportsRepository runs the aggregation pipelines behind the dashboard
// and the daily collections report. All date grouping is shifted to IST so
// branch staff see ledger months, not UTC months.
type LoanReportsRepository struct {
	repo *MongoRepository[models.Loan]
}

func NewLoanReportsRepository() *LoanReportsRepository {
	collection := db.MDB.Database.Collection(consts.LoansCollection)
	mrepo := NewMongoRepository[models.Loan](collection)
	return &LoanReportsRepository{repo: mrepo}
}

func (r *LoanReportsRepository) DashboardTotals(ctx context.Context, matchFilter bson.M) (*models.DashboardTotalsRow, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: matchFilter}},
		bson.D{{Key: "$project", Value: bson.M{
			"loanAmount": 1,
			"monthlyEMI": 1,
			"paid": bson.M{
				"$sum": bson.M{"$ifNull": bson.A{"$payments.amount", bson.A{}}},
			},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"totalLoans":     bson.M{"$sum": 1},
			"totalPrincipal": bson.M{"$sum": "$loanAmount"},
			"totalEMI":       bson.M{"$sum": "$monthlyEMI"},
			"totalCollected": bson.M{"$sum": "$paid"},
		}}},
	}

	var row models.DashboardTotalsRow
	err := r.repo.Aggregate(pipeline, &row)
	if err == mongo.ErrNoDocuments {
		return &models.DashboardTotalsRow{}, nil
	}
	if err != nil {
		logger.Error(ctx, "Dashboard : totals aggregation failed %v", err.Error())
		return nil, err
	}
	return &row, nil
}

func (r *LoanReportsRepository) StatusSummary(ctx context.Context, matchFilter bson.M) ([]models.StatusSummary, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: matchFilter}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       "$status",
			"count":     bson.M{"$sum": 1},
			"principal": bson.M{"$sum": "$loanAmount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var rows []models.StatusSummary
	if err := r.repo.AggregateAll(pipeline, &rows); err != nil {
		logger.Error(ctx, "Dashboard : status aggregation failed %v", err.Error())
		return nil, err
	}
	return rows, nil
}

func (r *LoanReportsRepository) AccountSummary(ctx context.Context, matchFilter bson.M) ([]models.AccountSummary, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: matchFilter}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       "$account",
			"count":     bson.M{"$sum": 1},
			"principal": bson.M{"$sum": "$loanAmount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var rows []models.AccountSummary
	if err := r.repo.AggregateAll(pipeline, &rows); err != nil {
		logger.Error(ctx, "Dashboard : account aggregation failed %v", err.Error())
		return nil, err
	}
	return rows, nil
}

// MonthlyLoanTrends groups loans opened since the given time by IST month.
func (r *LoanReportsRepository) MonthlyLoanTrends(ctx context.Context, matchFilter bson.M, since time.Time) ([]models.MonthlyTrend, error) {
	match := bson.M{"createdAt": bson.M{"$gte": since}}
	for k, v := range matchFilter {
		match[k] = v
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date": bson.M{
					"$add": bson.A{"$createdAt", common.ISTOffsetMillis},
				},
			}},
			"loansOpened":    bson.M{"$sum": 1},
			"principalGiven": bson.M{"$sum": "$loanAmount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var rows []models.MonthlyTrend
	if err := r.repo.AggregateAll(pipeline, &rows); err != nil {
		logger.Error(ctx, "Dashboard : monthly trend aggregation failed %v", err.Error())
		return nil, err
	}
	return rows, nil
}

// MonthlyCollections groups payment amounts received since the given time by
// IST month of receipt.
func (r *LoanReportsRepository) MonthlyCollections(ctx context.Context, matchFilter bson.M, since time.Time) ([]models.MonthlyCollectionRow, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: matchFilter}},
		bson.D{{Key: "$unwind", Value: "$payments"}},
		bson.D{{Key: "$match", Value: bson.M{
			"payments.receivedAt": bson.M{"$gte": since},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m",
				"date": bson.M{
					"$add": bson.A{"$payments.receivedAt", common.ISTOffsetMillis},
				},
			}},
			"collected": bson.M{"$sum": "$payments.amount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	var rows []models.MonthlyCollectionRow
	if err := r.repo.AggregateAll(pipeline, &rows); err != nil {
		logger.Error(ctx, "Dashboard : monthly collection aggregation failed %v", err.Error())
		return nil, err
	}
	return rows, nil
}

// CollectionReportRows pulls one day of payment activity for the CSV report.
// The day window is queried in chunks; on an aggregation error the chunk size
// is widened and the whole window retried, so a transient failure does not
// produce a partial report.
func (r *LoanReportsRepository) CollectionReportRows(ctx context.Context, dynamicStartDay string) ([]models.CollectionReportRow, error) {

	chunkSize := 24 / configs.REPORT_CHUNKS
	utcStartDay := common.ResolveReportStartDay(dynamicStartDay)
	startTime := utcStartDay.Add(-(5*time.Hour + 30*time.Minute))
	endTime := startTime.Add(time.Duration(configs.REPORT_EVERY_X_HOURS) * time.Hour)

	var reportRows []models.CollectionReportRow
	logger.Info(ctx, "Collections report query started")
	chunkStart := startTime

	maxRetries := 5
	retries := 0

	for {
		tempResult := []models.CollectionReportRow{}

		for chunkStart.Before(endTime) {
			chunkEnd := chunkStart.Add(time.Duration(chunkSize) * time.Hour)
			if chunkEnd.After(endTime) {
				chunkEnd = endTime
			}

			var chunkResults []models.CollectionReportRow

			pipeline := mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.M{
					"payments.receivedAt": bson.M{
						"$gte": chunkStart,
						"$lt":  chunkEnd,
					},
				}}},
				bson.D{{Key: "$unwind", Value: "$payments"}},
				bson.D{{Key: "$match", Value: bson.M{
					"payments.receivedAt": bson.M{
						"$gte": chunkStart,
						"$lt":  chunkEnd,
					},
				}}},
				bson.D{{Key: "$project", Value: bson.M{
					"LoanNumber":   "$loanNumber",
					"CustomerName": "$customerName",
					"Phone":        "$phone",
					"Account":      "$account",
					"PaymentMonth": "$payments.month",
					"Amount":       "$payments.amount",
					"Method":       "$payments.method",
					"ReceivedBy":   "$payments.receivedBy",
					"ReceivedDatetime": bson.M{
						"$add": bson.A{"$payments.receivedAt", common.ISTOffsetMillis},
					},
				}}},
			}

			logger.Info(ctx, "Processing chunk from %v to %v with chunk size %v hours", chunkStart, chunkEnd, chunkSize)

			err := r.repo.AggregateAll(pipeline, &chunkResults)
			if err != nil {
				logger.Error(ctx, "Error processing chunk from %v to %v: %v", chunkStart, chunkEnd, err)

				chunkSize++
				retries++
				logger.Info(ctx, "Increased chunk size to %v hours. Retrying from the first chunk.", chunkSize)

				if retries > maxRetries {
					return nil, fmt.Errorf("max retries reached. Unable to process the chunks due to errors")
				}

				chunkStart = startTime
				tempResult = nil
				break
			}

			tempResult = append(tempResult, chunkResults...)
			chunkStart = chunkEnd
		}

		if len(tempResult) > 0 {
			reportRows = append(reportRows, tempResult...)
			break
		}

		if chunkStart.Equal(endTime) || chunkStart.After(endTime) {
			break
		}
	}

	logger.Info(ctx, "Collections report query completed, records fetched %v", len(reportRows))
	return reportRows, nil
}

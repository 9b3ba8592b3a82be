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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CounterRepository struct {
	repo *MongoRepository[models.Counter]
}

func NewCounterRepository() *CounterRepository {
	collection := db.MDB.Database.Collection(consts.CountersCollection)
	mrepo := NewMongoRepository[models.Counter](collection)
	return &CounterRepository{repo: mrepo}
}

// NextLoanNumber advances the per-year sequence atomically and formats it as
// PREFIX-YYYY-NNNN. The year follows the IST calendar, matching the branch
// ledger books.
func (r *CounterRepository) NextLoanNumber(ctx context.Context) (string, error) {
	year := common.ConvertUTCToIST(time.Now().UTC()).Year()
	counterId := fmt.Sprintf("loanNumber:%d", year)

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	counter, err := r.repo.FindOneAndUpdate(
		bson.M{"_id": counterId},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	)
	if err != nil {
		logger.Error(ctx, "Counters : Error while advancing %v : %v", counterId, err.Error())
		return "", err
	}

	return fmt.Sprintf("%s-%d-%04d", configs.LOAN_NUMBER_PREFIX, year, counter.Seq), nil
}

package db

import (
	"context"
	"time"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIndexesIfNotExists sets up the indexes the query paths depend on.
// CreateMany is a no-op for indexes that already exist.
func CreateIndexesIfNotExists() {
	if MDB == nil || MDB.Database == nil {
		logger.Info("Skipping index setup: MongoDB is not connected")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	loans := MDB.Database.Collection(consts.LoansCollection)
	loanIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "loanNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "account", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdBy", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "phone", Value: 1}},
		},
	}
	if _, err := loans.Indexes().CreateMany(ctx, loanIndexes); err != nil {
		logger.Error("Failed to create loan indexes: %v", err)
	} else {
		logger.Info("Loan indexes created successfully.")
	}

	events := MDB.Database.Collection(consts.LoanEventsCollection)
	eventIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "publishedToKafka", Value: 1}, {Key: "createdAt", Value: 1}},
		},
	}
	if _, err := events.Indexes().CreateMany(ctx, eventIndexes); err != nil {
		logger.Error("Failed to create loan event indexes: %v", err)
	} else {
		logger.Info("Loan event indexes created successfully.")
	}
}

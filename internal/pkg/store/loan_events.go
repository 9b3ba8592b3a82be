package store

import (
	"context"
	"fmt"
	"time"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoanEventStore persists the audit trail of loan lifecycle events. Each
// event also carries the serialized Kafka payload so failed publishes can be
// replayed without re-deriving the message.
type LoanEventStore struct {
	LoanEventStore *mongo.Collection
}

func NewLoanEventStore(mongoClient mongo.Client, DBName string) *LoanEventStore {
	events := mongoClient.Database(DBName).Collection(consts.LoanEventsCollection)
	return &LoanEventStore{
		LoanEventStore: events,
	}
}

func (es *LoanEventStore) CreateLoanEvent(ctx context.Context, event models.LoanEvent) (primitive.ObjectID, error) {
	result, err := es.LoanEventStore.InsertOne(ctx, event)
	if err != nil {
		logger.Error(ctx, "LoanEvents : Error while inserting %v", err.Error())
		return primitive.NilObjectID, fmt.Errorf("LoanEvents : error while inserting %v", err.Error())
	}
	insertedId, _ := result.InsertedID.(primitive.ObjectID)
	return insertedId, nil
}

// GetFailedKafkaEntries returns events not yet published to Kafka that were
// created within the last duration hours.
func (es *LoanEventStore) GetFailedKafkaEntries(ctx context.Context, duration int32) ([]models.LoanEvent, error) {
	thresholdTime := time.Now().Add(-time.Duration(duration) * time.Hour)

	filter := bson.M{
		"publishedToKafka": false,
		"createdAt":        bson.M{"$gte": thresholdTime},
	}

	cursor, err := es.LoanEventStore.Find(ctx, filter)
	if err != nil {
		logger.Error(ctx, "error querying failed kafka entries: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.LoanEvent
	if err := cursor.All(ctx, &events); err != nil {
		logger.Error(ctx, "error decoding results: %v", err)
		return nil, err
	}
	return events, nil
}

func (es *LoanEventStore) SetKafkaFlag(ctx context.Context, eventIds []string) ([]string, error) {
	objectIDs := make([]primitive.ObjectID, len(eventIds))
	for i, id := range eventIds {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		objectIDs[i] = objectID
	}

	filter := bson.M{"_id": bson.M{"$in": objectIDs}}
	update := bson.M{"$set": bson.M{"publishedToKafka": true}}

	updateResult, err := es.LoanEventStore.UpdateMany(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	logger.Debug(ctx, "Matched Count: %d, Modified Count: %d", updateResult.MatchedCount, updateResult.ModifiedCount)

	// Collect the documents that were not updated
	failedUpdates := []string{}
	if updateResult.MatchedCount != updateResult.ModifiedCount {
		filterFailed := bson.M{
			"_id":              bson.M{"$in": objectIDs},
			"publishedToKafka": bson.M{"$ne": true},
		}
		cursor, err := es.LoanEventStore.Find(ctx, filterFailed)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var doc bson.M
			if err := cursor.Decode(&doc); err != nil {
				return nil, err
			}
			failedUpdates = append(failedUpdates, doc["_id"].(primitive.ObjectID).Hex())
		}
	}
	return failedUpdates, nil
}

package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

// MongoRepository wraps a collection with typed CRUD helpers. Every call runs
// under its own deadline so a slow primary cannot wedge request handlers.
type MongoRepository[T any] struct {
	collection *mongo.Collection
}

func NewMongoRepository[T any](collection *mongo.Collection) *MongoRepository[T] {
	return &MongoRepository[T]{collection: collection}
}

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (r *MongoRepository[T]) Create(document interface{}) (*mongo.InsertOneResult, error) {
	ctx, cancel := opCtx()
	defer cancel()

	return r.collection.InsertOne(ctx, document)
}

func (r *MongoRepository[T]) Read(filter interface{}) (T, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var result T
	err := r.collection.FindOne(ctx, filter).Decode(&result)
	return result, err
}

// Aggregate decodes the first document the pipeline yields.
func (r *MongoRepository[T]) Aggregate(pipeline interface{}, result interface{}) error {
	ctx, cancel := opCtx()
	defer cancel()

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return mongo.ErrNoDocuments
	}
	return cursor.Decode(result)
}

// AggregateAll decodes every pipeline document into result. No deadline:
// report pipelines legitimately run longer than opTimeout.
func (r *MongoRepository[T]) AggregateAll(pipeline interface{}, result interface{}) error {
	ctx := context.Background()

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, result)
}

// Update applies a $set patch to the first matching document.
func (r *MongoRepository[T]) Update(filter interface{}, update interface{}) error {
	ctx, cancel := opCtx()
	defer cancel()

	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": update})
	return err
}

// Replace swaps the whole matched document for the given one.
func (r *MongoRepository[T]) Replace(filter interface{}, document T) error {
	ctx, cancel := opCtx()
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, filter, document)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoRepository[T]) DeleteMany(filter interface{}) (int64, error) {
	ctx, cancel := opCtx()
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *MongoRepository[T]) FindAll(filter interface{}) ([]T, error) {
	return r.FindAllWithOptions(filter, nil)
}

func (r *MongoRepository[T]) FindAllWithOptions(filter interface{}, opts *options.FindOptions) ([]T, error) {
	ctx, cancel := opCtx()
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoRepository[T]) CountDocuments(filter interface{}) (int64, error) {
	ctx, cancel := opCtx()
	defer cancel()

	return r.collection.CountDocuments(ctx, filter)
}

func (r *MongoRepository[T]) FindOneAndUpdate(filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (T, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var result T
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	return result, err
}

package db

import (
	"context"
	"time"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// MDB is the shared handle set once at startup; stores resolve their
// collections through it.
var MDB *MongoDB

func NewMongoDB() (*MongoDB, error) {
	opts := options.Client().
		ApplyURI(configs.DB_URI).
		SetMaxPoolSize(configs.DB_MAXPOOLSIZE).
		SetMinPoolSize(configs.DB_MINPOOLSIZE).
		SetMaxConnIdleTime(time.Duration(configs.DB_MAXIDLETIME_INMINUTES) * time.Minute)

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		logger.Error("Error in connecting to MongoDB")
		return nil, err
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		logger.Error("MongoDB ping failed: %v", err.Error())
		return nil, err
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(configs.DB_NAME),
	}, nil
}

func (mdb *MongoDB) Close() error {
	return mdb.Client.Disconnect(context.TODO())
}

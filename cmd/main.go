package main

import (
	"context"
	"log"
	"strconv"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/app/router"
	"aurum/karat_gold_loan/internal/pkg/db"
	"aurum/karat_gold_loan/internal/pkg/jobs"
	"aurum/karat_gold_loan/internal/pkg/kafka/producer"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/notification"
	"aurum/karat_gold_loan/internal/pkg/otel"
	"aurum/karat_gold_loan/internal/pkg/pubsub"
	"aurum/karat_gold_loan/internal/pkg/redis"
	"aurum/karat_gold_loan/internal/pkg/services"
	"aurum/karat_gold_loan/internal/pkg/store"
	"aurum/karat_gold_loan/internal/pkg/utils/worker"

	"cloud.google.com/go/storage"
)

func main() {

	if err := configs.LoadEnv(); err != nil {
		logger.Debug("Error loading .env file: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	//setup otel collector
	_, err := otel.Setup(ctx, configs.SERVICE_NAME, configs.OTEL_URL)
	if err != nil {
		logger.Error(ctx, "Error setting up OTLP: %v", err)
	}

	mdb, err := db.NewMongoDB()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db.MDB = mdb
	defer mdb.Close()

	db.CreateIndexesIfNotExists()

	// A missing broker is tolerated at boot: per-event publishes open their
	// own connection and the retry sweep re-creates this producer on demand.
	kafkaProducer, err := producer.NewKafkaProducer(configs.KAFKA_SERVER, configs.KAFKA_TOPIC)
	if err != nil {
		logger.Error(ctx, "failed to create Kafka Producer error: %v", err)
	} else {
		logger.Info(ctx, "Kafka Producer Created")
		producer.KafkaProducer = kafkaProducer
		defer kafkaProducer.Close()
	}

	pubsubPublisher, err := pubsub.NewPubSubPublisher(ctx, configs.PROJECT_ID)
	if err != nil {
		log.Fatalf("Failed to create Pub/Sub Publisher: %v", err)
	}
	defer pubsubPublisher.Close()
	logger.Info(ctx, "Pub/Sub Publisher Created")

	redisClient, err := redis.ConnectToRedis(ctx, configs.GetRedisConfig(), nil)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	numberOfWorkers, err := strconv.Atoi(configs.WORKER_POOL)
	if err != nil {
		numberOfWorkers = 5
		logger.Warn(ctx, "WORKER_POOL %q is not a number, running %d workers", configs.WORKER_POOL, numberOfWorkers)
	}
	workerPool := worker.NewWorkerPool(numberOfWorkers)
	defer workerPool.Stop()

	scheduler := startScheduler(ctx, workerPool, pubsubPublisher)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	r := router.SetupRouter(redisClient.Client, pubsubPublisher)

	if err := r.Run(":" + configs.SERVER_PORT); err != nil {
		logger.Error(ctx, "Failed to run server: %v", err)
	}
}

// startScheduler wires the recurring jobs. The report job carries its own GCS
// client; the other jobs reuse the request-path stores.
func startScheduler(ctx context.Context, workerPool *worker.WorkerPool, pubsubPublisher *pubsub.PubSubPublisher) *jobs.Scheduler {
	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to create GCS client for scheduled reports: %v", err)
		return nil
	}

	reportService := services.NewCollectionReportService(gcsClient, configs.BUCKET_NAME, store.NewLoanReportsRepository(), services.NewSftpService())
	eventStore := store.NewLoanEventStore(*db.MDB.Client, db.MDB.Database.Name())
	retryService := producer.NewKafkaRetryService(eventStore)
	reminderService := services.NewPaymentReminderService(store.NewLoanRepository(), notification.NewNotificationService(pubsubPublisher), workerPool)

	scheduler, err := jobs.NewScheduler(reportService, retryService, reminderService)
	if err != nil {
		logger.Error(ctx, "Failed to set up the job scheduler: %v", err)
		return nil
	}
	scheduler.Start()

	return scheduler
}

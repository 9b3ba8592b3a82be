package router

import (
	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/app/handlers"
	"aurum/karat_gold_loan/internal/app/middleware"
	"aurum/karat_gold_loan/internal/pkg/cache"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/db"
	"aurum/karat_gold_loan/internal/pkg/notification"
	"aurum/karat_gold_loan/internal/pkg/pubsub"
	"aurum/karat_gold_loan/internal/pkg/store/repository"

	"aurum/karat_gold_loan/internal/pkg/kafka/producer"
	"aurum/karat_gold_loan/internal/pkg/services"
	"aurum/karat_gold_loan/internal/pkg/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
)

func SetupRouter(redisClient *redis.Client, pubsubPublisher *pubsub.PubSubPublisher) *gin.Engine {

	r := gin.Default()
	meter := otel.Meter(configs.SERVICE_NAME)
	r.Use(otelgin.Middleware(configs.SERVICE_NAME))
	r.Use(middleware.NewMetricMiddleware(meter))
	r.Use(middleware.AttachRequestDetails())

	// Create Redis repository wrapper
	redisAdapter := repository.NewRedisStoreAdapter(redisClient)
	dashboardCache := cache.NewDashboardCache(redisAdapter)

	loanRepo := store.NewLoanRepository()
	counterRepo := store.NewCounterRepository()
	reportsRepo := store.NewLoanReportsRepository()
	notificationService := notification.NewNotificationService(pubsubPublisher)
	kafkaProducer := producer.NewKafkaService()

	// Loan events back the Kafka publish flags and the retry sweep.
	var eventStore *store.LoanEventStore
	var kafkaRetryHandler *handlers.KafkaRetryHandler
	if db.MDB != nil {
		eventStore = store.NewLoanEventStore(*db.MDB.Client, db.MDB.Database.Name())
		kafkaRetryHandler = handlers.NewKafkaRetryHandler(producer.NewKafkaRetryService(eventStore))
	}

	loanService := services.NewLoanService(loanRepo, counterRepo, eventStore, kafkaProducer, notificationService, dashboardCache)
	paymentService := services.NewPaymentService(loanRepo, eventStore, kafkaProducer, notificationService, dashboardCache)
	dashboardService := services.NewDashboardService(reportsRepo, dashboardCache)

	loanHandler := handlers.NewLoanHandler(loanService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	documentHandler := handlers.NewDocumentHandler(loanService)

	// Collections report
	bucketName := configs.BUCKET_NAME
	reportHandler := handlers.NewCollectionReportHandler(bucketName)

	loans := r.Group("/loans", middleware.RequireAuth())
	{
		loans.POST("", loanHandler.CreateLoan)
		loans.GET("", loanHandler.ListLoans)
		loans.GET("/dashboard/stats", dashboardHandler.DashboardStats)
		if kafkaRetryHandler != nil {
			loans.GET("/events/kafkaRetry", middleware.RequireRole(consts.RoleAdmin), kafkaRetryHandler.RetryLoanEventMessages)
		}
		loans.DELETE("/admin/purge", middleware.RequireRole(consts.RoleAdmin), loanHandler.PurgeLoans)
		if reportHandler != nil {
			loans.GET("/reports/collections", middleware.RequireRole(consts.RoleAdmin), reportHandler.CollectionsReports)
		}

		loans.GET("/:id", loanHandler.LoanById)
		loans.PUT("/:id", loanHandler.UpdateLoan)
		loans.DELETE("/:id", loanHandler.DeleteLoan)
		loans.PUT("/:id/status", loanHandler.UpdateStatus)
		loans.PUT("/:id/account", loanHandler.UpdateAccount)
		loans.PUT("/:id/close", loanHandler.CloseLoan)
		loans.PUT("/:id/signature", loanHandler.SaveSignature)
		loans.GET("/:id/download", documentHandler.DownloadLoanDocument)
		loans.GET("/:id/download/traditional", documentHandler.DownloadTraditionalLoanDocument)

		loans.POST("/:id/payments", paymentHandler.AddPayment)
		loans.GET("/:id/payments", paymentHandler.ListPayments)
		loans.PUT("/:id/payments/:paymentId", paymentHandler.UpdatePayment)
		loans.DELETE("/:id/payments/:paymentId", paymentHandler.DeletePayment)
	}

	cacheAdmin := r.Group("/cache", middleware.RequireAuth(), middleware.RequireRole(consts.RoleAdmin))
	{
		cacheAdmin.GET("/stats", dashboardHandler.CacheStats)
		cacheAdmin.DELETE("", dashboardHandler.FlushCache)
	}

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"message": "Health Check"})
	})

	return r
}

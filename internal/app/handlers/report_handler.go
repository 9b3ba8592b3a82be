package handlers

import (
	"context"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"

	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/services"
	"aurum/karat_gold_loan/internal/pkg/store"
)

type CollectionReportHandler struct {
	service *services.CollectionReportService
}

// NewCollectionReportHandler creates a new instance of CollectionReportHandler
func NewCollectionReportHandler(bucketName string) *CollectionReportHandler {
	// Create the GCS client
	ctx := context.Background()
	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to create GCS client: %v", err)
		return nil
	}
	return &CollectionReportHandler{
		service: services.NewCollectionReportService(gcsClient, bucketName, store.NewLoanReportsRepository(), services.NewSftpService()),
	}
}

// CollectionsReports kicks off the report in the background; generation can
// outlive the request.
func (h *CollectionReportHandler) CollectionsReports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": consts.SuccessProcessingMessageCollectionsReport})

	dynamicStartDay := c.Query("dynamicStartDay")
	go func() {
		_, err := h.service.CollectionDetailsReports(context.Background(), dynamicStartDay)
		if err != nil {
			logger.Error(context.Background(), "Collections report run failed: %v", err)
		}
	}()
}

package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"

	"aurum/karat_gold_loan/configs"
	"aurum/karat_gold_loan/internal/pkg/common"
	"aurum/karat_gold_loan/internal/pkg/consts"
	"aurum/karat_gold_loan/internal/pkg/logger"
	"aurum/karat_gold_loan/internal/pkg/models"
)

type CollectionReportService struct {
	gcsClient  *storage.Client
	bucketName string
	reportRepo LoanReportsRepo
	sftpClient SFTPClientInterface
}

func NewCollectionReportService(gcsClient *storage.Client, bucketName string, reportRepo LoanReportsRepo, sftpClient SFTPClientInterface) *CollectionReportService {
	return &CollectionReportService{
		gcsClient:  gcsClient,
		bucketName: bucketName,
		reportRepo: reportRepo,
		sftpClient: sftpClient,
	}
}

// CollectionDetailsReports builds the daily EMI collections extract, drops a
// copy on the outsourcing partner's SFTP box and archives it to GCS. The GCS
// copy is the canonical one; a failed partner push only logs.
func (s *CollectionReportService) CollectionDetailsReports(ctx context.Context, dynamicStartDay string) ([]models.CollectionReportRow, error) {

	results, err := s.reportRepo.CollectionReportRows(ctx, dynamicStartDay)

	if err != nil {
		return nil, err
	} else if results == nil {
		logger.Error("No data found in MongoDB")
	} else {
		logger.Info("data fetched from mongodb successfully")
	}

	filename, err := s.WriteCollectionReportToCsvFile(ctx, results, dynamicStartDay)
	if err != nil {
		return nil, err
	}

	localPath := filepath.Join(configs.DIRECTORY_PATH, filename)
	if err := s.pushToPartnerSFTP(ctx, localPath, filename); err != nil {
		logger.Error(ctx, "SFTP push of %s failed: %v", filename, err)
	} else {
		logger.Info(ctx, "File %s sent to partner SFTP", filename)
	}

	err = s.UploadCollectionReportCsvFileToGCS(ctx, filename)
	if err != nil {
		return nil, err
	}

	return results, nil
}

// pushToPartnerSFTP uploads under a staging name and renames into place, so
// the partner's folder watcher never picks up a partial file.
func (s *CollectionReportService) pushToPartnerSFTP(ctx context.Context, localPath, filename string) error {
	remotePath := filepath.Join(configs.SFTP_REMOTE_FILE_PATH, filename)
	stagedPath := remotePath + ".part"

	if err := s.sftpClient.UploadFileToSFTP(localPath, stagedPath); err != nil {
		return err
	}
	if err := s.sftpClient.MoveFileOnSFTP(stagedPath, remotePath); err != nil {
		if cleanupErr := s.sftpClient.DeleteFileOnSFTP(stagedPath); cleanupErr != nil {
			logger.Error(ctx, "could not remove staged file %s: %v", stagedPath, cleanupErr)
		}
		return err
	}
	return nil
}

func (s *CollectionReportService) WriteCollectionReportToCsvFile(ctx context.Context, results []models.CollectionReportRow, dynamicStartDay string) (string, error) {

	// The filename names the same window the rows were queried for, so an
	// ad-hoc report for a past day is not filed under today's date.
	startTime := common.ResolveReportStartDay(dynamicStartDay)
	startDate := startTime.Format(consts.ReportFileNameDateFormat)

	csvFilename := fmt.Sprintf("collection_report_%s.csv", startDate)

	directoryPath := configs.DIRECTORY_PATH

	fullFilePath := filepath.Join(directoryPath, csvFilename)
	logger.Info("fullFilePath = ", fullFilePath)

	//create the directory if it doesn't exist
	if err := os.MkdirAll(directoryPath, os.ModePerm); err != nil {
		logger.Error("failed at os.MkdirAll > ", err.Error())
		return "", err
	}

	records := [][]string{{
		"LoanNumber", "CustomerName", "Phone", "Account", "PaymentMonth",
		"PaymentAmount", "PaymentMethod", "ReceivedBy", "ReceivedDatetime",
	}}
	for _, result := range results {
		records = append(records, []string{
			result.LoanNumber,
			result.CustomerName,
			result.Phone,
			result.Account,
			fmt.Sprintf("%d", result.PaymentMonth),
			fmt.Sprintf("%.2f", result.Amount),
			result.Method,
			result.ReceivedBy,
			result.ReceivedDatetime.Format(consts.ReportDateTimeFormat),
		})
	}

	if err := common.WriteCSVFile(fullFilePath, records); err != nil {
		logger.Error("failed at common.WriteCSVFile > ", err.Error())
		return "", err
	}

	logger.Info(ctx, "Data successfully written to %s", csvFilename)
	return csvFilename, nil
}

func (s *CollectionReportService) UploadCollectionReportCsvFileToGCS(ctx context.Context, filename string) error {

	directoryPath := configs.DIRECTORY_PATH
	fullFilePath := filepath.Join(directoryPath, filename)

	file, err := os.Open(fullFilePath)
	if err != nil {
		return err
	}
	defer file.Close()

	bucket := s.gcsClient.Bucket(s.bucketName)
	folderPath := configs.REPORT_DESTINATION_FOLDER
	objectPath := filepath.Join(folderPath, filename)
	object := bucket.Object(objectPath)
	writer := object.NewWriter(ctx)

	if _, err := io.Copy(writer, file); err != nil {
		logger.Error("failed at io.Copy > ", err.Error())
		return fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := writer.Close(); err != nil {
		logger.Error("failed at writer.Close > ", err.Error())
		return fmt.Errorf("failed to close GCS writer: %v", err)
	}

	// Delete the local file
	if err := s.sftpClient.DeleteLocalFile(fullFilePath); err != nil {
		logger.Error("failed at os.Remove > ", err.Error())
		return fmt.Errorf("failed to delete local file: %v", err)
	}

	logger.Info(ctx, "File %s successfully uploaded to Google Cloud Storage bucket %s", filename, s.bucketName)
	return nil
}

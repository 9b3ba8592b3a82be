package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// istZone is a fixed UTC+5:30. Branches all operate in Indian Standard Time
// and DST never applies.
var istZone = time.FixedZone("Asia/Kolkata", 5*60*60+30*60)

// ISTOffsetMillis shifts stored UTC dates inside aggregation pipelines to the
// same zone istZone describes.
const ISTOffsetMillis = (5*60*60 + 30*60) * 1000

// WriteCSVFile writes records to a CSV file.
func WriteCSVFile(filename string, records [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %v", err)
	}
	defer file.Close()

	if err := csv.NewWriter(file).WriteAll(records); err != nil {
		return fmt.Errorf("could not write records: %v", err)
	}
	return nil
}

// ConvertUTCToIST converts a UTC time to Indian Standard Time.
func ConvertUTCToIST(utcTime time.Time) time.Time {
	return utcTime.In(istZone)
}

// FormatMoney renders an amount the way documents and SMS messages show it.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// ResolveReportStartDay picks the collections report window start. A valid
// RFC3339 instant in the past wins; anything else falls back to midnight of
// yesterday's IST day, expressed in UTC. The report query and the report
// filename both resolve the window through here so an ad-hoc report for a
// past day is named after that day.
func ResolveReportStartDay(dynamicStartDay string) time.Time {
	if dynamicStartDay != "" {
		parsed, err := time.Parse(time.RFC3339, dynamicStartDay)
		if err == nil && parsed.Before(time.Now()) {
			return parsed
		}
	}

	nowInIST := ConvertUTCToIST(time.Now().UTC())
	yesterday := nowInIST.AddDate(0, 0, -1)
	return time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
}

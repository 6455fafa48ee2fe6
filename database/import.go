package database

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"cqms/models"

	"gorm.io/gorm"
)

// columnAliases maps the export column names of the old system onto the
// queries table columns.
var columnAliases = map[string]string{
	"client_email":  "mail_id",
	"client_mobile": "mobile_number",
	"date_raised":   "query_created_time",
	"date_closed":   "query_closed_time",
}

// ImportQueriesCSV loads query rows from a CSV export. Rows whose query_id
// already exists are skipped, never overwritten. The image column is not
// part of the format, so imported rows carry no attachment. Returns the
// number of rows inserted.
func ImportQueriesCSV(db *gorm.DB, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open CSV: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read CSV: %w", err)
	}

	if len(records) < 2 {
		log.Printf("CSV %s is empty or has only headers", path)
		return 0, nil
	}

	// Map header indices, translating old export names
	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		name := strings.TrimSpace(h)
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		headerIndex[name] = i
	}

	inserted := 0
	skipped := 0

	for _, row := range records[1:] {
		queryID := getField(row, headerIndex, "query_id")
		if queryID == "" {
			skipped++
			continue
		}

		// Skip rows already present
		if err := db.Select("query_id").Where("query_id = ?", queryID).
			First(&models.Query{}).Error; err == nil {
			skipped++
			continue
		}

		status := getField(row, headerIndex, "status")
		if status == "" {
			status = models.StatusOpened
		}

		query := models.Query{
			QueryID:          queryID,
			MailID:           getField(row, headerIndex, "mail_id"),
			MobileNumber:     getField(row, headerIndex, "mobile_number"),
			QueryHeading:     getField(row, headerIndex, "query_heading"),
			QueryDescription: getField(row, headerIndex, "query_description"),
			Status:           status,
			QueryCreatedTime: parseTime(getField(row, headerIndex, "query_created_time")),
			QueryClosedTime:  parseTimePtr(getField(row, headerIndex, "query_closed_time")),
		}

		if err := db.Create(&query).Error; err != nil {
			return inserted, fmt.Errorf("insert query %s: %w", queryID, err)
		}
		inserted++
	}

	log.Printf("CSV import done: %d inserted, %d skipped", inserted, skipped)
	return inserted, nil
}

func getField(row []string, headerIndex map[string]int, name string) string {
	i, ok := headerIndex[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

func parseTime(value string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseTimePtr(value string) *time.Time {
	if value == "" {
		return nil
	}
	t := parseTime(value)
	if t.IsZero() {
		return nil
	}
	return &t
}

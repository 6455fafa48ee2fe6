package database

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cqms/models"

	"gorm.io/gorm"
)

// NextQueryID returns the id the next inserted query will get: the numeric
// suffix of the highest existing id plus one, Q0001 when the table is
// empty or the last id does not parse.
func NextQueryID(db *gorm.DB) string {
	var last models.Query
	err := db.Select("query_id").Order("query_id DESC").First(&last).Error

	num := 1
	if err == nil && len(last.QueryID) > 1 {
		if n, perr := strconv.Atoi(last.QueryID[1:]); perr == nil {
			num = n + 1
		}
	}
	return fmt.Sprintf("Q%04d", num)
}

// InsertQuery assigns the next id and persists a new query with status
// Opened. The id read and the insert run in one transaction so concurrent
// submitters serialize on the write lock instead of double-assigning.
func InsertQuery(db *gorm.DB, mailID, mobile, heading, description string, image []byte) (models.Query, error) {
	var query models.Query
	err := db.Transaction(func(tx *gorm.DB) error {
		query = models.Query{
			QueryID:          NextQueryID(tx),
			MailID:           mailID,
			MobileNumber:     mobile,
			QueryHeading:     heading,
			QueryDescription: description,
			Status:           models.StatusOpened,
			QueryCreatedTime: time.Now(),
			Image:            image,
		}
		return tx.Create(&query).Error
	})
	if err != nil {
		return models.Query{}, err
	}
	return query, nil
}

// CloseQuery marks an open query as Closed and records the closing time.
// Only rows still Opened match, so the closed time is fixed at first
// closure: re-closing is a no-op, as is an unknown id. The returned flags
// tell the caller whether a row was closed and whether the id exists.
func CloseQuery(db *gorm.DB, queryID string) (closed bool, found bool, err error) {
	now := time.Now()
	res := db.Model(&models.Query{}).
		Where("query_id = ? AND status = ?", queryID, models.StatusOpened).
		Updates(map[string]interface{}{
			"status":            models.StatusClosed,
			"query_closed_time": now,
		})
	if res.Error != nil {
		return false, false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, true, nil
	}

	err = db.Select("query_id").Where("query_id = ?", queryID).First(&models.Query{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return false, true, nil
}

// FetchQueries returns queries newest first. An empty status or "all"
// (case-insensitive) means no filtering.
func FetchQueries(db *gorm.DB, status string) ([]models.Query, error) {
	q := db.Model(&models.Query{}).Order("query_created_time DESC")
	if status != "" && !strings.EqualFold(status, "all") {
		q = q.Where("status = ?", status)
	}

	var queries []models.Query
	if err := q.Find(&queries).Error; err != nil {
		return nil, err
	}
	return queries, nil
}

// GetQueryImage fetches the attachment blob for a query. The second return
// is false when the query does not exist or carries no image.
func GetQueryImage(db *gorm.DB, queryID string) ([]byte, bool, error) {
	var query models.Query
	err := db.Select("image").Where("query_id = ?", queryID).First(&query).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(query.Image) == 0 {
		return nil, false, nil
	}
	return query.Image, true, nil
}

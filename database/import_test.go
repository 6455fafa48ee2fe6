package database

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"cqms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importHeader = "query_id,client_email,client_mobile,query_heading,query_description,status,date_raised,date_closed\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queries.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportQueriesCSV(t *testing.T) {
	db := newTestDB(t)

	path := writeCSV(t, importHeader+
		"Q0001,a@x.com,5550100,Login issue,Cannot log in,Opened,2026-08-01 09:30:00,\n"+
		"Q0002,b@x.com,5550101,Billing,Charged twice,Closed,2026-08-02 10:00:00,2026-08-03 16:45:00\n")

	inserted, err := ImportQueriesCSV(db, path)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	var q1 models.Query
	require.NoError(t, db.Where("query_id = ?", "Q0001").First(&q1).Error)
	assert.Equal(t, "a@x.com", q1.MailID)
	assert.Equal(t, "5550100", q1.MobileNumber)
	assert.Equal(t, "Login issue", q1.QueryHeading)
	assert.Equal(t, models.StatusOpened, q1.Status)
	assert.Nil(t, q1.QueryClosedTime)
	assert.Nil(t, q1.Image)

	var q2 models.Query
	require.NoError(t, db.Where("query_id = ?", "Q0002").First(&q2).Error)
	assert.Equal(t, models.StatusClosed, q2.Status)
	require.NotNil(t, q2.QueryClosedTime)
	assert.Equal(t, 2026, q2.QueryClosedTime.Year())
}

func TestImportQueriesCSVSkipsExisting(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Query{
		QueryID:      "Q0001",
		QueryHeading: "Original heading",
		Status:       models.StatusOpened,
	}).Error)

	path := writeCSV(t, importHeader+
		"Q0001,a@x.com,5550100,Imported heading,Desc,Opened,2026-08-01 09:30:00,\n"+
		"Q0002,b@x.com,5550101,New row,Desc,Opened,2026-08-02 10:00:00,\n")

	inserted, err := ImportQueriesCSV(db, path)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	// The existing row must not be overwritten
	var q1 models.Query
	require.NoError(t, db.Where("query_id = ?", "Q0001").First(&q1).Error)
	assert.Equal(t, "Original heading", q1.QueryHeading)
}

func TestImportQueriesCSVMissingFile(t *testing.T) {
	db := newTestDB(t)

	_, err := ImportQueriesCSV(db, filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestImportQueriesCSVHeaderOnly(t *testing.T) {
	db := newTestDB(t)

	inserted, err := ImportQueriesCSV(db, writeCSV(t, importHeader))
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

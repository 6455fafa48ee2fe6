package database

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"cqms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextQueryID(t *testing.T) {
	db := newTestDB(t)

	assert.Equal(t, "Q0001", NextQueryID(db))

	require.NoError(t, db.Create(&models.Query{QueryID: "Q0042", Status: models.StatusOpened}).Error)
	assert.Equal(t, "Q0043", NextQueryID(db))
}

func TestNextQueryIDUnparsableLastID(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Query{QueryID: "ZZZZ", Status: models.StatusOpened}).Error)
	assert.Equal(t, "Q0001", NextQueryID(db))
}

func TestInsertQueryAssignsSequentialIDs(t *testing.T) {
	db := newTestDB(t)

	prev := 0
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		q, err := InsertQuery(db, fmt.Sprintf("user%d@example.com", i), "5550100", "Heading", "Description", nil)
		require.NoError(t, err)

		assert.False(t, seen[q.QueryID], "duplicate id %s", q.QueryID)
		seen[q.QueryID] = true

		num, err := strconv.Atoi(q.QueryID[1:])
		require.NoError(t, err)
		assert.Greater(t, num, prev, "ids must be strictly increasing")
		prev = num
	}
}

func TestInsertAndCloseLifecycle(t *testing.T) {
	db := newTestDB(t)

	q, err := InsertQuery(db, "a@x.com", "555", "H", "D", nil)
	require.NoError(t, err)
	assert.Equal(t, "Q0001", q.QueryID)
	assert.Equal(t, models.StatusOpened, q.Status)
	assert.Nil(t, q.QueryClosedTime)

	closed, found, err := CloseQuery(db, "Q0001")
	require.NoError(t, err)
	assert.True(t, closed)
	assert.True(t, found)

	var got models.Query
	require.NoError(t, db.Where("query_id = ?", "Q0001").First(&got).Error)
	assert.Equal(t, models.StatusClosed, got.Status)
	require.NotNil(t, got.QueryClosedTime)
}

func TestCloseQueryFirstClosureWins(t *testing.T) {
	db := newTestDB(t)

	_, err := InsertQuery(db, "a@x.com", "555", "H", "D", nil)
	require.NoError(t, err)

	closed, found, err := CloseQuery(db, "Q0001")
	require.NoError(t, err)
	require.True(t, closed)
	require.True(t, found)

	var first models.Query
	require.NoError(t, db.Where("query_id = ?", "Q0001").First(&first).Error)
	require.NotNil(t, first.QueryClosedTime)

	// Re-closing must not refresh the timestamp
	time.Sleep(10 * time.Millisecond)
	closed, found, err = CloseQuery(db, "Q0001")
	require.NoError(t, err)
	assert.False(t, closed)
	assert.True(t, found)

	var second models.Query
	require.NoError(t, db.Where("query_id = ?", "Q0001").First(&second).Error)
	require.NotNil(t, second.QueryClosedTime)
	assert.Equal(t, first.QueryClosedTime.UnixNano(), second.QueryClosedTime.UnixNano())
}

func TestCloseQueryUnknownID(t *testing.T) {
	db := newTestDB(t)

	closed, found, err := CloseQuery(db, "Q9999")
	require.NoError(t, err)
	assert.False(t, closed)
	assert.False(t, found)
}

func TestFetchQueriesFilterAndOrder(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	closedAt := base.Add(72 * time.Hour)
	rows := []models.Query{
		{QueryID: "Q0001", Status: models.StatusClosed, QueryCreatedTime: base, QueryClosedTime: &closedAt},
		{QueryID: "Q0002", Status: models.StatusOpened, QueryCreatedTime: base.Add(time.Hour)},
		{QueryID: "Q0003", Status: models.StatusClosed, QueryCreatedTime: base.Add(2 * time.Hour), QueryClosedTime: &closedAt},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	all, err := FetchQueries(db, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Q0003", all[0].QueryID)
	assert.Equal(t, "Q0001", all[2].QueryID)

	// "all" in any casing means no filtering
	all, err = FetchQueries(db, "ALL")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	closed, err := FetchQueries(db, models.StatusClosed)
	require.NoError(t, err)
	require.Len(t, closed, 2)
	assert.Equal(t, "Q0003", closed[0].QueryID)
	assert.Equal(t, "Q0001", closed[1].QueryID)
	for _, q := range closed {
		assert.Equal(t, models.StatusClosed, q.Status)
	}
}

func TestGetQueryImage(t *testing.T) {
	db := newTestDB(t)

	img := []byte{0x89, 'P', 'N', 'G'}
	_, err := InsertQuery(db, "a@x.com", "555", "H", "D", img)
	require.NoError(t, err)
	_, err = InsertQuery(db, "b@x.com", "556", "H2", "D2", nil)
	require.NoError(t, err)

	got, found, err := GetQueryImage(db, "Q0001")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, img, got)

	_, found, err = GetQueryImage(db, "Q0002")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = GetQueryImage(db, "Q9999")
	require.NoError(t, err)
	assert.False(t, found)
}

package database

import (
	"path/filepath"
	"testing"

	"cqms/config"
	"cqms/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh migrated store in a temp directory. MinCost keeps
// the bcrypt work factor out of the test runtime.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		DBName:    "test.db",
		SaltRound: bcrypt.MinCost,
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Query{}))
	return db
}

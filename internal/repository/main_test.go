package repository

import (
	"testing"

	"devlink/internal/database"
	"devlink/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
// Each test gets its own database, so tests stay independent and parallel.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Fullname: "Test User",
		Email:    email,
		Password: "$2a$10$hashhashhashhashhashha",
		Gender:   models.GenderUnspecified,
		Avatar:   "http://www.gravatar.com/avatar/?d=mm",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

package services

import (
	"testing"

	"medicore/backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. A single connection
// keeps the :memory: database alive for the test's lifetime.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Course{},
		&models.Module{},
		&models.Topic{},
		&models.UserProgress{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, track string, isAdmin bool) *models.User {
	t.Helper()
	user := models.User{
		Name:         "Test User",
		Email:        track + "-user@example.com",
		PasswordHash: "x",
		Track:        track,
		IsAdmin:      isAdmin,
		Level:        1,
	}
	if isAdmin {
		user.Email = "admin@example.com"
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createTopicChain seeds one course, one module and one topic on the given
// track and returns the topic.
func createTopicChain(t *testing.T, db *gorm.DB, track string) (*models.Course, *models.Topic) {
	t.Helper()

	course := models.Course{Name: track + " Basics", Track: track, IsActive: true}
	require.NoError(t, db.Create(&course).Error)

	module := models.Module{CourseID: course.ID, Name: "Module 1", IsActive: true}
	require.NoError(t, db.Create(&module).Error)

	topic := models.Topic{ModuleID: module.ID, Title: "Topic 1", IsActive: true}
	require.NoError(t, db.Create(&topic).Error)

	return &course, &topic
}

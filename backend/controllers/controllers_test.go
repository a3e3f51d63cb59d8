package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"medicore/backend/config"
	"medicore/backend/database"
	"medicore/backend/models"
	"medicore/backend/routes"
	"medicore/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
		UploadDir:  t.TempDir(),
	}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)
	return app, db, cfg
}

func createUser(t *testing.T, db *gorm.DB, cfg *config.Config, email, track string, isAdmin bool) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("pass1234"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Track:        track,
		IsAdmin:      isAdmin,
		Level:        1,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateJWTToken(user.ID, cfg, false)
	require.NoError(t, err)
	return &user, token
}

// seedCourseChain creates course -> module -> topic on the given track.
func seedCourseChain(t *testing.T, db *gorm.DB, track string) (*models.Course, *models.Module, *models.Topic) {
	t.Helper()

	course := models.Course{Name: track + " Fundamentals", Track: track, IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	module := models.Module{CourseID: course.ID, Name: "Module 1", IsActive: true}
	require.NoError(t, db.Create(&module).Error)
	topic := models.Topic{ModuleID: module.ID, Title: "Topic 1", Content: "Body", IsActive: true}
	require.NoError(t, db.Create(&topic).Error)
	return &course, &module, &topic
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

package controllers_test

import (
	"net/http"
	"testing"

	"medicore/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "student@example.com", models.TrackMedical, false)

	resp, _ := doRequest(t, app, http.MethodGet, "/api/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/admin/courses", token,
		map[string]interface{}{"name": "Sneaky", "track": models.TrackMedical})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminCreatesContentHierarchy(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "admin@example.com", models.TrackMedical, true)

	resp, body := doRequest(t, app, http.MethodPost, "/api/admin/courses", token,
		map[string]interface{}{"name": "Pharmacokinetics", "track": models.TrackPharmacy})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	courseID := body["course_id"].(float64)

	resp, body = doRequest(t, app, http.MethodPost, "/api/admin/modules", token,
		map[string]interface{}{"course_id": courseID, "name": "Absorption"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	moduleID := body["module_id"].(float64)

	resp, body = doRequest(t, app, http.MethodPost, "/api/admin/topics", token,
		map[string]interface{}{"module_id": moduleID, "title": "First-pass metabolism"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotZero(t, body["topic_id"])

	// new rows are active by default so they show up in listings
	var course models.Course
	require.NoError(t, db.First(&course, uint(courseID)).Error)
	assert.True(t, course.IsActive)
}

func TestAdminModuleNeedsExistingCourse(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "admin@example.com", models.TrackMedical, true)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/admin/modules", token,
		map[string]interface{}{"course_id": 999, "name": "Orphan"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminDashboardStats(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "admin@example.com", models.TrackMedical, true)
	createUser(t, db, cfg, "nurse@example.com", models.TrackNursing, false)
	seedCourseChain(t, db, models.TrackNursing)

	resp, body := doRequest(t, app, http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, 2.0, stats["total_users"])
	assert.Equal(t, 1.0, stats["total_courses"])

	dist := body["track_distribution"].(map[string]interface{})
	assert.Equal(t, 1.0, dist[models.TrackNursing])
}

func TestAdminMarkMessageRead(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "admin@example.com", models.TrackMedical, true)

	msg := models.ContactMessage{Name: "Visitor", Email: "v@example.com", Message: "Hello there, I have a question."}
	require.NoError(t, db.Create(&msg).Error)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/admin/messages/1/read", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.ContactMessage
	require.NoError(t, db.First(&stored, msg.ID).Error)
	assert.True(t, stored.IsRead)
}

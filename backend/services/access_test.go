package services

import (
	"testing"

	"medicore/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCanAccessCourse(t *testing.T) {
	svc := NewAccessService(nil)

	course := &models.Course{Track: models.TrackMedical}

	student := &models.User{Track: models.TrackMedical}
	assert.NoError(t, svc.CanAccessCourse(student, course))

	outsider := &models.User{Track: models.TrackNursing}
	assert.ErrorIs(t, svc.CanAccessCourse(outsider, course), ErrAccessDenied)

	// admins bypass the track rule regardless of their own track
	admin := &models.User{Track: models.TrackNursing, IsAdmin: true}
	assert.NoError(t, svc.CanAccessCourse(admin, course))
}

func TestCanAccessTopicThroughChain(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccessService(db)
	_, topic := createTopicChain(t, db, models.TrackPharmacy)

	student := createTestUser(t, db, models.TrackPharmacy, false)
	got, err := svc.CanAccessTopic(student, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, topic.ID, got.ID)

	outsider := createTestUser(t, db, models.TrackMedical, false)
	_, err = svc.CanAccessTopic(outsider, topic.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCanAccessTopicNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccessService(db)
	user := createTestUser(t, db, models.TrackMedical, false)

	_, err := svc.CanAccessTopic(user, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTopicChainLoadsAncestors(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccessService(db)
	course, topic := createTopicChain(t, db, models.TrackNursing)

	gotTopic, gotModule, gotCourse, err := svc.TopicChain(topic.ID)
	require.NoError(t, err)
	assert.Equal(t, topic.ID, gotTopic.ID)
	assert.Equal(t, gotTopic.ModuleID, gotModule.ID)
	assert.Equal(t, course.ID, gotCourse.ID)
}

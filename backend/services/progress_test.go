package services

import (
	"testing"

	"medicore/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{250, 3},
		{1000, 11},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForPoints(tc.points), "points=%d", tc.points)
	}
}

func TestRecordTopicProgressPercentageNeverRegresses(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createTestUser(t, db, models.TrackNursing, false)
	_, topic := createTopicChain(t, db, models.TrackNursing)

	result, err := svc.RecordTopicProgress(user.ID, topic.ID, 60, 5, false)
	require.NoError(t, err)
	assert.Equal(t, 60.0, result.Percentage)

	// a lower value must not overwrite the stored one
	result, err = svc.RecordTopicProgress(user.ID, topic.ID, 30, 5, false)
	require.NoError(t, err)
	assert.Equal(t, 60.0, result.Percentage)
	assert.Equal(t, 10, result.TimeSpent)
}

func TestRecordTopicProgressCapsPercentage(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createTestUser(t, db, models.TrackNursing, false)
	_, topic := createTopicChain(t, db, models.TrackNursing)

	result, err := svc.RecordTopicProgress(user.ID, topic.ID, 150, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Percentage)
	assert.False(t, result.Completed)
}

func TestRecordTopicProgressCompletionBonusOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createTestUser(t, db, models.TrackMedical, false)
	_, topic := createTopicChain(t, db, models.TrackMedical)

	result, err := svc.RecordTopicProgress(user.ID, topic.ID, 40, 3, true)
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, 100.0, result.Percentage)
	assert.Equal(t, TopicCompletionPoints, result.TotalPoints)

	// resubmitting completion must not pay the bonus again
	result, err = svc.RecordTopicProgress(user.ID, topic.ID, 100, 0, true)
	require.NoError(t, err)
	assert.Equal(t, TopicCompletionPoints, result.TotalPoints)

	var progress models.UserProgress
	require.NoError(t, db.Where("user_id = ? AND topic_id = ?", user.ID, topic.ID).First(&progress).Error)
	assert.True(t, progress.Completed)
	assert.NotNil(t, progress.CompletedAt)
}

func TestRecordTopicProgressIgnoresNegativeTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createTestUser(t, db, models.TrackMedical, false)
	_, topic := createTopicChain(t, db, models.TrackMedical)

	result, err := svc.RecordTopicProgress(user.ID, topic.ID, 10, -30, false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TimeSpent)
}

func TestEnsureTopicProgressCreatesZeroState(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createTestUser(t, db, models.TrackPharmacy, false)
	_, topic := createTopicChain(t, db, models.TrackPharmacy)

	progress, err := svc.EnsureTopicProgress(user.ID, topic.ID)
	require.NoError(t, err)
	assert.False(t, progress.Completed)
	assert.Equal(t, 0.0, progress.ProgressPercentage)
	assert.False(t, progress.LastAccessed.IsZero())

	// second view reuses the same row
	again, err := svc.EnsureTopicProgress(user.ID, topic.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, again.ID)
}

func TestComputeCourseProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createTestUser(t, db, models.TrackMedical, false)

	course := models.Course{Name: "Anatomy", Track: models.TrackMedical, IsActive: true}
	require.NoError(t, db.Create(&course).Error)
	module := models.Module{CourseID: course.ID, Name: "Module 1", IsActive: true}
	require.NoError(t, db.Create(&module).Error)

	topics := make([]models.Topic, 4)
	for i := range topics {
		topics[i] = models.Topic{ModuleID: module.ID, Title: "T", IsActive: true}
		require.NoError(t, db.Create(&topics[i]).Error)
	}

	pct, err := svc.ComputeCourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)

	for _, topic := range topics[:2] {
		_, err := svc.RecordTopicProgress(user.ID, topic.ID, 100, 0, true)
		require.NoError(t, err)
	}

	pct, err = svc.ComputeCourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, pct)
}

func TestComputeCourseProgressEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createTestUser(t, db, models.TrackMedical, false)

	course := models.Course{Name: "Empty", Track: models.TrackMedical, IsActive: true}
	require.NoError(t, db.Create(&course).Error)

	pct, err := svc.ComputeCourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)
}

func TestAwardPointsLevelOnlyIncreases(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, models.TrackMedical, false)
	user.Level = 5 // manually granted level stays put

	require.NoError(t, AwardPoints(db, user, 30))
	assert.Equal(t, 30, user.TotalPoints)
	assert.Equal(t, 5, user.Level)

	require.NoError(t, AwardPoints(db, user, 500))
	assert.Equal(t, 530, user.TotalPoints)
	assert.Equal(t, 6, user.Level)
}

func TestAwardBadgeIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewProgressService(db)
	user := createTestUser(t, db, models.TrackMedical, false)

	badge := models.Badge{Name: "First Steps"}
	require.NoError(t, db.Create(&badge).Error)

	require.NoError(t, svc.AwardBadge(user.ID, badge.ID))
	require.NoError(t, svc.AwardBadge(user.ID, badge.ID))

	var count int64
	require.NoError(t, db.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", user.ID, badge.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	has, err := svc.HasBadge(user.ID, badge.ID)
	require.NoError(t, err)
	assert.True(t, has)

	badges, err := svc.ListBadges(user.ID)
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, "First Steps", badges[0].Name)
}

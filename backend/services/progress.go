package services

import (
	"errors"
	"time"

	"medicore/backend/models"

	"gorm.io/gorm"
)

const (
	// TopicCompletionPoints is awarded once per topic, on first completion.
	TopicCompletionPoints = 10
	// QuizPassPoints is awarded for each passed quiz attempt.
	QuizPassPoints = 20
)

// LevelForPoints derives the level from the running point total. Levels never
// decrease because points only accumulate.
func LevelForPoints(points int) int {
	return points/100 + 1
}

type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

type ProgressResult struct {
	Completed   bool    `json:"completed"`
	Percentage  float64 `json:"progress_percentage"`
	TimeSpent   int     `json:"time_spent"`
	TotalPoints int     `json:"total_points"`
	Level       int     `json:"new_level"`
}

// RecordTopicProgress updates the (user, topic) progress row in a single
// transaction. The percentage never regresses, timeDelta accumulates, and the
// completion bonus is paid exactly once.
func (s *ProgressService) RecordTopicProgress(userID, topicID uint, percentage float64, timeDelta int, completed bool) (*ProgressResult, error) {
	var result ProgressResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var topic models.Topic
		if err := tx.First(&topic, topicID).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		progress, err := fetchOrCreateProgress(tx, userID, topicID)
		if err != nil {
			return err
		}

		if percentage > 100 {
			percentage = 100
		}
		if percentage > progress.ProgressPercentage {
			progress.ProgressPercentage = percentage
		}
		if timeDelta > 0 {
			progress.TimeSpent += timeDelta
		}
		now := time.Now()
		progress.LastAccessed = now

		if completed && !progress.Completed {
			progress.Completed = true
			progress.ProgressPercentage = 100
			progress.CompletedAt = &now
			if err := AwardPoints(tx, &user, TopicCompletionPoints); err != nil {
				return err
			}
		}

		if err := tx.Save(progress).Error; err != nil {
			return err
		}

		result = ProgressResult{
			Completed:   progress.Completed,
			Percentage:  progress.ProgressPercentage,
			TimeSpent:   progress.TimeSpent,
			TotalPoints: user.TotalPoints,
			Level:       user.Level,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// EnsureTopicProgress lazily creates the progress row on first topic view and
// stamps last access.
func (s *ProgressService) EnsureTopicProgress(userID, topicID uint) (*models.UserProgress, error) {
	var progress *models.UserProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		p, err := fetchOrCreateProgress(tx, userID, topicID)
		if err != nil {
			return err
		}
		p.LastAccessed = time.Now()
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		progress = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// ComputeCourseProgress returns completed/total*100 over the active topics of
// the course's active modules, 0 when the course has no topics.
func (s *ProgressService) ComputeCourseProgress(userID, courseID uint) (float64, error) {
	var total int64
	err := s.DB.Model(&models.Topic{}).
		Joins("JOIN modules ON modules.id = topics.module_id").
		Where("modules.course_id = ? AND modules.is_active = ? AND topics.is_active = ?", courseID, true, true).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}

	var done int64
	err = s.DB.Model(&models.UserProgress{}).
		Joins("JOIN topics ON topics.id = user_progress.topic_id").
		Joins("JOIN modules ON modules.id = topics.module_id").
		Where("modules.course_id = ? AND modules.is_active = ? AND topics.is_active = ?", courseID, true, true).
		Where("user_progress.user_id = ? AND user_progress.completed = ?", userID, true).
		Count(&done).Error
	if err != nil {
		return 0, err
	}

	return float64(done) / float64(total) * 100, nil
}

// AwardPoints adds to the user's running total and bumps the stored level
// only when the derived level increased.
func AwardPoints(tx *gorm.DB, user *models.User, points int) error {
	user.TotalPoints += points
	if level := LevelForPoints(user.TotalPoints); level > user.Level {
		user.Level = level
	}
	return tx.Save(user).Error
}

// AwardBadge inserts the earned-badge join row if it does not exist yet.
func (s *ProgressService) AwardBadge(userID, badgeID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserBadge{}).
			Where("user_id = ? AND badge_id = ?", userID, badgeID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&models.UserBadge{
			UserID:   userID,
			BadgeID:  badgeID,
			EarnedAt: time.Now(),
		}).Error
	})
}

func (s *ProgressService) HasBadge(userID, badgeID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error
	return count > 0, err
}

func (s *ProgressService) ListBadges(userID uint) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Model(&models.Badge{}).
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.earned_at DESC").
		Find(&badges).Error
	return badges, err
}

func fetchOrCreateProgress(tx *gorm.DB, userID, topicID uint) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := tx.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.UserProgress{
			UserID:       userID,
			TopicID:      topicID,
			LastAccessed: time.Now(),
		}
		if err := tx.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

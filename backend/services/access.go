package services

import (
	"errors"

	"medicore/backend/models"

	"gorm.io/gorm"
)

// Access rule violations are ordinary control flow, not exceptions. Handlers
// map ErrAccessDenied to 403 before touching the target entity.
var ErrAccessDenied = errors.New("access denied")

type AccessService struct {
	DB *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{DB: db}
}

// CanAccessCourse applies the gate rules in order: admins pass
// unconditionally, everyone else needs a track match.
func (s *AccessService) CanAccessCourse(user *models.User, course *models.Course) error {
	if user.IsAdmin {
		return nil
	}
	if course.Track == user.Track {
		return nil
	}
	return ErrAccessDenied
}

// TopicChain loads a topic with its module and owning course, so callers can
// gate on the course track before reading anything else.
func (s *AccessService) TopicChain(topicID uint) (*models.Topic, *models.Module, *models.Course, error) {
	var topic models.Topic
	if err := s.DB.First(&topic, topicID).Error; err != nil {
		return nil, nil, nil, err
	}
	var module models.Module
	if err := s.DB.First(&module, topic.ModuleID).Error; err != nil {
		return nil, nil, nil, err
	}
	var course models.Course
	if err := s.DB.First(&course, module.CourseID).Error; err != nil {
		return nil, nil, nil, err
	}
	return &topic, &module, &course, nil
}

// CanAccessTopic gates a topic through its ancestor chain.
func (s *AccessService) CanAccessTopic(user *models.User, topicID uint) (*models.Topic, error) {
	topic, _, course, err := s.TopicChain(topicID)
	if err != nil {
		return nil, err
	}
	if err := s.CanAccessCourse(user, course); err != nil {
		return nil, err
	}
	return topic, nil
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress tracks one user's state against one topic. The (user, topic)
// pair is unique; the row is created lazily on first topic view.
type UserProgress struct {
	gorm.Model
	UserID             uint `gorm:"not null;uniqueIndex:idx_user_topic"`
	TopicID            uint `gorm:"not null;uniqueIndex:idx_user_topic"`
	Completed          bool `gorm:"default:false"`
	ProgressPercentage float64
	TimeSpent          int // minutes
	LastAccessed       time.Time
	CompletedAt        *time.Time
}

func (UserProgress) TableName() string {
	return "user_progress"
}

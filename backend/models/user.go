package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TrackMedical  = "Medical"
	TrackNursing  = "Nursing"
	TrackPharmacy = "Pharmacy"
)

var Tracks = []string{TrackMedical, TrackNursing, TrackPharmacy}

func ValidTrack(track string) bool {
	for _, t := range Tracks {
		if t == track {
			return true
		}
	}
	return false
}

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	IsAdmin      bool   `gorm:"default:false"`
	Track        string `gorm:"not null"` // Medical, Nursing, Pharmacy
	TotalPoints  int    `gorm:"default:0"`
	Level        int    `gorm:"default:1"`
	LastLogin    *time.Time
}

type Badge struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string
	Icon        string
	Points      int `gorm:"default:0"`
}

// UserBadge is the explicit earned-badge join row.
type UserBadge struct {
	gorm.Model
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_badge"`
	BadgeID  uint `gorm:"not null;uniqueIndex:idx_user_badge"`
	EarnedAt time.Time
}

// Bookmark is the explicit user/resource join row.
type Bookmark struct {
	gorm.Model
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_bookmark"`
	ResourceID uint `gorm:"not null;uniqueIndex:idx_user_bookmark"`
}

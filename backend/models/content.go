package models

import (
	"time"

	"gorm.io/gorm"
)

type NewsArticle struct {
	gorm.Model
	AuthorID    uint
	Title       string `gorm:"not null"`
	Content     string
	Summary     string
	Category    string // announcement, update, news, event
	IsPublished bool   `gorm:"default:false"`
	IsFeatured  bool   `gorm:"default:false"`
	ViewCount   int    `gorm:"default:0"`
	PublishedAt *time.Time
}

type WordOfTheDay struct {
	gorm.Model
	Word          string `gorm:"not null"`
	Definition    string `gorm:"not null"`
	Pronunciation string
	Example       string
	Category      string    `gorm:"default:medical"`
	Date          time.Time `gorm:"uniqueIndex;type:date"`
}

type QuizOfTheDay struct {
	gorm.Model
	Question      string `gorm:"not null"`
	Options       string // JSON array
	CorrectAnswer string
	Explanation   string
	Category      string
	Date          time.Time `gorm:"type:date"`
}

type FAQ struct {
	gorm.Model
	Question   string `gorm:"not null"`
	Answer     string `gorm:"not null"`
	Category   string `gorm:"default:general"`
	OrderIndex int    `gorm:"default:0"`
	IsActive   bool   `gorm:"default:true"`
}

type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"not null"`
	Email   string `gorm:"not null"`
	Subject string
	Message string
	IsRead  bool `gorm:"default:false"`
}

type SearchLog struct {
	gorm.Model
	UserID       uint
	Query        string
	ResultsCount int
	SearchType   string
}

// AIInteraction rows are written fire-and-forget; a failed insert must never
// fail the request that triggered it.
type AIInteraction struct {
	gorm.Model
	UserID          uint
	InteractionType string // chat, search, summary, explanation
	Prompt          string
	Response        string
}

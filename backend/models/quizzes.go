package models

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	gorm.Model
	TopicID      uint `gorm:"not null"`
	Title        string
	Description  string
	PassingScore float64 `gorm:"default:70"`
	MaxAttempts  int     `gorm:"default:3"`
	TimeLimit    int     // minutes, 0 means no limit
	IsActive     bool    `gorm:"default:true"`
	Questions    []QuizQuestion
}

type QuizQuestion struct {
	gorm.Model
	QuizID        uint `gorm:"not null"`
	Question      string
	CorrectAnswer string
	Points        int `gorm:"default:1"`
	OrderIndex    int `gorm:"default:0"`
}

type QuizAttempt struct {
	gorm.Model
	UserID      uint   `gorm:"not null"`
	QuizID      uint   `gorm:"not null"`
	Answers     string // JSON map of question id -> submitted answer
	Score       float64
	Completed   bool `gorm:"default:false"`
	StartedAt   time.Time
	CompletedAt *time.Time
	TimeTaken   int // minutes
}

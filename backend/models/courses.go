package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Name        string `gorm:"not null"`
	Description string
	Track       string `gorm:"not null"` // Medical, Nursing, Pharmacy
	Color       string `gorm:"default:#1a6ac3"`
	Icon        string `gorm:"default:fas fa-book"`
	OrderIndex  int    `gorm:"default:0"`
	IsActive    bool   `gorm:"default:true"`
	Modules     []Module
}

type Module struct {
	gorm.Model
	CourseID    uint `gorm:"not null"`
	Name        string
	Description string
	OrderIndex  int  `gorm:"default:0"`
	IsActive    bool `gorm:"default:true"`
	Topics      []Topic
}

type Topic struct {
	gorm.Model
	ModuleID        uint `gorm:"not null"`
	Title           string
	Content         string
	Summary         string
	YoutubeLink     string
	Mnemonic        string
	EstimatedTime   int    // minutes
	DifficultyLevel string `gorm:"default:beginner"`
	OrderIndex      int    `gorm:"default:0"`
	IsActive        bool   `gorm:"default:true"`
}

type Flashcard struct {
	gorm.Model
	TopicID  uint `gorm:"not null"`
	Front    string
	Back     string
	IsActive bool `gorm:"default:true"`
}

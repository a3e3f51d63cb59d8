package models

import "gorm.io/gorm"

var ResourceTypes = []string{"book", "article", "magazine", "pdf", "video", "image", "link"}

type Resource struct {
	gorm.Model
	TopicID       *uint
	Title         string `gorm:"not null"`
	Description   string
	ResourceType  string `gorm:"not null"` // book, article, magazine, pdf, video, image, link
	FilePath      string // stored filename, not the original upload name
	FileSize      int64
	ExternalURL   string
	Author        string
	YearPublished int
	UploadedBy    uint
	ViewCount     int  `gorm:"default:0"`
	DownloadCount int  `gorm:"default:0"`
	IsActive      bool `gorm:"default:true"`
}

type ResourceRating struct {
	gorm.Model
	UserID     uint `gorm:"not null;uniqueIndex:idx_user_rating"`
	ResourceID uint `gorm:"not null;uniqueIndex:idx_user_rating"`
	Rating     int  `gorm:"check:rating>=1 AND rating<=5"`
	Comment    string
}

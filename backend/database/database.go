package database

import (
	"fmt"
	"time"

	"medicore/backend/config"
	"medicore/backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Bookmark{},
		&models.Course{},
		&models.Module{},
		&models.Topic{},
		&models.Flashcard{},
		&models.Resource{},
		&models.ResourceRating{},
		&models.UserProgress{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
		&models.DrugClass{},
		&models.Drug{},
		&models.NewsArticle{},
		&models.WordOfTheDay{},
		&models.QuizOfTheDay{},
		&models.FAQ{},
		&models.ContactMessage{},
		&models.SearchLog{},
		&models.AIInteraction{},
	)
}

// SeedAdmin creates the default admin account on first boot.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var admin models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&admin).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin = models.User{
		Name:         "Admin User",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		IsAdmin:      true,
		Track:        models.TrackMedical,
		Level:        1,
	}
	return db.Create(&admin).Error
}

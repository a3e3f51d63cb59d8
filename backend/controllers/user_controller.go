package controllers

import (
	"errors"

	"medicore/backend/config"
	"medicore/backend/middleware"
	"medicore/backend/models"
	"medicore/backend/services"
	"medicore/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Access   *services.AccessService
	Progress *services.ProgressService
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{
		DB:       db,
		Cfg:      cfg,
		Access:   services.NewAccessService(db),
		Progress: services.NewProgressService(db),
	}
}

func (uc *UserController) Dashboard(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var courses []models.Course
	uc.DB.Where("track = ? AND is_active = ?", user.Track, true).
		Order("order_index, id").
		Find(&courses)

	courseProgress := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		pct, err := uc.Progress.ComputeCourseProgress(user.ID, course.ID)
		if err != nil {
			return utils.InternalServerError(c, "Could not compute progress")
		}
		courseProgress = append(courseProgress, fiber.Map{
			"id":                  course.ID,
			"name":                course.Name,
			"progress_percentage": pct,
		})
	}

	var recent []models.UserProgress
	uc.DB.Where("user_id = ?", user.ID).
		Order("last_accessed DESC").
		Limit(5).
		Find(&recent)

	badges, err := uc.Progress.ListBadges(user.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"user": fiber.Map{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"track":        user.Track,
			"total_points": user.TotalPoints,
			"level":        user.Level,
		},
		"courses":         courseProgress,
		"recent_activity": recent,
		"badges":          badges,
	})
}

type UpdateProgressInput struct {
	TopicID            uint    `json:"topic_id" validate:"required"`
	ProgressPercentage float64 `json:"progress_percentage" validate:"min=0,max=100"`
	TimeSpent          int     `json:"time_spent" validate:"min=0"`
	Completed          bool    `json:"completed"`
}

// UpdateProgress records a caller-supplied percentage and time delta for a
// topic. The caller sends deltas, not totals; duplicate submissions cannot be
// detected here.
func (uc *UserController) UpdateProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input UpdateProgressInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Invalid progress values")
	}

	if _, err := uc.Access.CanAccessTopic(user, input.TopicID); err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			return utils.Forbidden(c, "You don't have access to this topic")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Topic not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	result, err := uc.Progress.RecordTopicProgress(
		user.ID, input.TopicID, input.ProgressPercentage, input.TimeSpent, input.Completed,
	)
	if err != nil {
		return utils.InternalServerError(c, "Could not update progress")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"new_level":    result.Level,
		"total_points": result.TotalPoints,
	})
}

func (uc *UserController) Bookmarks(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var resources []models.Resource
	err := uc.DB.Model(&models.Resource{}).
		Joins("JOIN bookmarks ON bookmarks.resource_id = resources.id").
		Where("bookmarks.user_id = ? AND resources.is_active = ?", user.ID, true).
		Order("bookmarks.created_at DESC").
		Find(&resources).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{"bookmarks": resources})
}

func (uc *UserController) Badges(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	badges, err := uc.Progress.ListBadges(user.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{
		"badges":       badges,
		"total_points": user.TotalPoints,
		"level":        user.Level,
	})
}

func (uc *UserController) Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"track":        user.Track,
		"is_admin":     user.IsAdmin,
		"total_points": user.TotalPoints,
		"level":        user.Level,
		"last_login":   user.LastLogin,
	})
}

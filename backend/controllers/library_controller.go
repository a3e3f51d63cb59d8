package controllers

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"medicore/backend/config"
	"medicore/backend/middleware"
	"medicore/backend/models"
	"medicore/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LibraryController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewLibraryController(db *gorm.DB, cfg *config.Config) *LibraryController {
	return &LibraryController{DB: db, Cfg: cfg}
}

// Index lists active resources with filters, a fixed set of sort keys and
// stable pagination (ties broken by primary key). Inactive rows are excluded
// regardless of the filter combination.
func (lc *LibraryController) Index(c *fiber.Ctx) error {
	resourceType := c.Query("type", "all")
	author := c.Query("author")
	year := c.QueryInt("year", 0)
	search := c.Query("q")
	sortBy := c.Query("sort", "created_at")
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("per_page", 12)
	if perPage < 1 || perPage > 100 {
		perPage = 12
	}

	query := lc.DB.Model(&models.Resource{}).Where("is_active = ?", true)

	if resourceType != "all" && resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}
	if author != "" {
		query = query.Where("author LIKE ?", "%"+author+"%")
	}
	if year > 0 {
		query = query.Where("year_published = ?", year)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"title LIKE ? OR description LIKE ? OR author LIKE ?",
			like, like, like,
		)
	}

	switch sortBy {
	case "title":
		query = query.Order("title, id")
	case "author":
		query = query.Order("author, id")
	case "year":
		query = query.Order("year_published DESC, id")
	case "popular":
		query = query.Order("view_count DESC, id")
	default:
		query = query.Order("created_at DESC, id")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var resources []models.Resource
	if err := query.Offset((page - 1) * perPage).Limit(perPage).Find(&resources).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Paginate(c, resources, total, page, perPage)
}

func (lc *LibraryController) ResourceDetail(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	resourceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid resource ID")
	}

	var resource models.Resource
	if err := lc.DB.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Resource not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	lc.DB.Model(&resource).Update("view_count", gorm.Expr("view_count + 1"))

	var userRating models.ResourceRating
	hasUserRating := lc.DB.Where("user_id = ? AND resource_id = ?", user.ID, resource.ID).
		First(&userRating).Error == nil

	var ratings []models.ResourceRating
	lc.DB.Where("resource_id = ?", resource.ID).
		Order("created_at DESC").
		Find(&ratings)

	ratingCounts := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	sum := 0
	for _, r := range ratings {
		ratingCounts[r.Rating]++
		sum += r.Rating
	}
	avgRating := 0.0
	if len(ratings) > 0 {
		avgRating = float64(sum) / float64(len(ratings))
	}

	var related []models.Resource
	if resource.TopicID != nil {
		lc.DB.Where("topic_id = ? AND id != ? AND is_active = ?", *resource.TopicID, resource.ID, true).
			Limit(6).
			Find(&related)
	}
	if len(related) < 6 {
		var more []models.Resource
		lc.DB.Where("resource_type = ? AND id != ? AND is_active = ?", resource.ResourceType, resource.ID, true).
			Limit(6 - len(related)).
			Find(&more)
		related = append(related, more...)
	}

	var bookmarkCount int64
	lc.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND resource_id = ?", user.ID, resource.ID).
		Count(&bookmarkCount)

	response := fiber.Map{
		"resource":      resource,
		"ratings":       ratings,
		"rating_counts": ratingCounts,
		"total_ratings": len(ratings),
		"avg_rating":    avgRating,
		"related":       related,
		"is_bookmarked": bookmarkCount > 0,
	}
	if hasUserRating {
		response["user_rating"] = userRating
	}
	return c.JSON(response)
}

type RateInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (lc *LibraryController) Rate(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	resourceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid resource ID")
	}

	var resource models.Resource
	if err := lc.DB.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Resource not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var input RateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid rating value",
		})
	}

	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.ResourceRating
		err := tx.Where("user_id = ? AND resource_id = ?", user.ID, resource.ID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.ResourceRating{
				UserID:     user.ID,
				ResourceID: resource.ID,
				Rating:     input.Rating,
				Comment:    strings.TrimSpace(input.Comment),
			}).Error
		}
		if err != nil {
			return err
		}
		existing.Rating = input.Rating
		existing.Comment = strings.TrimSpace(input.Comment)
		return tx.Save(&existing).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to submit rating",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Rating submitted successfully",
	})
}

func (lc *LibraryController) Download(c *fiber.Ctx) error {
	resourceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid resource ID")
	}

	var resource models.Resource
	if err := lc.DB.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Resource not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if resource.FilePath == "" {
		return utils.BadRequest(c, "This resource is not available for download")
	}

	lc.DB.Model(&resource).Update("download_count", gorm.Expr("download_count + 1"))

	path := filepath.Join(lc.Cfg.UploadDir, resource.FilePath)
	downloadName := resource.Title + filepath.Ext(resource.FilePath)
	return c.Download(path, downloadName)
}

func (lc *LibraryController) ToggleBookmark(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	resourceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid resource ID")
	}

	var resource models.Resource
	if err := lc.DB.First(&resource, resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Resource not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	action := "added"
	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		var bookmark models.Bookmark
		err := tx.Where("user_id = ? AND resource_id = ?", user.ID, resource.ID).
			First(&bookmark).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.Bookmark{
				UserID:     user.ID,
				ResourceID: resource.ID,
			}).Error
		}
		if err != nil {
			return err
		}
		// hard delete, so a later re-add does not trip the unique index
		action = "removed"
		return tx.Unscoped().Delete(&bookmark).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update bookmark",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"action":     action,
		"bookmarked": action == "added",
	})
}

func (lc *LibraryController) SearchSuggestions(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		return c.JSON([]fiber.Map{})
	}
	like := "%" + query + "%"

	suggestions := []fiber.Map{}

	var titleMatches []models.Resource
	lc.DB.Where("title LIKE ? AND is_active = ?", like, true).
		Limit(5).
		Find(&titleMatches)
	for _, r := range titleMatches {
		suggestions = append(suggestions, fiber.Map{
			"type": "title",
			"text": r.Title,
			"id":   r.ID,
		})
	}

	var authors []string
	lc.DB.Model(&models.Resource{}).
		Distinct("author").
		Where("author LIKE ? AND author != '' AND is_active = ?", like, true).
		Limit(3).
		Pluck("author", &authors)
	for _, a := range authors {
		suggestions = append(suggestions, fiber.Map{
			"type": "author",
			"text": "By " + a,
		})
	}

	if len(suggestions) > 8 {
		suggestions = suggestions[:8]
	}
	return c.JSON(suggestions)
}

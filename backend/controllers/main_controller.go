package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"medicore/backend/config"
	"medicore/backend/middleware"
	"medicore/backend/models"
	"medicore/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MainController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewMainController(db *gorm.DB, cfg *config.Config) *MainController {
	return &MainController{DB: db, Cfg: cfg}
}

func (mc *MainController) Home(c *fiber.Ctx) error {
	var featured []models.NewsArticle
	mc.DB.Where("is_published = ? AND is_featured = ?", true, true).
		Order("published_at DESC, id").
		Limit(3).
		Find(&featured)

	var latest []models.NewsArticle
	mc.DB.Where("is_published = ?", true).
		Order("published_at DESC, id").
		Limit(5).
		Find(&latest)

	word := mc.todaysWord()
	quiz := mc.todaysQuiz()

	var userCount, resourceCount int64
	mc.DB.Model(&models.User{}).Count(&userCount)
	mc.DB.Model(&models.Resource{}).Where("is_active = ?", true).Count(&resourceCount)

	return c.JSON(fiber.Map{
		"featured_news":   featured,
		"latest_news":     latest,
		"word_of_the_day": word,
		"quiz_of_the_day": quiz,
		"stats": fiber.Map{
			"total_users":     userCount,
			"total_resources": resourceCount,
		},
	})
}

func (mc *MainController) News(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := 10
	category := c.Query("category")

	query := mc.DB.Model(&models.NewsArticle{}).Where("is_published = ?", true)
	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var articles []models.NewsArticle
	if err := query.Order("published_at DESC, id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&articles).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Paginate(c, articles, total, page, perPage)
}

func (mc *MainController) NewsArticle(c *fiber.Ctx) error {
	articleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid article ID")
	}

	var article models.NewsArticle
	if err := mc.DB.Where("id = ? AND is_published = ?", articleID, true).
		First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Article not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	mc.DB.Model(&article).Update("view_count", gorm.Expr("view_count + 1"))

	var related []models.NewsArticle
	mc.DB.Where("category = ? AND id != ? AND is_published = ?", article.Category, article.ID, true).
		Order("published_at DESC, id").
		Limit(3).
		Find(&related)

	return c.JSON(fiber.Map{
		"article": article,
		"related": related,
	})
}

func (mc *MainController) FAQs(c *fiber.Ctx) error {
	var faqs []models.FAQ
	if err := mc.DB.Where("is_active = ?", true).
		Order("category, order_index, id").
		Find(&faqs).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	grouped := map[string][]models.FAQ{}
	for _, f := range faqs {
		grouped[f.Category] = append(grouped[f.Category], f)
	}
	return c.JSON(fiber.Map{"faqs": grouped})
}

type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required,min=10"`
}

func (mc *MainController) Contact(c *fiber.Ctx) error {
	var input ContactInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Please fill in all required fields")
	}

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}
	if err := mc.DB.Create(&msg).Error; err != nil {
		return utils.InternalServerError(c, "Could not save your message")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Thank you for your message! We'll get back to you soon.",
	})
}

// Search queries topics, resources and drugs in one pass and records the
// query asynchronously. A failed log write never affects the response.
func (mc *MainController) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.JSON(fiber.Map{
			"query":     "",
			"topics":    []models.Topic{},
			"resources": []models.Resource{},
			"drugs":     []models.Drug{},
			"news":      []models.NewsArticle{},
		})
	}
	like := "%" + query + "%"

	var topics []models.Topic
	mc.DB.Where("(title LIKE ? OR content LIKE ?) AND is_active = ?", like, like, true).
		Limit(10).
		Find(&topics)

	var resources []models.Resource
	mc.DB.Where("(title LIKE ? OR description LIKE ? OR author LIKE ?) AND is_active = ?",
		like, like, like, true).
		Limit(10).
		Find(&resources)

	var drugs []models.Drug
	mc.DB.Where("name LIKE ? OR generic_name LIKE ?", like, like).
		Limit(10).
		Find(&drugs)

	var news []models.NewsArticle
	mc.DB.Where("(title LIKE ? OR content LIKE ?) AND is_published = ?", like, like, true).
		Limit(10).
		Find(&news)

	resultsCount := len(topics) + len(resources) + len(drugs) + len(news)

	// the route is public; the log row is anonymous unless a token was sent
	var userID uint
	if u := middleware.CurrentUser(c); u != nil {
		userID = u.ID
	}
	db := mc.DB
	go func() {
		db.Create(&models.SearchLog{
			UserID:       userID,
			Query:        query,
			ResultsCount: resultsCount,
			SearchType:   "global",
		})
	}()

	return c.JSON(fiber.Map{
		"query":     query,
		"topics":    topics,
		"resources": resources,
		"drugs":     drugs,
		"news":      news,
		"total":     resultsCount,
	})
}

func (mc *MainController) WordOfTheDay(c *fiber.Ctx) error {
	word := mc.todaysWord()
	if word == nil {
		return utils.NotFound(c, "No word of the day available")
	}
	return c.JSON(fiber.Map{"word_of_the_day": word})
}

func (mc *MainController) QuizOfTheDay(c *fiber.Ctx) error {
	quiz := mc.todaysQuiz()
	if quiz == nil {
		return utils.NotFound(c, "No quiz of the day available")
	}
	return c.JSON(fiber.Map{"quiz_of_the_day": quiz})
}

func (mc *MainController) About(c *fiber.Ctx) error {
	var counts struct {
		Users     int64
		Courses   int64
		Topics    int64
		Resources int64
	}
	mc.DB.Model(&models.User{}).Count(&counts.Users)
	mc.DB.Model(&models.Course{}).Where("is_active = ?", true).Count(&counts.Courses)
	mc.DB.Model(&models.Topic{}).Where("is_active = ?", true).Count(&counts.Topics)
	mc.DB.Model(&models.Resource{}).Where("is_active = ?", true).Count(&counts.Resources)

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"total_users":     counts.Users,
			"total_courses":   counts.Courses,
			"total_topics":    counts.Topics,
			"total_resources": counts.Resources,
		},
	})
}

// today falls back to the most recent entry when no row matches the current
// date, so the sections never go empty once seeded.
func (mc *MainController) todaysWord() *models.WordOfTheDay {
	today := time.Now().Format("2006-01-02")

	var word models.WordOfTheDay
	if err := mc.DB.Where("date = ?", today).First(&word).Error; err == nil {
		return &word
	}
	if err := mc.DB.Order("date DESC").First(&word).Error; err == nil {
		return &word
	}
	return nil
}

func (mc *MainController) todaysQuiz() *models.QuizOfTheDay {
	today := time.Now().Format("2006-01-02")

	var quiz models.QuizOfTheDay
	if err := mc.DB.Where("date = ?", today).First(&quiz).Error; err == nil {
		return &quiz
	}
	if err := mc.DB.Order("date DESC").First(&quiz).Error; err == nil {
		return &quiz
	}
	return nil
}

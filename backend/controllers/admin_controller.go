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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

func (ad *AdminController) Dashboard(c *fiber.Ctx) error {
	var userCount, courseCount, topicCount, resourceCount, quizCount, unreadMessages int64
	ad.DB.Model(&models.User{}).Count(&userCount)
	ad.DB.Model(&models.Course{}).Count(&courseCount)
	ad.DB.Model(&models.Topic{}).Count(&topicCount)
	ad.DB.Model(&models.Resource{}).Count(&resourceCount)
	ad.DB.Model(&models.Quiz{}).Count(&quizCount)
	ad.DB.Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&unreadMessages)

	trackDistribution := map[string]int64{}
	for _, track := range models.Tracks {
		var n int64
		ad.DB.Model(&models.User{}).Where("track = ?", track).Count(&n)
		trackDistribution[track] = n
	}

	var recentUsers []models.User
	ad.DB.Order("created_at DESC").Limit(5).Find(&recentUsers)

	var recentMessages []models.ContactMessage
	ad.DB.Order("created_at DESC").Limit(5).Find(&recentMessages)

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"total_users":     userCount,
			"total_courses":   courseCount,
			"total_topics":    topicCount,
			"total_resources": resourceCount,
			"total_quizzes":   quizCount,
			"unread_messages": unreadMessages,
		},
		"track_distribution": trackDistribution,
		"recent_users":       recentUsers,
		"recent_messages":    recentMessages,
	})
}

func (ad *AdminController) Users(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := 20

	query := ad.DB.Model(&models.User{})
	if track := c.Query("track"); track != "" && track != "all" {
		query = query.Where("track = ?", track)
	}
	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var users []models.User
	if err := query.Order("created_at DESC, id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Paginate(c, users, total, page, perPage)
}

type AddUserInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Track    string `json:"track" validate:"required,oneof=Medical Nursing Pharmacy"`
	IsAdmin  bool   `json:"is_admin"`
}

func (ad *AdminController) AddUser(c *fiber.Ctx) error {
	var input AddUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Invalid user data")
	}

	var existing models.User
	if err := ad.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.BadRequest(c, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: string(hash),
		Track:        input.Track,
		IsAdmin:      input.IsAdmin,
		Level:        1,
	}
	if err := ad.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not create user")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
		"user_id": user.ID,
	})
}

func (ad *AdminController) Courses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := ad.DB.Order("track, order_index, id").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(fiber.Map{"courses": courses})
}

type AddCourseInput struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
	Track       string `json:"track" validate:"required,oneof=Medical Nursing Pharmacy"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	OrderIndex  int    `json:"order_index"`
}

func (ad *AdminController) AddCourse(c *fiber.Ctx) error {
	var input AddCourseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Invalid course data")
	}

	course := models.Course{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Track:       input.Track,
		OrderIndex:  input.OrderIndex,
		IsActive:    true,
	}
	if input.Color != "" {
		course.Color = input.Color
	}
	if input.Icon != "" {
		course.Icon = input.Icon
	}
	if err := ad.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Course created successfully",
		"course_id": course.ID,
	})
}

type AddModuleInput struct {
	CourseID    uint   `json:"course_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

func (ad *AdminController) AddModule(c *fiber.Ctx) error {
	var input AddModuleInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Invalid module data")
	}

	var course models.Course
	if err := ad.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	module := models.Module{
		CourseID:    course.ID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
		IsActive:    true,
	}
	if err := ad.DB.Create(&module).Error; err != nil {
		return utils.InternalServerError(c, "Could not create module")
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Module created successfully",
		"module_id": module.ID,
	})
}

type AddTopicInput struct {
	ModuleID        uint   `json:"module_id" validate:"required"`
	Title           string `json:"title" validate:"required,min=2"`
	Content         string `json:"content"`
	Summary         string `json:"summary"`
	YoutubeLink     string `json:"youtube_link"`
	Mnemonic        string `json:"mnemonic"`
	EstimatedTime   int    `json:"estimated_time"`
	DifficultyLevel string `json:"difficulty_level"`
	OrderIndex      int    `json:"order_index"`
}

func (ad *AdminController) AddTopic(c *fiber.Ctx) error {
	var input AddTopicInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Invalid topic data")
	}

	var module models.Module
	if err := ad.DB.First(&module, input.ModuleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Module not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	topic := models.Topic{
		ModuleID:      module.ID,
		Title:         strings.TrimSpace(input.Title),
		Content:       input.Content,
		Summary:       input.Summary,
		YoutubeLink:   input.YoutubeLink,
		Mnemonic:      input.Mnemonic,
		EstimatedTime: input.EstimatedTime,
		OrderIndex:    input.OrderIndex,
		IsActive:      true,
	}
	if input.DifficultyLevel != "" {
		topic.DifficultyLevel = input.DifficultyLevel
	}
	if err := ad.DB.Create(&topic).Error; err != nil {
		return utils.InternalServerError(c, "Could not create topic")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Topic created successfully",
		"topic_id": topic.ID,
	})
}

func (ad *AdminController) Resources(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := 20

	query := ad.DB.Model(&models.Resource{})
	if resourceType := c.Query("type"); resourceType != "" && resourceType != "all" {
		query = query.Where("resource_type = ?", resourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var resources []models.Resource
	if err := query.Order("created_at DESC, id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&resources).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Paginate(c, resources, total, page, perPage)
}

// AddResource accepts multipart form data. A file upload and an external URL
// are both optional, but link-type resources need the URL.
func (ad *AdminController) AddResource(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	title := strings.TrimSpace(c.FormValue("title"))
	resourceType := c.FormValue("resource_type")
	if title == "" || !validResourceType(resourceType) {
		return utils.BadRequest(c, "Title and a valid resource type are required")
	}

	resource := models.Resource{
		Title:        title,
		Description:  c.FormValue("description"),
		ResourceType: resourceType,
		ExternalURL:  strings.TrimSpace(c.FormValue("external_url")),
		Author:       strings.TrimSpace(c.FormValue("author")),
		UploadedBy:   admin.ID,
		IsActive:     true,
	}

	if year, err := strconv.Atoi(c.FormValue("year_published")); err == nil && year > 0 {
		resource.YearPublished = year
	}
	if topicID, err := strconv.Atoi(c.FormValue("topic_id")); err == nil && topicID > 0 {
		id := uint(topicID)
		resource.TopicID = &id
	}

	if file, err := c.FormFile("file"); err == nil {
		stored, size, err := utils.SaveUpload(c, file, ad.Cfg.UploadDir)
		if err != nil {
			return utils.InternalServerError(c, "Could not save uploaded file")
		}
		resource.FilePath = stored
		resource.FileSize = size
	}

	if resource.ResourceType == "link" && resource.ExternalURL == "" {
		return utils.BadRequest(c, "Link resources require an external URL")
	}

	if err := ad.DB.Create(&resource).Error; err != nil {
		return utils.InternalServerError(c, "Could not create resource")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Resource added successfully",
		"resource_id": resource.ID,
	})
}

func (ad *AdminController) News(c *fiber.Ctx) error {
	var articles []models.NewsArticle
	if err := ad.DB.Order("created_at DESC, id").Find(&articles).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(fiber.Map{"articles": articles})
}

type AddNewsInput struct {
	Title       string `json:"title" validate:"required,min=2"`
	Content     string `json:"content" validate:"required"`
	Summary     string `json:"summary"`
	Category    string `json:"category"`
	IsPublished bool   `json:"is_published"`
	IsFeatured  bool   `json:"is_featured"`
}

func (ad *AdminController) AddNews(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	var input AddNewsInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Title and content are required")
	}

	article := models.NewsArticle{
		AuthorID:    admin.ID,
		Title:       strings.TrimSpace(input.Title),
		Content:     input.Content,
		Summary:     input.Summary,
		Category:    input.Category,
		IsPublished: input.IsPublished,
		IsFeatured:  input.IsFeatured,
	}
	if article.Category == "" {
		article.Category = "news"
	}
	if article.IsPublished {
		now := time.Now()
		article.PublishedAt = &now
	}
	if err := ad.DB.Create(&article).Error; err != nil {
		return utils.InternalServerError(c, "Could not create article")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Article created successfully",
		"article_id": article.ID,
	})
}

type WordOfDayInput struct {
	Word          string `json:"word" validate:"required"`
	Definition    string `json:"definition" validate:"required"`
	Pronunciation string `json:"pronunciation"`
	Example       string `json:"example"`
	Category      string `json:"category"`
	Date          string `json:"date" validate:"required"`
}

// SetWordOfTheDay upserts on the date column; only one word per day.
func (ad *AdminController) SetWordOfTheDay(c *fiber.Ctx) error {
	var input WordOfDayInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Word, definition and date are required")
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return utils.BadRequest(c, "Please enter a valid date (YYYY-MM-DD)")
	}

	err = ad.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.WordOfTheDay
		err := tx.Where("date = ?", date.Format("2006-01-02")).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			word := models.WordOfTheDay{
				Word:          strings.TrimSpace(input.Word),
				Definition:    input.Definition,
				Pronunciation: input.Pronunciation,
				Example:       input.Example,
				Date:          date,
			}
			if input.Category != "" {
				word.Category = input.Category
			}
			return tx.Create(&word).Error
		}
		if err != nil {
			return err
		}
		existing.Word = strings.TrimSpace(input.Word)
		existing.Definition = input.Definition
		existing.Pronunciation = input.Pronunciation
		existing.Example = input.Example
		if input.Category != "" {
			existing.Category = input.Category
		}
		return tx.Save(&existing).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not save word of the day")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Word of the day saved",
	})
}

func (ad *AdminController) Messages(c *fiber.Ctx) error {
	var messages []models.ContactMessage
	if err := ad.DB.Order("is_read, created_at DESC").Find(&messages).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(fiber.Map{"messages": messages})
}

func (ad *AdminController) MarkMessageRead(c *fiber.Ctx) error {
	messageID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid message ID")
	}

	var msg models.ContactMessage
	if err := ad.DB.First(&msg, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Message not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := ad.DB.Model(&msg).Update("is_read", true).Error; err != nil {
		return utils.InternalServerError(c, "Could not update message")
	}
	return c.JSON(fiber.Map{"success": true})
}

// FAQs lists all entries including inactive ones, unlike the public endpoint.
func (ad *AdminController) FAQs(c *fiber.Ctx) error {
	var faqs []models.FAQ
	if err := ad.DB.Order("category, order_index, id").Find(&faqs).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(fiber.Map{"faqs": faqs})
}

type AddFAQInput struct {
	Question   string `json:"question" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   string `json:"category"`
	OrderIndex int    `json:"order_index"`
}

func (ad *AdminController) AddFAQ(c *fiber.Ctx) error {
	var input AddFAQInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Question and answer are required")
	}

	faq := models.FAQ{
		Question:   strings.TrimSpace(input.Question),
		Answer:     input.Answer,
		OrderIndex: input.OrderIndex,
		IsActive:   true,
	}
	if input.Category != "" {
		faq.Category = input.Category
	}
	if err := ad.DB.Create(&faq).Error; err != nil {
		return utils.InternalServerError(c, "Could not create FAQ")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "FAQ created successfully",
		"faq_id":  faq.ID,
	})
}

func validResourceType(t string) bool {
	for _, rt := range models.ResourceTypes {
		if rt == t {
			return true
		}
	}
	return false
}

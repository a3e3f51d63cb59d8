package controllers

import (
	"errors"
	"strconv"

	"medicore/backend/config"
	"medicore/backend/middleware"
	"medicore/backend/models"
	"medicore/backend/services"
	"medicore/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Access   *services.AccessService
	Progress *services.ProgressService
	Quiz     *services.QuizService
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{
		DB:       db,
		Cfg:      cfg,
		Access:   services.NewAccessService(db),
		Progress: services.NewProgressService(db),
		Quiz:     services.NewQuizService(db),
	}
}

func (cc *CoursesController) Index(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	coursesByTrack := fiber.Map{}
	for _, track := range models.Tracks {
		var courses []models.Course
		cc.DB.Where("track = ? AND is_active = ?", track, true).
			Order("order_index, id").
			Find(&courses)
		coursesByTrack[track] = courses
	}

	return c.JSON(fiber.Map{
		"tracks":           models.Tracks,
		"courses_by_track": coursesByTrack,
		"user_track":       user.Track,
	})
}

func (cc *CoursesController) TrackCourses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	track := c.Params("track")
	if !models.ValidTrack(track) {
		return utils.NotFound(c, "Track not found")
	}

	var courses []models.Course
	cc.DB.Where("track = ? AND is_active = ?", track, true).
		Order("order_index, id").
		Find(&courses)

	progressData := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		pct, err := cc.Progress.ComputeCourseProgress(user.ID, course.ID)
		if err != nil {
			return utils.InternalServerError(c, "Could not compute progress")
		}
		progressData = append(progressData, fiber.Map{
			"course":              course,
			"progress_percentage": pct,
		})
	}

	return c.JSON(fiber.Map{
		"track":   track,
		"courses": progressData,
	})
}

func (cc *CoursesController) CourseDetail(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := cc.Access.CanAccessCourse(user, &course); err != nil {
		return utils.Forbidden(c, "You don't have access to this course")
	}

	var modules []models.Module
	cc.DB.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("order_index, id").
		Find(&modules)

	moduleData := make([]fiber.Map, 0, len(modules))
	for _, module := range modules {
		var total, done int64
		cc.DB.Model(&models.Topic{}).
			Where("module_id = ? AND is_active = ?", module.ID, true).
			Count(&total)
		cc.DB.Model(&models.UserProgress{}).
			Joins("JOIN topics ON topics.id = user_progress.topic_id").
			Where("topics.module_id = ? AND topics.is_active = ?", module.ID, true).
			Where("user_progress.user_id = ? AND user_progress.completed = ?", user.ID, true).
			Count(&done)

		pct := 0.0
		if total > 0 {
			pct = float64(done) / float64(total) * 100
		}
		moduleData = append(moduleData, fiber.Map{
			"module":              module,
			"total_topics":        total,
			"completed_topics":    done,
			"progress_percentage": pct,
		})
	}

	var recent []models.UserProgress
	cc.DB.Model(&models.UserProgress{}).
		Joins("JOIN topics ON topics.id = user_progress.topic_id").
		Joins("JOIN modules ON modules.id = topics.module_id").
		Where("modules.course_id = ? AND user_progress.user_id = ?", courseID, user.ID).
		Order("user_progress.last_accessed DESC").
		Limit(5).
		Find(&recent)

	return c.JSON(fiber.Map{
		"course":          course,
		"modules":         moduleData,
		"recent_activity": recent,
	})
}

func (cc *CoursesController) ModuleDetail(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	moduleID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid module ID")
	}

	var module models.Module
	if err := cc.DB.First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Module not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	var course models.Course
	if err := cc.DB.First(&course, module.CourseID).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if err := cc.Access.CanAccessCourse(user, &course); err != nil {
		return utils.Forbidden(c, "You don't have access to this module")
	}

	var topics []models.Topic
	cc.DB.Where("module_id = ? AND is_active = ?", moduleID, true).
		Order("order_index, id").
		Find(&topics)

	topicData := make([]fiber.Map, 0, len(topics))
	for _, topic := range topics {
		var progress models.UserProgress
		completed := false
		pct := 0.0
		err := cc.DB.Where("user_id = ? AND topic_id = ?", user.ID, topic.ID).
			First(&progress).Error
		if err == nil {
			completed = progress.Completed
			pct = progress.ProgressPercentage
		}
		topicData = append(topicData, fiber.Map{
			"topic":               topic,
			"completed":           completed,
			"progress_percentage": pct,
		})
	}

	return c.JSON(fiber.Map{
		"module": module,
		"course": course,
		"topics": topicData,
	})
}

func (cc *CoursesController) TopicDetail(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	topicID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid topic ID")
	}

	topic, module, course, err := cc.Access.TopicChain(uint(topicID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Topic not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if err := cc.Access.CanAccessCourse(user, course); err != nil {
		return utils.Forbidden(c, "You don't have access to this topic")
	}

	progress, err := cc.Progress.EnsureTopicProgress(user.ID, topic.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not update progress")
	}

	var resources []models.Resource
	cc.DB.Where("topic_id = ? AND is_active = ?", topic.ID, true).Find(&resources)
	resourcesByType := map[string][]models.Resource{}
	for _, r := range resources {
		resourcesByType[r.ResourceType] = append(resourcesByType[r.ResourceType], r)
	}

	var flashcards []models.Flashcard
	cc.DB.Where("topic_id = ? AND is_active = ?", topic.ID, true).Find(&flashcards)

	var quizzes []models.Quiz
	cc.DB.Where("topic_id = ? AND is_active = ?", topic.ID, true).Find(&quizzes)

	quizAttempts := map[uint][]models.QuizAttempt{}
	for _, quiz := range quizzes {
		var attempts []models.QuizAttempt
		cc.DB.Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).
			Order("started_at DESC").
			Find(&attempts)
		quizAttempts[quiz.ID] = attempts
	}

	// previous/next topics by order within the module
	var siblings []models.Topic
	cc.DB.Where("module_id = ? AND is_active = ?", module.ID, true).
		Order("order_index, id").
		Find(&siblings)

	var prevTopic, nextTopic *models.Topic
	for i := range siblings {
		if siblings[i].ID == topic.ID {
			if i > 0 {
				prevTopic = &siblings[i-1]
			}
			if i < len(siblings)-1 {
				nextTopic = &siblings[i+1]
			}
			break
		}
	}

	return c.JSON(fiber.Map{
		"topic":             topic,
		"module":            module,
		"course":            course,
		"progress":          progress,
		"resources_by_type": resourcesByType,
		"flashcards":        flashcards,
		"quizzes":           quizzes,
		"quiz_attempts":     quizAttempts,
		"prev_topic":        prevTopic,
		"next_topic":        nextTopic,
	})
}

func (cc *CoursesController) Flashcards(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	topicID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid topic ID")
	}

	topic, err := cc.Access.CanAccessTopic(user, uint(topicID))
	if err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			return utils.Forbidden(c, "You don't have access to this topic")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Topic not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var flashcards []models.Flashcard
	cc.DB.Where("topic_id = ? AND is_active = ?", topic.ID, true).Find(&flashcards)

	return c.JSON(fiber.Map{
		"topic":      topic,
		"flashcards": flashcards,
	})
}

func (cc *CoursesController) QuizDetail(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := cc.DB.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if _, err := cc.Access.CanAccessTopic(user, quiz.TopicID); err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			return utils.Forbidden(c, "You don't have access to this quiz")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	used, err := cc.Quiz.AttemptsUsed(user.ID, quiz.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var questions []models.QuizQuestion
	cc.DB.Where("quiz_id = ?", quiz.ID).Order("order_index, id").Find(&questions)

	// correct answers are never exposed before grading
	questionData := make([]fiber.Map, 0, len(questions))
	for _, q := range questions {
		questionData = append(questionData, fiber.Map{
			"id":       q.ID,
			"question": q.Question,
			"points":   q.Points,
			"order":    q.OrderIndex,
		})
	}

	return c.JSON(fiber.Map{
		"quiz": fiber.Map{
			"id":            quiz.ID,
			"title":         quiz.Title,
			"description":   quiz.Description,
			"passing_score": quiz.PassingScore,
			"max_attempts":  quiz.MaxAttempts,
			"time_limit":    quiz.TimeLimit,
		},
		"questions":      questionData,
		"attempts_count": used,
	})
}

func (cc *CoursesController) StartQuiz(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := cc.DB.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if _, err := cc.Access.CanAccessTopic(user, quiz.TopicID); err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Access denied",
			})
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	attempt, err := cc.Quiz.StartAttempt(user.ID, quiz.ID)
	if err != nil {
		if errors.Is(err, services.ErrAttemptLimitExceeded) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Maximum attempts exceeded",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to start quiz",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"attempt_id": attempt.ID,
		"message":    "Quiz started successfully",
	})
}

func (cc *CoursesController) SubmitQuiz(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	attemptID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid attempt ID")
	}

	var input struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	result, err := cc.Quiz.SubmitAttempt(uint(attemptID), user.ID, input.Answers)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return utils.NotFound(c, "Attempt not found")
		case errors.Is(err, services.ErrAccessDenied):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Access denied",
			})
		case errors.Is(err, services.ErrAlreadyCompleted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Quiz already completed",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to submit quiz",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"score":           result.Score,
		"passed":          result.Passed,
		"correct_answers": result.CorrectAnswers,
		"total_questions": result.TotalQuestions,
		"new_level":       result.Level,
		"total_points":    result.TotalPoints,
	})
}

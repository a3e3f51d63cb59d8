package routes

import (
	"medicore/backend/config"
	"medicore/backend/controllers"
	"medicore/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	authMiddleware := middleware.AuthMiddleware(db, cfg)
	adminMiddleware := middleware.AdminMiddleware()

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/signup", authController.Signup)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/logout", authController.Logout)
	app.Get("/api/auth/check-email", authController.CheckEmail)
	app.Post("/api/auth/forgot-password", authController.ForgotPassword)

	// Public site routes
	mainController := controllers.NewMainController(db, cfg)
	app.Get("/api/home", mainController.Home)
	app.Get("/api/about", mainController.About)
	app.Get("/api/news", mainController.News)
	app.Get("/api/news/:id", mainController.NewsArticle)
	app.Get("/api/faqs", mainController.FAQs)
	app.Post("/api/contact", mainController.Contact)
	app.Get("/api/search", mainController.Search)
	app.Get("/api/word-of-the-day", mainController.WordOfTheDay)
	app.Get("/api/quiz-of-the-day", mainController.QuizOfTheDay)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	user := app.Group("/api/user", authMiddleware)
	user.Get("/dashboard", userController.Dashboard)
	user.Get("/profile", userController.Profile)
	user.Get("/bookmarks", userController.Bookmarks)
	user.Get("/badges", userController.Badges)
	user.Post("/progress", userController.UpdateProgress)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.Index)
	courses.Get("/track/:track", coursesController.TrackCourses)
	courses.Get("/:id", coursesController.CourseDetail)
	courses.Get("/modules/:id", coursesController.ModuleDetail)
	courses.Get("/topics/:id", coursesController.TopicDetail)
	courses.Get("/topics/:id/flashcards", coursesController.Flashcards)
	courses.Get("/quizzes/:id", coursesController.QuizDetail)
	courses.Post("/quizzes/:id/start", coursesController.StartQuiz)
	courses.Post("/attempts/:id/submit", coursesController.SubmitQuiz)

	// Library routes
	libraryController := controllers.NewLibraryController(db, cfg)
	library := app.Group("/api/library", authMiddleware)
	library.Get("/", libraryController.Index)
	library.Get("/suggestions", libraryController.SearchSuggestions)
	library.Get("/:id", libraryController.ResourceDetail)
	library.Post("/:id/rate", libraryController.Rate)
	library.Get("/:id/download", libraryController.Download)
	library.Post("/:id/bookmark", libraryController.ToggleBookmark)

	// Pharmacology routes
	pharmacologyController := controllers.NewPharmacologyController(db, cfg)
	pharmacology := app.Group("/api/pharmacology", authMiddleware)
	pharmacology.Get("/", pharmacologyController.Index)
	pharmacology.Get("/search", pharmacologyController.Search)
	pharmacology.Get("/suggestions", pharmacologyController.SearchSuggestions)
	pharmacology.Get("/classes/:id", pharmacologyController.DrugClassDetail)
	pharmacology.Get("/drugs/:id", pharmacologyController.DrugDetail)
	pharmacology.Post("/calculators/dose", pharmacologyController.CalculateDose)
	pharmacology.Post("/calculators/drip-rate", pharmacologyController.CalculateDripRate)
	pharmacology.Post("/calculators/bmi", pharmacologyController.CalculateBMI)
	pharmacology.Post("/calculators/creatinine-clearance", pharmacologyController.CalculateCreatinineClearance)
	pharmacology.Post("/calculators/pregnancy", pharmacologyController.CalculatePregnancyDates)
	pharmacology.Post("/calculators/convert", pharmacologyController.ConvertUnits)

	// AI assistant routes
	aiController := controllers.NewAIController(db, cfg)
	ai := app.Group("/api/ai", authMiddleware)
	ai.Post("/chat", aiController.Chat)
	ai.Get("/status", aiController.Status)

	// Admin routes
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Get("/dashboard", adminController.Dashboard)
	admin.Get("/users", adminController.Users)
	admin.Post("/users", adminController.AddUser)
	admin.Get("/courses", adminController.Courses)
	admin.Post("/courses", adminController.AddCourse)
	admin.Post("/modules", adminController.AddModule)
	admin.Post("/topics", adminController.AddTopic)
	admin.Get("/resources", adminController.Resources)
	admin.Post("/resources", adminController.AddResource)
	admin.Get("/news", adminController.News)
	admin.Post("/news", adminController.AddNews)
	admin.Post("/word-of-the-day", adminController.SetWordOfTheDay)
	admin.Get("/messages", adminController.Messages)
	admin.Post("/messages/:id/read", adminController.MarkMessageRead)
	admin.Get("/faqs", adminController.FAQs)
	admin.Post("/faqs", adminController.AddFAQ)
}

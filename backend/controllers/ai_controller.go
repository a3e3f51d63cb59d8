package controllers

import (
	"strings"

	"medicore/backend/config"
	"medicore/backend/middleware"
	"medicore/backend/models"
	"medicore/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AIController answers study questions from a small canned knowledge base.
// A real model integration would slot in behind the same endpoint.
type AIController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAIController(db *gorm.DB, cfg *config.Config) *AIController {
	return &AIController{DB: db, Cfg: cfg}
}

var cannedResponses = []struct {
	Keywords []string
	Answer   string
}{
	{
		Keywords: []string{"study", "learn", "memorize"},
		Answer:   "Break topics into short sessions and review them with the flashcards attached to each topic. Spaced repetition beats cramming.",
	},
	{
		Keywords: []string{"quiz", "test", "exam"},
		Answer:   "Each quiz allows a limited number of attempts, so read the topic content first. Passing a quiz earns bonus points toward your level.",
	},
	{
		Keywords: []string{"drug", "medication", "dose", "dosage"},
		Answer:   "Check the pharmacology reference for drug classes, indications and contraindications. The dosage calculator can work out per-kg doses.",
	},
	{
		Keywords: []string{"progress", "level", "points"},
		Answer:   "You earn 10 points for completing a topic and 20 for passing a quiz. Every 100 points advances you one level.",
	},
}

const defaultAIResponse = "I can help with study tips, quizzes, drug information and your progress. Try asking about one of those, or browse the library for reference material."

type ChatInput struct {
	Message string `json:"message"`
}

func (ai *AIController) Chat(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input ChatInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return utils.BadRequest(c, "Message cannot be empty")
	}

	answer := answerFor(message)

	db := ai.DB
	userID := user.ID
	go func() {
		db.Create(&models.AIInteraction{
			UserID:          userID,
			InteractionType: "chat",
			Prompt:          message,
			Response:        answer,
		})
	}()

	return c.JSON(fiber.Map{
		"success":  true,
		"response": answer,
	})
}

func (ai *AIController) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"available": true,
		"mode":      "assistant",
	})
}

func answerFor(message string) string {
	lower := strings.ToLower(message)
	for _, r := range cannedResponses {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return r.Answer
			}
		}
	}
	return defaultAIResponse
}

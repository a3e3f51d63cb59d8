package services

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"medicore/backend/models"

	"gorm.io/gorm"
)

var (
	ErrAttemptLimitExceeded = errors.New("maximum quiz attempts exceeded")
	ErrAlreadyCompleted     = errors.New("quiz attempt already completed")
)

type QuizService struct {
	DB *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{DB: db}
}

// StartAttempt creates a new attempt row unless the user already used up the
// quiz's attempt budget. The count check happens here, at creation time, not
// at grading time. It is check-then-act; concurrent starts may slightly
// overshoot the cap, which is accepted for this feature.
func (s *QuizService) StartAttempt(userID, quizID uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.First(&quiz, quizID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.QuizAttempt{}).
			Where("user_id = ? AND quiz_id = ?", userID, quizID).
			Count(&count).Error; err != nil {
			return err
		}
		if quiz.MaxAttempts > 0 && count >= int64(quiz.MaxAttempts) {
			return ErrAttemptLimitExceeded
		}

		attempt = models.QuizAttempt{
			UserID:    userID,
			QuizID:    quizID,
			StartedAt: time.Now(),
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

type ScoreResult struct {
	Score          float64 `json:"score"`
	Passed         bool    `json:"passed"`
	CorrectAnswers int     `json:"correct_answers"`
	TotalQuestions int     `json:"total_questions"`
	TotalPoints    int     `json:"total_points"`
	Level          int     `json:"new_level"`
}

// SubmitAttempt grades the answer set against the quiz's questions and closes
// the attempt. An attempt is graded at most once; a passed attempt feeds the
// point/level update in the same transaction.
func (s *QuizService) SubmitAttempt(attemptID, userID uint, answers map[string]string) (*ScoreResult, error) {
	var result ScoreResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var attempt models.QuizAttempt
		if err := tx.First(&attempt, attemptID).Error; err != nil {
			return err
		}
		if attempt.UserID != userID {
			return ErrAccessDenied
		}
		if attempt.Completed {
			return ErrAlreadyCompleted
		}

		var quiz models.Quiz
		if err := tx.First(&quiz, attempt.QuizID).Error; err != nil {
			return err
		}
		var questions []models.QuizQuestion
		if err := tx.Where("quiz_id = ?", quiz.ID).
			Order("order_index, id").
			Find(&questions).Error; err != nil {
			return err
		}

		correct := GradeAnswers(questions, answers)
		score := 0.0
		if len(questions) > 0 {
			score = float64(correct) / float64(len(questions)) * 100
		}
		passed := score >= quiz.PassingScore

		encoded, err := json.Marshal(answers)
		if err != nil {
			return err
		}
		now := time.Now()
		attempt.Answers = string(encoded)
		attempt.Score = score
		attempt.Completed = true
		attempt.CompletedAt = &now
		attempt.TimeTaken = int(now.Sub(attempt.StartedAt).Minutes())
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if passed {
			if err := AwardPoints(tx, &user, QuizPassPoints); err != nil {
				return err
			}
		}

		result = ScoreResult{
			Score:          score,
			Passed:         passed,
			CorrectAnswers: correct,
			TotalQuestions: len(questions),
			TotalPoints:    user.TotalPoints,
			Level:          user.Level,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GradeAnswers compares submitted answers to the stored correct answers using
// case-insensitive, whitespace-trimmed equality. A missing answer counts as
// an empty string.
func GradeAnswers(questions []models.QuizQuestion, answers map[string]string) int {
	correct := 0
	for _, q := range questions {
		submitted := answers[strconv.FormatUint(uint64(q.ID), 10)]
		if strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(q.CorrectAnswer)) {
			correct++
		}
	}
	return correct
}

// AttemptsUsed reports how many attempts the user already has for a quiz.
func (s *QuizService) AttemptsUsed(userID, quizID uint) (int64, error) {
	var count int64
	err := s.DB.Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

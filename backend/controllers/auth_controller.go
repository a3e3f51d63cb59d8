package controllers

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"medicore/backend/config"
	"medicore/backend/models"
	"medicore/backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type SignupInput struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	Track           string `json:"track" validate:"required,oneof=Medical Nursing Pharmacy"`
}

func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var input SignupInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	fieldErrors := signupFieldErrors(&input)
	if input.Password != input.ConfirmPassword {
		fieldErrors = append(fieldErrors, "Passwords do not match")
	}

	if len(fieldErrors) == 0 {
		var existing models.User
		if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			fieldErrors = append(fieldErrors, "Email already registered")
		}
	}
	if len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Track:        input.Track,
		Level:        1,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, "Registration failed. Please try again.")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg, false)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Registration successful! Welcome to MediCore Library.",
		"redirect_url": "/user/dashboard",
		"token":        token,
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"track": user.Track,
		},
	})
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := validate.Struct(&input); err != nil {
		return utils.BadRequest(c, "Email and password are required")
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same message as a bad password, to avoid user enumeration
			return utils.Unauthorized(c, "Invalid email or password")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid email or password")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg, input.Remember)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	now := time.Now()
	user.LastLogin = &now
	ac.DB.Model(&user).Update("last_login", now)

	redirect := "/user/dashboard"
	if user.IsAdmin {
		redirect = "/admin/dashboard"
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "Login successful",
		"redirect_url": redirect,
		"is_admin":     user.IsAdmin,
		"token":        token,
	})
}

// Logout exists for API symmetry; tokens are stateless so the client simply
// discards its copy.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "You have been logged out successfully.",
	})
}

func (ac *AuthController) CheckEmail(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" || validate.Var(email, "email") != nil {
		return c.JSON(fiber.Map{"available": false, "message": "Invalid email format"})
	}

	var user models.User
	if err := ac.DB.Where("email = ?", email).First(&user).Error; err == nil {
		return c.JSON(fiber.Map{"available": false, "message": "Email already registered"})
	}
	return c.JSON(fiber.Map{"available": true, "message": "Email is available"})
}

// ForgotPassword always answers the same way so the response does not reveal
// whether an account exists. Mail delivery is out of scope.
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if validate.Var(strings.TrimSpace(input.Email), "required,email") != nil {
		return utils.BadRequest(c, "Please enter a valid email address")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "If an account with that email exists, password reset instructions have been sent.",
	})
}

func signupFieldErrors(input *SignupInput) []string {
	var msgs []string
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Field() {
				case "Name":
					msgs = append(msgs, "Name must be at least 2 characters long")
				case "Email":
					msgs = append(msgs, "Please enter a valid email address")
				case "Password":
					msgs = append(msgs, "Password must be at least 6 characters long")
				case "ConfirmPassword":
					msgs = append(msgs, "Password confirmation is required")
				case "Track":
					msgs = append(msgs, "Please select a valid track")
				}
			}
		} else {
			msgs = append(msgs, "Invalid input")
		}
	}
	if input.Password != "" {
		if !containsLetter(input.Password) {
			msgs = append(msgs, "Password must contain at least one letter")
		}
		if !containsDigit(input.Password) {
			msgs = append(msgs, "Password must contain at least one number")
		}
	}
	return msgs
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

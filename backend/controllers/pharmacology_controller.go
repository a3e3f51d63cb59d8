package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"medicore/backend/config"
	"medicore/backend/models"
	"medicore/backend/services"
	"medicore/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PharmacologyController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPharmacologyController(db *gorm.DB, cfg *config.Config) *PharmacologyController {
	return &PharmacologyController{DB: db, Cfg: cfg}
}

func (pc *PharmacologyController) Index(c *fiber.Ctx) error {
	var classes []models.DrugClass
	if err := pc.DB.Order("name, id").Find(&classes).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	var drugCount int64
	pc.DB.Model(&models.Drug{}).Count(&drugCount)

	return c.JSON(fiber.Map{
		"drug_classes": classes,
		"total_drugs":  drugCount,
	})
}

func (pc *PharmacologyController) DrugClassDetail(c *fiber.Ctx) error {
	classID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid drug class ID")
	}

	var class models.DrugClass
	if err := pc.DB.Preload("Drugs", func(db *gorm.DB) *gorm.DB {
		return db.Order("name, id")
	}).First(&class, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Drug class not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	return c.JSON(fiber.Map{"drug_class": class})
}

func (pc *PharmacologyController) DrugDetail(c *fiber.Ctx) error {
	drugID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid drug ID")
	}

	var drug models.Drug
	if err := pc.DB.Preload("DrugClass").First(&drug, drugID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Drug not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var related []models.Drug
	pc.DB.Where("drug_class_id = ? AND id != ?", drug.DrugClassID, drug.ID).
		Order("name, id").
		Limit(5).
		Find(&related)

	return c.JSON(fiber.Map{
		"drug":    drug,
		"related": related,
	})
}

func (pc *PharmacologyController) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.JSON(fiber.Map{"drugs": []models.Drug{}, "drug_classes": []models.DrugClass{}})
	}
	like := "%" + query + "%"

	var drugs []models.Drug
	pc.DB.Preload("DrugClass").
		Where("name LIKE ? OR generic_name LIKE ? OR brand_names LIKE ?", like, like, like).
		Order("name, id").
		Limit(20).
		Find(&drugs)

	var classes []models.DrugClass
	pc.DB.Where("name LIKE ?", like).
		Order("name, id").
		Limit(10).
		Find(&classes)

	return c.JSON(fiber.Map{
		"drugs":        drugs,
		"drug_classes": classes,
	})
}

func (pc *PharmacologyController) SearchSuggestions(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		return c.JSON([]fiber.Map{})
	}
	like := "%" + query + "%"

	suggestions := []fiber.Map{}

	var drugs []models.Drug
	pc.DB.Where("name LIKE ? OR generic_name LIKE ?", like, like).
		Limit(5).
		Find(&drugs)
	for _, d := range drugs {
		suggestions = append(suggestions, fiber.Map{
			"type": "drug",
			"text": d.Name,
			"id":   d.ID,
		})
	}

	var classes []models.DrugClass
	pc.DB.Where("name LIKE ?", like).
		Limit(3).
		Find(&classes)
	for _, cls := range classes {
		suggestions = append(suggestions, fiber.Map{
			"type": "class",
			"text": cls.Name,
			"id":   cls.ID,
		})
	}

	return c.JSON(suggestions)
}

type DoseInput struct {
	Weight    float64 `json:"weight"`
	DosePerKg float64 `json:"dose_per_kg"`
	Frequency int     `json:"frequency"`
}

func (pc *PharmacologyController) CalculateDose(c *fiber.Ctx) error {
	var input DoseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	result, err := services.CalculateDose(input.Weight, input.DosePerKg, input.Frequency)
	if err != nil {
		return utils.BadRequest(c, "Please enter valid positive values")
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

type DripInput struct {
	Volume     float64 `json:"volume"`
	TimeHours  float64 `json:"time_hours"`
	DropFactor int     `json:"drop_factor"`
}

func (pc *PharmacologyController) CalculateDripRate(c *fiber.Ctx) error {
	var input DripInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	result, err := services.CalculateDripRate(input.Volume, input.TimeHours, input.DropFactor)
	if err != nil {
		return utils.BadRequest(c, "Please enter valid positive values")
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

type BMIInput struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

func (pc *PharmacologyController) CalculateBMI(c *fiber.Ctx) error {
	var input BMIInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	result, err := services.CalculateBMI(input.Weight, input.Height)
	if err != nil {
		return utils.BadRequest(c, "Please enter valid positive values")
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

type CreatinineInput struct {
	Age        int     `json:"age"`
	Weight     float64 `json:"weight"`
	Creatinine float64 `json:"creatinine"`
	Gender     string  `json:"gender"`
}

func (pc *PharmacologyController) CalculateCreatinineClearance(c *fiber.Ctx) error {
	var input CreatinineInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	female := strings.EqualFold(input.Gender, "female")
	result, err := services.CreatinineClearance(input.Age, input.Weight, input.Creatinine, female)
	if err != nil {
		return utils.BadRequest(c, "Please enter valid positive values")
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

type PregnancyInput struct {
	LastPeriod string `json:"last_period"`
}

func (pc *PharmacologyController) CalculatePregnancyDates(c *fiber.Ctx) error {
	var input PregnancyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	lmp, err := time.Parse("2006-01-02", input.LastPeriod)
	if err != nil {
		return utils.BadRequest(c, "Please enter a valid date (YYYY-MM-DD)")
	}
	result, err := services.PregnancyDates(lmp, time.Now())
	if err != nil {
		return utils.BadRequest(c, "Last period date cannot be in the future")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"result": fiber.Map{
			"due_date":            result.DueDate.Format("2006-01-02"),
			"weeks_pregnant":      result.WeeksPregnant,
			"days_pregnant_extra": result.ExtraDays,
			"total_days":          result.TotalDays,
			"trimester":           result.Trimester,
		},
	})
}

type ConversionInput struct {
	Value          float64 `json:"value"`
	ConversionType string  `json:"conversion_type"`
}

func (pc *PharmacologyController) ConvertUnits(c *fiber.Ctx) error {
	var input ConversionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	result, err := services.ConvertUnit(input.Value, input.ConversionType)
	if err != nil {
		return utils.BadRequest(c, "Unknown conversion type")
	}
	return c.JSON(fiber.Map{"success": true, "result": result})
}

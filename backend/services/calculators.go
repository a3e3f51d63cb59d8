package services

import (
	"errors"
	"math"
	"time"
)

// Clinical calculators from the pharmacology reference section. All inputs
// are validated by the caller for presence; these functions reject
// non-positive values where the formula requires them.

var ErrInvalidCalculatorInput = errors.New("invalid calculator input")

type DoseResult struct {
	SingleDose float64 `json:"single_dose"`
	DailyDose  float64 `json:"daily_dose"`
}

func CalculateDose(weightKg, dosePerKg float64, frequency int) (*DoseResult, error) {
	if weightKg <= 0 || dosePerKg <= 0 || frequency <= 0 {
		return nil, ErrInvalidCalculatorInput
	}
	single := weightKg * dosePerKg
	return &DoseResult{
		SingleDose: round2(single),
		DailyDose:  round2(single * float64(frequency)),
	}, nil
}

type DripResult struct {
	MlPerHour      float64 `json:"ml_per_hour"`
	MlPerMinute    float64 `json:"ml_per_minute"`
	DropsPerMinute float64 `json:"drops_per_minute"`
}

func CalculateDripRate(volumeMl, timeHours float64, dropFactor int) (*DripResult, error) {
	if volumeMl <= 0 || timeHours <= 0 || dropFactor <= 0 {
		return nil, ErrInvalidCalculatorInput
	}
	perHour := volumeMl / timeHours
	perMinute := perHour / 60
	return &DripResult{
		MlPerHour:      math.Round(perHour*10) / 10,
		MlPerMinute:    round2(perMinute),
		DropsPerMinute: math.Round(perMinute * float64(dropFactor)),
	}, nil
}

type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

func CalculateBMI(weightKg, heightCm float64) (*BMIResult, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return nil, ErrInvalidCalculatorInput
	}
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)

	category := "Obese"
	switch {
	case bmi < 18.5:
		category = "Underweight"
	case bmi < 25:
		category = "Normal weight"
	case bmi < 30:
		category = "Overweight"
	}

	return &BMIResult{BMI: math.Round(bmi*10) / 10, Category: category}, nil
}

type CreatinineResult struct {
	Clearance float64 `json:"creatinine_clearance"`
	Category  string  `json:"category"`
}

// CreatinineClearance estimates kidney function with the Cockcroft-Gault
// equation, scaled by 0.85 for female patients.
func CreatinineClearance(age int, weightKg, serumCreatinine float64, female bool) (*CreatinineResult, error) {
	if age <= 0 || weightKg <= 0 || serumCreatinine <= 0 {
		return nil, ErrInvalidCalculatorInput
	}
	clearance := (float64(140-age) * weightKg) / (72 * serumCreatinine)
	if female {
		clearance *= 0.85
	}

	category := "Kidney failure"
	switch {
	case clearance >= 90:
		category = "Normal kidney function"
	case clearance >= 60:
		category = "Mild decrease in kidney function"
	case clearance >= 30:
		category = "Moderate decrease in kidney function"
	case clearance >= 15:
		category = "Severe decrease in kidney function"
	}

	return &CreatinineResult{
		Clearance: math.Round(clearance*10) / 10,
		Category:  category,
	}, nil
}

type PregnancyResult struct {
	DueDate       time.Time `json:"due_date"`
	WeeksPregnant int       `json:"weeks_pregnant"`
	ExtraDays     int       `json:"days_pregnant_extra"`
	TotalDays     int       `json:"total_days"`
	Trimester     string    `json:"trimester"`
}

// PregnancyDates derives the due date (280 days from the last menstrual
// period) and the current gestational age relative to today.
func PregnancyDates(lmp, today time.Time) (*PregnancyResult, error) {
	if lmp.After(today) {
		return nil, ErrInvalidCalculatorInput
	}
	totalDays := int(today.Sub(lmp).Hours() / 24)
	weeks := totalDays / 7

	trimester := "Third trimester"
	switch {
	case weeks <= 12:
		trimester = "First trimester"
	case weeks <= 26:
		trimester = "Second trimester"
	}

	return &PregnancyResult{
		DueDate:       lmp.AddDate(0, 0, 280),
		WeeksPregnant: weeks,
		ExtraDays:     totalDays % 7,
		TotalDays:     totalDays,
		Trimester:     trimester,
	}, nil
}

type UnitConversion struct {
	Factor   float64
	FromUnit string
	ToUnit   string
}

var unitConversions = map[string]UnitConversion{
	"weight_kg_to_lb":  {2.20462, "kg", "lb"},
	"weight_lb_to_kg":  {0.453592, "lb", "kg"},
	"weight_g_to_mg":   {1000, "g", "mg"},
	"weight_mg_to_g":   {0.001, "mg", "g"},
	"weight_g_to_mcg":  {1000000, "g", "mcg"},
	"weight_mcg_to_g":  {0.000001, "mcg", "g"},
	"volume_l_to_ml":   {1000, "L", "mL"},
	"volume_ml_to_l":   {0.001, "mL", "L"},
	"volume_ml_to_cc":  {1, "mL", "cc"},
	"volume_cc_to_ml":  {1, "cc", "mL"},
	"volume_tsp_to_ml": {4.92892, "tsp", "mL"},
	"volume_ml_to_tsp": {0.202884, "mL", "tsp"},
}

type ConversionResult struct {
	OriginalValue  float64 `json:"original_value"`
	ConvertedValue float64 `json:"converted_value"`
	FromUnit       string  `json:"from_unit"`
	ToUnit         string  `json:"to_unit"`
}

func ConvertUnit(value float64, conversionType string) (*ConversionResult, error) {
	switch conversionType {
	case "temperature_to_f":
		return &ConversionResult{
			OriginalValue:  value,
			ConvertedValue: round6(value*9/5 + 32),
			FromUnit:       "°C",
			ToUnit:         "°F",
		}, nil
	case "temperature_to_c":
		return &ConversionResult{
			OriginalValue:  value,
			ConvertedValue: round6((value - 32) * 5 / 9),
			FromUnit:       "°F",
			ToUnit:         "°C",
		}, nil
	}

	conv, ok := unitConversions[conversionType]
	if !ok {
		return nil, ErrInvalidCalculatorInput
	}
	return &ConversionResult{
		OriginalValue:  value,
		ConvertedValue: round6(value * conv.Factor),
		FromUnit:       conv.FromUnit,
		ToUnit:         conv.ToUnit,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round6(v float64) float64 {
	return math.Round(v*1000000) / 1000000
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDose(t *testing.T) {
	result, err := CalculateDose(70, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, 350.0, result.SingleDose)
	assert.Equal(t, 1050.0, result.DailyDose)

	_, err = CalculateDose(0, 5, 3)
	assert.ErrorIs(t, err, ErrInvalidCalculatorInput)
	_, err = CalculateDose(70, -1, 3)
	assert.ErrorIs(t, err, ErrInvalidCalculatorInput)
	_, err = CalculateDose(70, 5, 0)
	assert.ErrorIs(t, err, ErrInvalidCalculatorInput)
}

func TestCalculateDripRate(t *testing.T) {
	result, err := CalculateDripRate(1000, 8, 20)
	require.NoError(t, err)
	assert.Equal(t, 125.0, result.MlPerHour)
	assert.Equal(t, 2.08, result.MlPerMinute)
	assert.Equal(t, 42.0, result.DropsPerMinute)

	_, err = CalculateDripRate(1000, 0, 20)
	assert.ErrorIs(t, err, ErrInvalidCalculatorInput)
}

func TestCalculateBMICategories(t *testing.T) {
	cases := []struct {
		weight   float64
		height   float64
		category string
	}{
		{50, 170, "Underweight"},
		{65, 170, "Normal weight"},
		{80, 170, "Overweight"},
		{95, 170, "Obese"},
	}
	for _, tc := range cases {
		result, err := CalculateBMI(tc.weight, tc.height)
		require.NoError(t, err)
		assert.Equal(t, tc.category, result.Category, "weight=%v", tc.weight)
	}

	_, err := CalculateBMI(70, 0)
	assert.ErrorIs(t, err, ErrInvalidCalculatorInput)
}

func TestCreatinineClearance(t *testing.T) {
	male, err := CreatinineClearance(40, 72, 1.0, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, male.Clearance)
	assert.Equal(t, "Normal kidney function", male.Category)

	female, err := CreatinineClearance(40, 72, 1.0, true)
	require.NoError(t, err)
	assert.Equal(t, 85.0, female.Clearance)
	assert.Equal(t, "Mild decrease in kidney function", female.Category)

	_, err = CreatinineClearance(0, 72, 1.0, false)
	assert.ErrorIs(t, err, ErrInvalidCalculatorInput)
}

func TestPregnancyDates(t *testing.T) {
	today := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	lmp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	result, err := PregnancyDates(lmp, today)
	require.NoError(t, err)
	assert.Equal(t, lmp.AddDate(0, 0, 280), result.DueDate)
	assert.Equal(t, 73, result.TotalDays)
	assert.Equal(t, 10, result.WeeksPregnant)
	assert.Equal(t, 3, result.ExtraDays)
	assert.Equal(t, "First trimester", result.Trimester)

	_, err = PregnancyDates(today.AddDate(0, 0, 1), today)
	assert.ErrorIs(t, err, ErrInvalidCalculatorInput)
}

func TestPregnancyTrimesters(t *testing.T) {
	today := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	second, err := PregnancyDates(today.AddDate(0, 0, -7*20), today)
	require.NoError(t, err)
	assert.Equal(t, "Second trimester", second.Trimester)

	third, err := PregnancyDates(today.AddDate(0, 0, -7*30), today)
	require.NoError(t, err)
	assert.Equal(t, "Third trimester", third.Trimester)
}

func TestConvertUnit(t *testing.T) {
	kg, err := ConvertUnit(10, "weight_kg_to_lb")
	require.NoError(t, err)
	assert.InDelta(t, 22.0462, kg.ConvertedValue, 0.0001)
	assert.Equal(t, "kg", kg.FromUnit)
	assert.Equal(t, "lb", kg.ToUnit)

	ml, err := ConvertUnit(2, "volume_l_to_ml")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, ml.ConvertedValue)

	f, err := ConvertUnit(100, "temperature_to_f")
	require.NoError(t, err)
	assert.Equal(t, 212.0, f.ConvertedValue)

	c, err := ConvertUnit(32, "temperature_to_c")
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.ConvertedValue)

	_, err = ConvertUnit(1, "weight_stone_to_kg")
	assert.ErrorIs(t, err, ErrInvalidCalculatorInput)
}

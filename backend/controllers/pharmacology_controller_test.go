package controllers_test

import (
	"net/http"
	"testing"

	"medicore/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorEndpoints(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "pharm@example.com", models.TrackPharmacy, false)

	resp, body := doRequest(t, app, http.MethodPost, "/api/pharmacology/calculators/dose", token,
		map[string]interface{}{"weight": 70, "dose_per_kg": 5, "frequency": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := body["result"].(map[string]interface{})
	assert.Equal(t, 350.0, result["single_dose"])
	assert.Equal(t, 1050.0, result["daily_dose"])

	resp, body = doRequest(t, app, http.MethodPost, "/api/pharmacology/calculators/bmi", token,
		map[string]interface{}{"weight": 65, "height": 170})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result = body["result"].(map[string]interface{})
	assert.Equal(t, "Normal weight", result["category"])

	resp, body = doRequest(t, app, http.MethodPost, "/api/pharmacology/calculators/convert", token,
		map[string]interface{}{"value": 100, "conversion_type": "temperature_to_f"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result = body["result"].(map[string]interface{})
	assert.Equal(t, 212.0, result["converted_value"])
}

func TestCalculatorRejectsBadInput(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "pharm@example.com", models.TrackPharmacy, false)

	resp, _ := doRequest(t, app, http.MethodPost, "/api/pharmacology/calculators/dose", token,
		map[string]interface{}{"weight": -70, "dose_per_kg": 5, "frequency": 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, "/api/pharmacology/calculators/convert", token,
		map[string]interface{}{"value": 1, "conversion_type": "weight_stone_to_kg"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDrugReferenceEndpoints(t *testing.T) {
	app, db, cfg := newTestApp(t)
	_, token := createUser(t, db, cfg, "pharm@example.com", models.TrackPharmacy, false)

	class := models.DrugClass{Name: "Beta Blockers", Description: "Cardio"}
	require.NoError(t, db.Create(&class).Error)
	drug := models.Drug{DrugClassID: class.ID, Name: "Metoprolol", GenericName: "metoprolol tartrate"}
	require.NoError(t, db.Create(&drug).Error)

	resp, body := doRequest(t, app, http.MethodGet, "/api/pharmacology/", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, body["total_drugs"])

	resp, body = doRequest(t, app, http.MethodGet, "/api/pharmacology/search?q=metoprolol", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	drugs := body["drugs"].([]interface{})
	require.Len(t, drugs, 1)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/pharmacology/drugs/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

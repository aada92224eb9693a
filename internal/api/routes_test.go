package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/RMahshie/sonoreport/internal/growth"
	"github.com/RMahshie/sonoreport/internal/reference"
	"github.com/RMahshie/sonoreport/pkg/models"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) humatest.TestAPI {
	store := growth.Intergrowth21st()
	_, api := humatest.New(t)
	RegisterRoutes(api, growth.NewClassifier(store), store)
	return api
}

func TestClassifyRoute(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/biometry/classify", map[string]any{
		"measurement_type":      "hc",
		"value_mm":              178.5,
		"gestational_age_weeks": 20.5,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body models.Classification
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "~P50", body.Label)
	require.NotNil(t, body.Percentile)
	assert.Equal(t, 50, *body.Percentile)
}

func TestClassifyRoute_FailureIsNotHTTPError(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/biometry/classify", map[string]any{
		"measurement_type":      "hc",
		"value_mm":              -1,
		"gestational_age_weeks": 20,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body models.Classification
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "invalid-input", body.Status)
	assert.Equal(t, "Invalid Input", body.Label)
}

func TestClassifyRoute_SchemaViolation(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/biometry/classify", map[string]any{
		"value_mm": 170,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestAssessRoute(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/biometry/assess", map[string]any{
		"gestational_age_weeks": 20,
		"measurements": map[string]float64{
			"hc": 172.5, "bpd": 48.4, "ac": 147.7, "fl": 31.3,
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var body models.AssessResponseBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "20w0d", body.GestationalAge)
	assert.Len(t, body.Classifications, 4)
	require.NotNil(t, body.EstimatedFetalWeight)

	resp = api.Post("/api/biometry/assess", map[string]any{
		"measurements": map[string]float64{"hc": 172.5},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestChartRoutes(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Get("/api/charts")
	require.Equal(t, http.StatusOK, resp.Code)
	var list models.ListChartsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list.Body))
	assert.Len(t, list.Body.Charts, 4)

	resp = api.Get("/api/charts/bpd")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/charts/hl")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Get("/api/charts/export")
	require.Equal(t, http.StatusOK, resp.Code)
	store, err := reference.Decode(resp.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, growth.Intergrowth21stVersion, store.Version())
}

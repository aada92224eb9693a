package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/RMahshie/sonoreport/internal/growth"
	"github.com/RMahshie/sonoreport/internal/obstetric"
	"github.com/RMahshie/sonoreport/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClassifier implements PercentileClassifier for testing
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(measurementType string, value, gaWeeks float64) growth.Result {
	args := m.Called(measurementType, value, gaWeeks)
	return args.Get(0).(growth.Result)
}

func newTestBiometryHandler() *BiometryHandler {
	h := NewBiometryHandler(growth.NewClassifier(growth.Intergrowth21st()))
	h.now = func() time.Time { return time.Date(2026, 7, 22, 15, 30, 0, 0, time.UTC) }
	return h
}

func classifyRequest(mt string, value, ga float64) *models.ClassifyRequest {
	req := &models.ClassifyRequest{}
	req.Body.MeasurementType = mt
	req.Body.ValueMM = value
	req.Body.GestationalAgeWeeks = ga
	return req
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		mt             string
		value          float64
		ga             float64
		wantStatus     string
		wantLabel      string
		wantBand       string
		wantPercentile *int
	}{
		{
			name:           "midpoint between weeks",
			mt:             "hc",
			value:          178.5,
			ga:             20.5,
			wantStatus:     "ok",
			wantLabel:      "~P50",
			wantBand:       "p10-p50",
			wantPercentile: intPtr(50),
		},
		{
			name:       "below third percentile",
			mt:         "HC",
			value:      150,
			ga:         20,
			wantStatus: "ok",
			wantLabel:  "< P3",
			wantBand:   "below-p3",
		},
		{
			name:       "between p95 and p97",
			mt:         "hc",
			value:      185.5,
			ga:         20,
			wantStatus: "ok",
			wantLabel:  "P95-P97",
			wantBand:   "p95-p97",
		},
		{
			name:       "age beyond chart",
			mt:         "hc",
			value:      330,
			ga:         41,
			wantStatus: "out-of-range",
			wantLabel:  "Out of Range",
			wantBand:   "none",
		},
		{
			name:       "age below domain",
			mt:         "hc",
			value:      80,
			ga:         13,
			wantStatus: "invalid-input",
			wantLabel:  "Invalid Input",
			wantBand:   "none",
		},
		{
			name:       "no chart for humerus",
			mt:         "hl",
			value:      31,
			ga:         20,
			wantStatus: "no-data",
			wantLabel:  "No Data",
			wantBand:   "none",
		},
	}

	handler := newTestBiometryHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handler.Classify(context.Background(), classifyRequest(tt.mt, tt.value, tt.ga))

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, growth.NormalizeType(tt.mt), resp.Body.MeasurementType)
			assert.Equal(t, tt.wantStatus, resp.Body.Status)
			assert.Equal(t, tt.wantLabel, resp.Body.Label)
			assert.Equal(t, tt.wantBand, resp.Body.Band)
			assert.Equal(t, tt.wantPercentile, resp.Body.Percentile)
			if tt.wantStatus != "ok" {
				assert.NotEmpty(t, resp.Body.Detail)
			}
		})
	}
}

func TestClassify_UsesInjectedClassifier(t *testing.T) {
	mockClassifier := &MockClassifier{}
	mockClassifier.On("Classify", "ac", 160.0, 21.0).Return(growth.Result{
		Status: growth.StatusError,
		Label:  "Error",
		Detail: "boom",
	})

	handler := NewBiometryHandler(mockClassifier)
	resp, err := handler.Classify(context.Background(), classifyRequest("ac", 160, 21))

	require.NoError(t, err)
	assert.Equal(t, "error", resp.Body.Status)
	assert.Equal(t, "Error", resp.Body.Label)
	assert.Nil(t, resp.Body.Percentile)
	mockClassifier.AssertExpectations(t)
}

func TestAssess_WithGestationalAge(t *testing.T) {
	handler := newTestBiometryHandler()

	req := &models.AssessRequest{}
	req.Body.GestationalAgeWeeks = floatPtr(20)
	req.Body.Measurements = map[string]float64{
		"hc":  172.5,
		"bpd": 48.4,
		"AC":  147.7,
		"fl":  31.3,
		"hl":  31.0,
	}

	resp, err := handler.Assess(context.Background(), req)
	require.NoError(t, err)

	body := resp.Body
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, 20.0, body.GestationalAgeWeeks)
	assert.Equal(t, "20w0d", body.GestationalAge)
	assert.Empty(t, body.DueDate)

	require.Len(t, body.Classifications, 5)
	types := make([]string, 0, len(body.Classifications))
	for _, c := range body.Classifications {
		types = append(types, c.MeasurementType)
	}
	assert.Equal(t, []string{"ac", "bpd", "fl", "hc", "hl"}, types)

	for _, c := range body.Classifications[:4] {
		assert.Equal(t, "ok", c.Status, c.MeasurementType)
		assert.Equal(t, "~P50", c.Label, c.MeasurementType)
	}
	assert.Equal(t, "no-data", body.Classifications[4].Status)

	require.NotNil(t, body.EstimatedFetalWeight)
	assert.Equal(t, obstetric.FormulaHadlockBPDHCACFL, body.EstimatedFetalWeight.Formula)
	assert.InDelta(t, 321, body.EstimatedFetalWeight.Grams, 1)
}

func TestAssess_DatesFromLMP(t *testing.T) {
	handler := newTestBiometryHandler()

	tests := []struct {
		name     string
		examDate string
		wantGA   string
	}{
		{name: "explicit exam date", examDate: "2026-07-22", wantGA: "20w3d"},
		{name: "exam date defaults to today", examDate: "", wantGA: "20w3d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.AssessRequest{}
			req.Body.LMP = "2026-03-01"
			req.Body.ExamDate = tt.examDate
			req.Body.Measurements = map[string]float64{"hc": 176}

			resp, err := handler.Assess(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantGA, resp.Body.GestationalAge)
			assert.InDelta(t, 143.0/7, resp.Body.GestationalAgeWeeks, 1e-9)
			assert.Equal(t, "2026-12-06", resp.Body.DueDate)
			require.Len(t, resp.Body.Classifications, 1)
			assert.Equal(t, "ok", resp.Body.Classifications[0].Status)
			assert.Nil(t, resp.Body.EstimatedFetalWeight)
		})
	}
}

func TestAssess_ExplicitAgeWinsOverLMP(t *testing.T) {
	handler := newTestBiometryHandler()

	req := &models.AssessRequest{}
	req.Body.GestationalAgeWeeks = floatPtr(22)
	req.Body.LMP = "2026-03-01"
	req.Body.Measurements = map[string]float64{"fl": 36.7}

	resp, err := handler.Assess(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 22.0, resp.Body.GestationalAgeWeeks)
	assert.Equal(t, "2026-12-06", resp.Body.DueDate)
	assert.Equal(t, "~P50", resp.Body.Classifications[0].Label)
}

func TestAssess_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*models.AssessRequest)
	}{
		{
			name:  "no measurements",
			setup: func(r *models.AssessRequest) { r.Body.GestationalAgeWeeks = floatPtr(20) },
		},
		{
			name: "no dating information",
			setup: func(r *models.AssessRequest) {
				r.Body.Measurements = map[string]float64{"hc": 170}
			},
		},
		{
			name: "exam before lmp",
			setup: func(r *models.AssessRequest) {
				r.Body.LMP = "2026-08-01"
				r.Body.ExamDate = "2026-07-22"
				r.Body.Measurements = map[string]float64{"hc": 170}
			},
		},
		{
			name: "malformed lmp",
			setup: func(r *models.AssessRequest) {
				r.Body.LMP = "03/01/2026"
				r.Body.Measurements = map[string]float64{"hc": 170}
			},
		},
	}

	handler := newTestBiometryHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.AssessRequest{}
			tt.setup(req)

			resp, err := handler.Assess(context.Background(), req)

			require.Error(t, err)
			assert.Nil(t, resp)
			var statusErr huma.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, 400, statusErr.GetStatus())
		})
	}
}

func TestAssess_SkipsWeightWithoutFullBiometry(t *testing.T) {
	assert.Nil(t, estimateWeight(map[string]float64{"hc": 172.5, "ac": 147.7}))
	assert.Nil(t, estimateWeight(map[string]float64{"hc": 172.5, "ac": 147.7, "fl": -3}))

	efw := estimateWeight(map[string]float64{"HC": 333.9, "ac": 349.8, "fl": 72.1})
	require.NotNil(t, efw)
	assert.Equal(t, obstetric.FormulaHadlockHCACFL, efw.Formula)
	assert.InDelta(t, 3407, efw.Grams, 2)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

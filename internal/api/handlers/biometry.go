package handlers

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/RMahshie/sonoreport/internal/growth"
	"github.com/RMahshie/sonoreport/internal/obstetric"
	"github.com/RMahshie/sonoreport/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PercentileClassifier classifies one measurement against reference charts
type PercentileClassifier interface {
	Classify(measurementType string, value, gaWeeks float64) growth.Result
}

// BiometryHandler handles fetal biometry classification requests
type BiometryHandler struct {
	classifier PercentileClassifier
	now        func() time.Time
}

// NewBiometryHandler creates a new biometry handler
func NewBiometryHandler(classifier PercentileClassifier) *BiometryHandler {
	return &BiometryHandler{
		classifier: classifier,
		now:        time.Now,
	}
}

// Classify classifies a single measurement. Classification failures are
// returned in the body, not as HTTP errors.
func (h *BiometryHandler) Classify(ctx context.Context, req *models.ClassifyRequest) (*models.ClassifyResponse, error) {
	c := h.classify(req.Body.MeasurementType, req.Body.ValueMM, req.Body.GestationalAgeWeeks)

	log.Info().
		Str("measurementType", c.MeasurementType).
		Float64("gaWeeks", c.GestationalAgeWeeks).
		Str("status", c.Status).
		Str("label", c.Label).
		Msg("Measurement classified")

	return &models.ClassifyResponse{Body: c}, nil
}

// Assess classifies every measurement of one exam and adds the dating
// values and Hadlock weight estimate shown on the report
func (h *BiometryHandler) Assess(ctx context.Context, req *models.AssessRequest) (*models.AssessResponse, error) {
	if len(req.Body.Measurements) == 0 {
		return nil, huma.Error400BadRequest("At least one measurement is required", nil)
	}

	body := models.AssessResponseBody{ID: uuid.New().String()}

	if req.Body.LMP != "" {
		lmp, err := time.Parse(time.DateOnly, req.Body.LMP)
		if err != nil {
			return nil, huma.Error400BadRequest("Invalid lmp date", err)
		}
		body.DueDate = obstetric.DueDateFromLMP(lmp).Format(time.DateOnly)

		if req.Body.GestationalAgeWeeks == nil {
			exam := h.now()
			if req.Body.ExamDate != "" {
				exam, err = time.Parse(time.DateOnly, req.Body.ExamDate)
				if err != nil {
					return nil, huma.Error400BadRequest("Invalid exam date", err)
				}
			}
			ga, err := obstetric.GestationalAgeFromLMP(lmp, exam)
			if err != nil {
				return nil, huma.Error400BadRequest("Cannot derive gestational age from lmp", err)
			}
			body.GestationalAgeWeeks = ga
		}
	}

	switch {
	case req.Body.GestationalAgeWeeks != nil:
		body.GestationalAgeWeeks = *req.Body.GestationalAgeWeeks
	case req.Body.LMP == "":
		return nil, huma.Error400BadRequest("Either gestational_age_weeks or lmp is required", nil)
	}
	body.GestationalAge = obstetric.FormatGA(body.GestationalAgeWeeks)

	types := make([]string, 0, len(req.Body.Measurements))
	for mt := range req.Body.Measurements {
		types = append(types, mt)
	}
	sort.Strings(types)

	body.Classifications = make([]models.Classification, 0, len(types))
	for _, mt := range types {
		body.Classifications = append(body.Classifications,
			h.classify(mt, req.Body.Measurements[mt], body.GestationalAgeWeeks))
	}

	if efw := estimateWeight(req.Body.Measurements); efw != nil {
		body.EstimatedFetalWeight = efw
	}

	log.Info().
		Str("assessmentID", body.ID).
		Float64("gaWeeks", body.GestationalAgeWeeks).
		Int("measurements", len(types)).
		Bool("efw", body.EstimatedFetalWeight != nil).
		Msg("Biometry assessment completed")

	return &models.AssessResponse{Body: body}, nil
}

func (h *BiometryHandler) classify(measurementType string, value, gaWeeks float64) models.Classification {
	res := h.classifier.Classify(measurementType, value, gaWeeks)

	c := models.Classification{
		MeasurementType:     growth.NormalizeType(measurementType),
		ValueMM:             value,
		GestationalAgeWeeks: gaWeeks,
		Status:              string(res.Status),
		Label:               res.Label,
		Band:                res.Band.String(),
		Detail:              res.Detail,
	}
	if res.OK() && res.Percentile > 0 {
		p := res.Percentile
		c.Percentile = &p
	}
	return c
}

// estimateWeight returns nil unless hc, ac and fl were all measured
func estimateWeight(m map[string]float64) *models.EstimatedFetalWeight {
	lookup := make(map[string]float64, len(m))
	for k, v := range m {
		lookup[growth.NormalizeType(k)] = v
	}

	b := obstetric.Biometry{BPD: lookup["bpd"], HC: lookup["hc"], AC: lookup["ac"], FL: lookup["fl"]}
	if b.HC == 0 || b.AC == 0 || b.FL == 0 {
		return nil
	}
	efw, err := obstetric.HadlockEFW(b)
	if err != nil {
		log.Warn().Err(err).Msg("Skipping fetal weight estimate")
		return nil
	}
	return &models.EstimatedFetalWeight{
		Grams:   int(math.Round(efw.Grams)),
		Formula: efw.Formula,
	}
}

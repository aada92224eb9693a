package models

// ClassifyRequest represents a single biometry classification request
type ClassifyRequest struct {
	Body struct {
		MeasurementType     string  `json:"measurement_type" minLength:"1" maxLength:"16" required:"true" doc:"Measurement key (hc, bpd, ac, fl, ...)"`
		ValueMM             float64 `json:"value_mm" required:"true" doc:"Measured value in millimetres"`
		GestationalAgeWeeks float64 `json:"gestational_age_weeks" required:"true" doc:"Gestational age in decimal weeks"`
	}
}

// Classification is one measurement's percentile classification. Failures
// are reported through Status rather than HTTP errors.
type Classification struct {
	MeasurementType     string  `json:"measurement_type" doc:"Measurement key"`
	ValueMM             float64 `json:"value_mm" doc:"Measured value in millimetres"`
	GestationalAgeWeeks float64 `json:"gestational_age_weeks" doc:"Gestational age in decimal weeks"`
	Status              string  `json:"status" enum:"ok,invalid-input,no-data,out-of-range,data-error,calc-error,error" doc:"Classification outcome"`
	Label               string  `json:"label" example:"~P42" doc:"Display label for the report"`
	Band                string  `json:"band" doc:"Machine-readable band"`
	Percentile          *int    `json:"percentile,omitempty" doc:"Point estimate between P10 and P90"`
	Detail              string  `json:"detail,omitempty" doc:"Reason for a failed classification"`
}

// ClassifyResponse represents a single classification result
type ClassifyResponse struct {
	Body Classification
}

// AssessRequest represents a full obstetric biometry assessment for one exam
type AssessRequest struct {
	Body struct {
		GestationalAgeWeeks *float64           `json:"gestational_age_weeks,omitempty" doc:"Gestational age in decimal weeks; derived from lmp when omitted"`
		LMP                 string             `json:"lmp,omitempty" format:"date" doc:"Last menstrual period (YYYY-MM-DD)"`
		ExamDate            string             `json:"exam_date,omitempty" format:"date" doc:"Exam date (YYYY-MM-DD), defaults to today"`
		Measurements        map[string]float64 `json:"measurements" required:"true" doc:"Measurements in millimetres keyed by type"`
	}
}

// EstimatedFetalWeight is the Hadlock weight estimate
type EstimatedFetalWeight struct {
	Grams   int    `json:"grams" doc:"Estimated fetal weight in grams"`
	Formula string `json:"formula" doc:"Hadlock formula variant"`
}

// AssessResponseBody is the body of the assessment response
type AssessResponseBody struct {
	ID                   string                `json:"id" doc:"Assessment identifier"`
	GestationalAgeWeeks  float64               `json:"gestational_age_weeks" doc:"Gestational age used for classification"`
	GestationalAge       string                `json:"gestational_age" example:"20w3d" doc:"Gestational age for display"`
	DueDate              string                `json:"due_date,omitempty" doc:"Estimated due date from lmp (YYYY-MM-DD)"`
	Classifications      []Classification      `json:"classifications" doc:"One classification per measurement, ordered by type"`
	EstimatedFetalWeight *EstimatedFetalWeight `json:"estimated_fetal_weight,omitempty" doc:"Present when hc, ac and fl were measured"`
}

// AssessResponse represents the assessment result
type AssessResponse struct {
	Body AssessResponseBody
}

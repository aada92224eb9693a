package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status           string    `json:"status" example:"healthy" doc:"Service health status"`
		Version          string    `json:"version" example:"1.0.0" doc:"API version"`
		ReferenceVersion string    `json:"reference_version" doc:"Loaded growth reference dataset"`
		Time             time.Time `json:"time" doc:"Current server time"`
	}
}

// ReferenceDocument is the portable form of a reference chart set, used for
// S3 objects and the chart export endpoint
type ReferenceDocument struct {
	Version string           `json:"version" doc:"Reference dataset version"`
	Charts  []ReferenceChart `json:"charts" doc:"One chart per measurement type"`
}

// ReferenceChart is one measurement type's percentile curves
type ReferenceChart struct {
	MeasurementType string               `json:"measurement_type" doc:"Measurement key, e.g. hc"`
	Weeks           []float64            `json:"weeks" doc:"Tabulated gestational ages in weeks"`
	Curves          map[string][]float64 `json:"curves" doc:"Values in mm keyed by percentile (p3..p97), one per week"`
}

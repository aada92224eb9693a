package models

// ChartSummary describes one loaded reference chart
type ChartSummary struct {
	MeasurementType string   `json:"measurement_type" doc:"Measurement key"`
	FirstWeek       float64  `json:"first_week" doc:"First tabulated gestational week"`
	LastWeek        float64  `json:"last_week" doc:"Last tabulated gestational week"`
	Samples         int      `json:"samples" doc:"Number of tabulated weeks"`
	Percentiles     []string `json:"percentiles" doc:"Tabulated percentile curves"`
}

// ListChartsResponse represents the chart catalog
type ListChartsResponse struct {
	Body struct {
		Version string         `json:"version" doc:"Reference dataset version"`
		Charts  []ChartSummary `json:"charts" doc:"Loaded charts"`
	}
}

// GetChartRequest represents a request for one chart
type GetChartRequest struct {
	Type string `path:"type" doc:"Measurement key, e.g. hc"`
}

// GetChartResponse represents a single chart
type GetChartResponse struct {
	Body struct {
		Version string         `json:"version" doc:"Reference dataset version"`
		Chart   ReferenceChart `json:"chart" doc:"Reference chart"`
	}
}

// ExportChartsResponse represents the loaded reference dataset
type ExportChartsResponse struct {
	Body ReferenceDocument
}

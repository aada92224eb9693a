package handlers

import (
	"context"

	"github.com/RMahshie/sonoreport/internal/growth"
	"github.com/RMahshie/sonoreport/internal/reference"
	"github.com/RMahshie/sonoreport/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// ChartCatalog exposes the loaded reference charts
type ChartCatalog interface {
	Chart(measurementType string) (*growth.Chart, bool)
	Charts() []*growth.Chart
	Version() string
}

// ChartHandler serves the reference charts backing classification
type ChartHandler struct {
	catalog ChartCatalog
}

// NewChartHandler creates a new chart handler
func NewChartHandler(catalog ChartCatalog) *ChartHandler {
	return &ChartHandler{catalog: catalog}
}

// ListCharts returns a summary of every loaded chart
func (h *ChartHandler) ListCharts(ctx context.Context, req *struct{}) (*models.ListChartsResponse, error) {
	resp := &models.ListChartsResponse{}
	resp.Body.Version = h.catalog.Version()

	charts := h.catalog.Charts()
	resp.Body.Charts = make([]models.ChartSummary, 0, len(charts))
	for _, c := range charts {
		first, last := c.Span()
		summary := models.ChartSummary{
			MeasurementType: c.MeasurementType,
			FirstWeek:       first,
			LastWeek:        last,
			Samples:         len(c.Weeks),
		}
		for _, p := range growth.Percentiles {
			if _, ok := c.Curves[p]; ok {
				summary.Percentiles = append(summary.Percentiles, string(p))
			}
		}
		resp.Body.Charts = append(resp.Body.Charts, summary)
	}

	return resp, nil
}

// GetChart returns the full curves of one chart
func (h *ChartHandler) GetChart(ctx context.Context, req *models.GetChartRequest) (*models.GetChartResponse, error) {
	chart, ok := h.catalog.Chart(req.Type)
	if !ok {
		log.Info().Str("measurementType", req.Type).Msg("Chart not found")
		return nil, huma.Error404NotFound("No reference chart for measurement type " + req.Type)
	}

	resp := &models.GetChartResponse{}
	resp.Body.Version = h.catalog.Version()
	resp.Body.Chart = reference.ToReferenceChart(chart)
	return resp, nil
}

// ExportCharts returns the loaded dataset as a reference document
func (h *ChartHandler) ExportCharts(ctx context.Context, req *struct{}) (*models.ExportChartsResponse, error) {
	return &models.ExportChartsResponse{
		Body: reference.ToDocument(h.catalog.Version(), h.catalog.Charts()),
	}, nil
}

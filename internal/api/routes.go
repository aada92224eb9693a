package api

import (
	"net/http"

	"github.com/RMahshie/sonoreport/internal/api/handlers"
	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, classifier handlers.PercentileClassifier, catalog handlers.ChartCatalog) {
	// Initialize handlers
	biometryHandler := handlers.NewBiometryHandler(classifier)
	chartHandler := handlers.NewChartHandler(catalog)

	// Register biometry routes
	huma.Register(api, huma.Operation{
		OperationID: "classifyMeasurement",
		Method:      http.MethodPost,
		Path:        "/api/biometry/classify",
		Summary:     "Classify a measurement",
		Description: "Classifies one fetal measurement into a percentile band for its gestational age",
		Tags:        []string{"Biometry"},
	}, biometryHandler.Classify)

	huma.Register(api, huma.Operation{
		OperationID: "assessBiometry",
		Method:      http.MethodPost,
		Path:        "/api/biometry/assess",
		Summary:     "Assess exam biometry",
		Description: "Classifies every measurement of an exam and returns dating and estimated fetal weight",
		Tags:        []string{"Biometry"},
	}, biometryHandler.Assess)

	// Register chart routes
	huma.Register(api, huma.Operation{
		OperationID: "listCharts",
		Method:      http.MethodGet,
		Path:        "/api/charts",
		Summary:     "List reference charts",
		Description: "Returns the loaded reference dataset version and chart coverage",
		Tags:        []string{"Charts"},
	}, chartHandler.ListCharts)

	huma.Register(api, huma.Operation{
		OperationID: "exportCharts",
		Method:      http.MethodGet,
		Path:        "/api/charts/export",
		Summary:     "Export reference charts",
		Description: "Returns the loaded reference dataset as a JSON document",
		Tags:        []string{"Charts"},
	}, chartHandler.ExportCharts)

	huma.Register(api, huma.Operation{
		OperationID: "getChart",
		Method:      http.MethodGet,
		Path:        "/api/charts/{type}",
		Summary:     "Get a reference chart",
		Description: "Returns the percentile curves for one measurement type",
		Tags:        []string{"Charts"},
	}, chartHandler.GetChart)
}

package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/sonoreport/internal/growth"
)

// ErrVersionNotFound is returned when no charts are stored for a version
var ErrVersionNotFound = errors.New("reference version not found")

// ChartRepository defines the interface for reference chart storage
type ChartRepository interface {
	ListCharts(ctx context.Context, version string) ([]*growth.Chart, error)
	SaveChart(ctx context.Context, version string, chart *growth.Chart) error
	ListVersions(ctx context.Context) ([]string, error)
}

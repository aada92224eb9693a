package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/RMahshie/sonoreport/internal/growth"
	"github.com/RMahshie/sonoreport/internal/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresChartRepository implements ChartRepository for PostgreSQL
type PostgresChartRepository struct {
	db *sql.DB
}

// NewPostgresChartRepository creates a new PostgreSQL chart repository
func NewPostgresChartRepository(db *sql.DB) repository.ChartRepository {
	return &PostgresChartRepository{db: db}
}

// ListCharts retrieves every chart stored for a reference version
func (r *PostgresChartRepository) ListCharts(ctx context.Context, version string) ([]*growth.Chart, error) {
	query := `
		SELECT measurement_type, weeks, curves
		FROM reference_charts
		WHERE version = $1
		ORDER BY measurement_type`

	rows, err := r.db.QueryContext(ctx, query, version)
	if err != nil {
		return nil, fmt.Errorf("failed to query reference charts: %w", err)
	}
	defer rows.Close()

	var charts []*growth.Chart
	for rows.Next() {
		var chart growth.Chart
		var curvesJSON []byte

		if err := rows.Scan(&chart.MeasurementType, pq.Array(&chart.Weeks), &curvesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan reference chart: %w", err)
		}

		if err := json.Unmarshal(curvesJSON, &chart.Curves); err != nil {
			return nil, fmt.Errorf("failed to unmarshal curves for %s: %w", chart.MeasurementType, err)
		}

		charts = append(charts, &chart)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reference charts: %w", err)
	}

	if len(charts) == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrVersionNotFound, version)
	}

	return charts, nil
}

// SaveChart inserts or replaces the chart for a version and measurement type
func (r *PostgresChartRepository) SaveChart(ctx context.Context, version string, chart *growth.Chart) error {
	curves, err := json.Marshal(chart.Curves)
	if err != nil {
		return fmt.Errorf("failed to marshal curves: %w", err)
	}

	query := `
		INSERT INTO reference_charts (id, version, measurement_type, weeks, curves, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (version, measurement_type)
		DO UPDATE SET weeks = EXCLUDED.weeks, curves = EXCLUDED.curves, updated_at = NOW()`

	_, err = r.db.ExecContext(ctx, query,
		uuid.New(),
		version,
		growth.NormalizeType(chart.MeasurementType),
		pq.Array(chart.Weeks),
		string(curves))

	return err
}

// ListVersions returns every stored reference version
func (r *PostgresChartRepository) ListVersions(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT version
		FROM reference_charts
		ORDER BY version`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

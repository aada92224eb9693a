// Package reference loads growth reference charts at startup from the
// built-in tables, PostgreSQL or an S3 object, and publishes them back.
package reference

import (
	"context"
	"fmt"

	"github.com/RMahshie/sonoreport/internal/growth"
	"github.com/RMahshie/sonoreport/internal/repository"
	"github.com/RMahshie/sonoreport/internal/storage"
	"github.com/rs/zerolog/log"
)

// SourceKind selects where reference charts are loaded from
type SourceKind string

const (
	SourceBuiltin  SourceKind = "builtin"
	SourcePostgres SourceKind = "postgres"
	SourceS3       SourceKind = "s3"
)

// ParseSourceKind validates a configured source name
func ParseSourceKind(s string) (SourceKind, error) {
	switch k := SourceKind(s); k {
	case SourceBuiltin, SourcePostgres, SourceS3:
		return k, nil
	default:
		return "", fmt.Errorf("unknown reference source %q (want builtin, postgres or s3)", s)
	}
}

// Source describes one reference dataset location
type Source struct {
	Kind SourceKind
	// Version selects the chart set in PostgreSQL
	Version string
	// ObjectKey locates the JSON document in S3
	ObjectKey string
}

// Target describes where Publish writes a store
type Target struct {
	Postgres  bool
	ObjectKey string
}

// Loader resolves reference sources into validated stores
type Loader struct {
	charts  repository.ChartRepository
	objects storage.S3Service
}

// NewLoader creates a loader. Either backend may be nil when the
// corresponding source is not used.
func NewLoader(charts repository.ChartRepository, objects storage.S3Service) *Loader {
	return &Loader{
		charts:  charts,
		objects: objects,
	}
}

// Load reads and validates the reference charts for src
func (l *Loader) Load(ctx context.Context, src Source) (*growth.Store, error) {
	var (
		store *growth.Store
		err   error
	)

	switch src.Kind {
	case SourceBuiltin, "":
		store = growth.Intergrowth21st()
	case SourcePostgres:
		store, err = l.loadPostgres(ctx, src.Version)
	case SourceS3:
		store, err = l.loadS3(ctx, src.ObjectKey)
	default:
		err = fmt.Errorf("unknown reference source %q", src.Kind)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", string(src.Kind)).
		Str("version", store.Version()).
		Strs("measurement_types", store.Types()).
		Msg("Reference charts loaded")

	return store, nil
}

func (l *Loader) loadPostgres(ctx context.Context, version string) (*growth.Store, error) {
	if l.charts == nil {
		return nil, fmt.Errorf("postgres reference source requires a chart repository")
	}
	if version == "" {
		return nil, fmt.Errorf("postgres reference source requires a version")
	}

	charts, err := l.charts.ListCharts(ctx, version)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference charts %s: %w", version, err)
	}

	store, err := growth.NewStore(version, charts...)
	if err != nil {
		return nil, fmt.Errorf("reference charts %s: %w", version, err)
	}
	return store, nil
}

func (l *Loader) loadS3(ctx context.Context, key string) (*growth.Store, error) {
	if l.objects == nil {
		return nil, fmt.Errorf("s3 reference source requires object storage")
	}
	if key == "" {
		return nil, fmt.Errorf("s3 reference source requires an object key")
	}

	data, err := l.objects.DownloadFile(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download reference document %s: %w", key, err)
	}

	store, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reference document %s: %w", key, err)
	}
	return store, nil
}

// Publish writes every chart of store to the requested targets
func (l *Loader) Publish(ctx context.Context, store *growth.Store, target Target) error {
	if !target.Postgres && target.ObjectKey == "" {
		return fmt.Errorf("no publish target selected")
	}

	if target.Postgres {
		if l.charts == nil {
			return fmt.Errorf("postgres target requires a chart repository")
		}
		for _, chart := range store.Charts() {
			if err := l.charts.SaveChart(ctx, store.Version(), chart); err != nil {
				return fmt.Errorf("failed to save %s chart: %w", chart.MeasurementType, err)
			}
		}
		log.Info().Str("version", store.Version()).Int("charts", len(store.Types())).Msg("Reference charts saved to postgres")
	}

	if target.ObjectKey != "" {
		if l.objects == nil {
			return fmt.Errorf("s3 target requires object storage")
		}
		data, err := Encode(store)
		if err != nil {
			return err
		}
		if err := l.objects.UploadFile(ctx, target.ObjectKey, storage.ContentTypeJSON, data); err != nil {
			return fmt.Errorf("failed to upload reference document: %w", err)
		}
		log.Info().Str("version", store.Version()).Str("key", target.ObjectKey).Msg("Reference document uploaded")
	}

	return nil
}

// Withdraw deletes a published reference document from object storage
func (l *Loader) Withdraw(ctx context.Context, key string) error {
	if l.objects == nil {
		return fmt.Errorf("s3 target requires object storage")
	}
	if key == "" {
		return fmt.Errorf("withdraw requires an object key")
	}
	if err := l.objects.DeleteFile(ctx, key); err != nil {
		return fmt.Errorf("failed to delete reference document %s: %w", key, err)
	}
	log.Info().Str("key", key).Msg("Reference document deleted")
	return nil
}

// ShareURL returns a time-limited download URL for a published document
func (l *Loader) ShareURL(ctx context.Context, key string) (string, error) {
	if l.objects == nil {
		return "", fmt.Errorf("s3 target requires object storage")
	}
	if key == "" {
		return "", fmt.Errorf("share requires an object key")
	}
	url, err := l.objects.GenerateDownloadURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("failed to sign reference document %s: %w", key, err)
	}
	return url, nil
}

package reference

import (
	"context"
	"errors"
	"testing"

	"github.com/RMahshie/sonoreport/internal/growth"
	"github.com/RMahshie/sonoreport/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChartRepository implements repository.ChartRepository for testing
type MockChartRepository struct {
	mock.Mock
}

func (m *MockChartRepository) ListCharts(ctx context.Context, version string) ([]*growth.Chart, error) {
	args := m.Called(ctx, version)
	charts, _ := args.Get(0).([]*growth.Chart)
	return charts, args.Error(1)
}

func (m *MockChartRepository) SaveChart(ctx context.Context, version string, chart *growth.Chart) error {
	args := m.Called(ctx, version, chart)
	return args.Error(0)
}

func (m *MockChartRepository) ListVersions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	versions, _ := args.Get(0).([]string)
	return versions, args.Error(1)
}

// MockS3Service implements storage.S3Service for testing
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) UploadFile(ctx context.Context, key string, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}

func (m *MockS3Service) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestLoad_Builtin(t *testing.T) {
	loader := NewLoader(nil, nil)

	for _, kind := range []SourceKind{SourceBuiltin, ""} {
		store, err := loader.Load(context.Background(), Source{Kind: kind})
		require.NoError(t, err)
		assert.Equal(t, growth.Intergrowth21stVersion, store.Version())
		assert.Equal(t, []string{"ac", "bpd", "fl", "hc"}, store.Types())
	}
}

func TestLoad_Postgres(t *testing.T) {
	builtin := growth.Intergrowth21st()

	tests := []struct {
		name      string
		version   string
		mockSetup func(*MockChartRepository)
		wantErr   string
		wantTypes []string
	}{
		{
			name:    "stored charts",
			version: "local-2026",
			mockSetup: func(m *MockChartRepository) {
				m.On("ListCharts", mock.Anything, "local-2026").Return(builtin.Charts()[:2], nil)
			},
			wantTypes: []string{"ac", "bpd"},
		},
		{
			name:    "unknown version",
			version: "missing",
			mockSetup: func(m *MockChartRepository) {
				m.On("ListCharts", mock.Anything, "missing").Return(nil, repository.ErrVersionNotFound)
			},
			wantErr: "reference version not found",
		},
		{
			name:    "invalid stored chart",
			version: "broken",
			mockSetup: func(m *MockChartRepository) {
				m.On("ListCharts", mock.Anything, "broken").Return([]*growth.Chart{{MeasurementType: "hc", Weeks: []float64{20}}}, nil)
			},
			wantErr: "invalid reference chart",
		},
		{
			name:      "missing version",
			version:   "",
			mockSetup: func(m *MockChartRepository) {},
			wantErr:   "requires a version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockChartRepository{}
			tt.mockSetup(repo)
			loader := NewLoader(repo, nil)

			store, err := loader.Load(context.Background(), Source{Kind: SourcePostgres, Version: tt.version})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.version, store.Version())
				assert.Equal(t, tt.wantTypes, store.Types())
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLoad_S3(t *testing.T) {
	encoded, err := Encode(growth.Intergrowth21st())
	require.NoError(t, err)

	objects := &MockS3Service{}
	objects.On("DownloadFile", mock.Anything, "reference/ig21.json").Return(encoded, nil)
	objects.On("DownloadFile", mock.Anything, "reference/missing.json").Return(nil, errors.New("NoSuchKey"))
	objects.On("DownloadFile", mock.Anything, "reference/garbage.json").Return([]byte("not json"), nil)

	loader := NewLoader(nil, objects)
	ctx := context.Background()

	store, err := loader.Load(ctx, Source{Kind: SourceS3, ObjectKey: "reference/ig21.json"})
	require.NoError(t, err)
	assert.Equal(t, growth.Intergrowth21stVersion, store.Version())
	assert.Len(t, store.Types(), 4)

	_, err = loader.Load(ctx, Source{Kind: SourceS3, ObjectKey: "reference/missing.json"})
	assert.ErrorContains(t, err, "NoSuchKey")

	_, err = loader.Load(ctx, Source{Kind: SourceS3, ObjectKey: "reference/garbage.json"})
	assert.ErrorContains(t, err, "failed to parse reference document")

	_, err = loader.Load(ctx, Source{Kind: SourceS3})
	assert.ErrorContains(t, err, "requires an object key")

	objects.AssertExpectations(t)
}

func TestLoad_MissingBackends(t *testing.T) {
	loader := NewLoader(nil, nil)
	ctx := context.Background()

	_, err := loader.Load(ctx, Source{Kind: SourcePostgres, Version: "v1"})
	assert.ErrorContains(t, err, "requires a chart repository")

	_, err = loader.Load(ctx, Source{Kind: SourceS3, ObjectKey: "k"})
	assert.ErrorContains(t, err, "requires object storage")

	_, err = loader.Load(ctx, Source{Kind: "ftp"})
	assert.ErrorContains(t, err, "unknown reference source")
}

func TestPublish(t *testing.T) {
	store := growth.Intergrowth21st()

	repo := &MockChartRepository{}
	repo.On("SaveChart", mock.Anything, growth.Intergrowth21stVersion, mock.AnythingOfType("*growth.Chart")).Return(nil).Times(4)

	objects := &MockS3Service{}
	objects.On("UploadFile", mock.Anything, "reference/ig21.json", "application/json", mock.MatchedBy(func(data []byte) bool {
		decoded, err := Decode(data)
		return err == nil && decoded.Version() == growth.Intergrowth21stVersion
	})).Return(nil)

	loader := NewLoader(repo, objects)
	err := loader.Publish(context.Background(), store, Target{Postgres: true, ObjectKey: "reference/ig21.json"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
	objects.AssertExpectations(t)
}

func TestPublish_Errors(t *testing.T) {
	store := growth.Intergrowth21st()
	ctx := context.Background()

	err := NewLoader(nil, nil).Publish(ctx, store, Target{})
	assert.ErrorContains(t, err, "no publish target")

	repo := &MockChartRepository{}
	repo.On("SaveChart", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	err = NewLoader(repo, nil).Publish(ctx, store, Target{Postgres: true})
	assert.ErrorContains(t, err, "failed to save ac chart")

	err = NewLoader(nil, nil).Publish(ctx, store, Target{ObjectKey: "k"})
	assert.ErrorContains(t, err, "requires object storage")
}

func TestParseSourceKind(t *testing.T) {
	for _, s := range []string{"builtin", "postgres", "s3"} {
		kind, err := ParseSourceKind(s)
		require.NoError(t, err)
		assert.Equal(t, SourceKind(s), kind)
	}

	_, err := ParseSourceKind("redis")
	assert.Error(t, err)
}

func TestWithdraw(t *testing.T) {
	objects := &MockS3Service{}
	objects.On("DeleteFile", mock.Anything, "reference/old.json").Return(nil)
	objects.On("DeleteFile", mock.Anything, "reference/locked.json").Return(errors.New("AccessDenied"))

	loader := NewLoader(nil, objects)
	ctx := context.Background()

	require.NoError(t, loader.Withdraw(ctx, "reference/old.json"))
	assert.ErrorContains(t, loader.Withdraw(ctx, "reference/locked.json"), "AccessDenied")
	assert.ErrorContains(t, loader.Withdraw(ctx, ""), "requires an object key")
	assert.ErrorContains(t, NewLoader(nil, nil).Withdraw(ctx, "k"), "requires object storage")

	objects.AssertExpectations(t)
}

func TestShareURL(t *testing.T) {
	objects := &MockS3Service{}
	objects.On("GenerateDownloadURL", mock.Anything, "reference/ig21.json").
		Return("http://localhost:9000/charts/reference/ig21.json?X-Amz-Signature=abc", nil)
	objects.On("GenerateDownloadURL", mock.Anything, "reference/bad.json").Return("", errors.New("no credentials"))

	loader := NewLoader(nil, objects)
	ctx := context.Background()

	url, err := loader.ShareURL(ctx, "reference/ig21.json")
	require.NoError(t, err)
	assert.Contains(t, url, "X-Amz-Signature")

	_, err = loader.ShareURL(ctx, "reference/bad.json")
	assert.ErrorContains(t, err, "no credentials")

	_, err = loader.ShareURL(ctx, "")
	assert.ErrorContains(t, err, "requires an object key")

	_, err = NewLoader(nil, nil).ShareURL(ctx, "k")
	assert.ErrorContains(t, err, "requires object storage")

	objects.AssertExpectations(t)
}

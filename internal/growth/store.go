package growth

import (
	"fmt"
	"sort"
)

// ChartSource looks up reference charts by measurement type. A missing
// chart is reported with ok == false, never as an error.
type ChartSource interface {
	Chart(measurementType string) (*Chart, bool)
}

// Store holds validated, read-only reference charts keyed by measurement type.
// It is safe for concurrent use.
type Store struct {
	version string
	charts  map[string]*Chart
}

// NewStore validates and copies the given charts. Any invalid chart or a
// duplicated measurement type fails the whole store.
func NewStore(version string, charts ...*Chart) (*Store, error) {
	s := &Store{
		version: version,
		charts:  make(map[string]*Chart, len(charts)),
	}

	for _, c := range charts {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		key := NormalizeType(c.MeasurementType)
		if _, dup := s.charts[key]; dup {
			return nil, fmt.Errorf("%w: duplicate chart for %q", ErrInvalidChart, key)
		}
		s.charts[key] = c.clone()
	}

	return s, nil
}

// Chart returns the chart for a measurement type. The returned chart is
// shared and must not be modified.
func (s *Store) Chart(measurementType string) (*Chart, bool) {
	c, ok := s.charts[NormalizeType(measurementType)]
	return c, ok
}

// Charts returns every chart ordered by measurement type
func (s *Store) Charts() []*Chart {
	out := make([]*Chart, 0, len(s.charts))
	for _, t := range s.Types() {
		out = append(out, s.charts[t])
	}
	return out
}

// Types returns the sorted measurement types that have reference data
func (s *Store) Types() []string {
	types := make([]string, 0, len(s.charts))
	for t := range s.charts {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Version identifies the reference dataset, e.g. the chart edition
func (s *Store) Version() string {
	return s.version
}

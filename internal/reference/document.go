package reference

import (
	"encoding/json"
	"fmt"

	"github.com/RMahshie/sonoreport/internal/growth"
	"github.com/RMahshie/sonoreport/pkg/models"
)

// Decode parses a reference JSON document into a validated store
func Decode(data []byte) (*growth.Store, error) {
	var doc models.ReferenceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse reference document: %w", err)
	}
	return FromDocument(doc)
}

// FromDocument converts a reference document into a validated store
func FromDocument(doc models.ReferenceDocument) (*growth.Store, error) {
	if doc.Version == "" {
		return nil, fmt.Errorf("reference document has no version")
	}

	charts := make([]*growth.Chart, 0, len(doc.Charts))
	for _, c := range doc.Charts {
		chart := &growth.Chart{
			MeasurementType: c.MeasurementType,
			Weeks:           c.Weeks,
			Curves:          make(map[growth.Percentile][]float64, len(c.Curves)),
		}
		for label, values := range c.Curves {
			p, err := growth.ParsePercentile(label)
			if err != nil {
				return nil, fmt.Errorf("chart %s: %w", c.MeasurementType, err)
			}
			if _, dup := chart.Curves[p]; dup {
				return nil, fmt.Errorf("chart %s: duplicate %s curve", c.MeasurementType, p)
			}
			chart.Curves[p] = values
		}
		charts = append(charts, chart)
	}

	return growth.NewStore(doc.Version, charts...)
}

// ToDocument converts a store into its portable document form
func ToDocument(version string, charts []*growth.Chart) models.ReferenceDocument {
	doc := models.ReferenceDocument{
		Version: version,
		Charts:  make([]models.ReferenceChart, 0, len(charts)),
	}
	for _, c := range charts {
		doc.Charts = append(doc.Charts, ToReferenceChart(c))
	}
	return doc
}

// ToReferenceChart converts one chart, keeping the standard percentile order
func ToReferenceChart(c *growth.Chart) models.ReferenceChart {
	rc := models.ReferenceChart{
		MeasurementType: c.MeasurementType,
		Weeks:           c.Weeks,
		Curves:          make(map[string][]float64, len(growth.Percentiles)),
	}
	for _, p := range growth.Percentiles {
		if values, ok := c.Curves[p]; ok {
			rc.Curves[string(p)] = values
		}
	}
	return rc
}

// Encode serialises a store as a reference JSON document
func Encode(store *growth.Store) ([]byte, error) {
	data, err := json.MarshalIndent(ToDocument(store.Version(), store.Charts()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode reference document: %w", err)
	}
	return data, nil
}

package growth

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidChart is returned when reference data fails load-time validation
var ErrInvalidChart = errors.New("invalid reference chart")

// Percentile labels one tabulated reference curve
type Percentile string

const (
	P3  Percentile = "p3"
	P5  Percentile = "p5"
	P10 Percentile = "p10"
	P50 Percentile = "p50"
	P90 Percentile = "p90"
	P95 Percentile = "p95"
	P97 Percentile = "p97"
)

// Percentiles lists the curves every chart must carry, lowest first
var Percentiles = []Percentile{P3, P5, P10, P50, P90, P95, P97}

var percentileRanks = map[Percentile]float64{
	P3: 3, P5: 5, P10: 10, P50: 50, P90: 90, P95: 95, P97: 97,
}

// ParsePercentile accepts "p50", "P50" or "50"
func ParsePercentile(s string) (Percentile, error) {
	p := Percentile(strings.ToLower(strings.TrimSpace(s)))
	if !strings.HasPrefix(string(p), "p") {
		p = "p" + p
	}
	if _, ok := percentileRanks[p]; !ok {
		return "", fmt.Errorf("unknown percentile %q", s)
	}
	return p, nil
}

// Chart is the reference growth chart for a single measurement type.
// Weeks are gestational ages in decimal weeks; each curve holds one
// measurement in millimetres per week.
type Chart struct {
	MeasurementType string
	Weeks           []float64
	Curves          map[Percentile][]float64
}

// Span returns the first and last tabulated week
func (c *Chart) Span() (first, last float64) {
	if len(c.Weeks) == 0 {
		return 0, 0
	}
	return c.Weeks[0], c.Weeks[len(c.Weeks)-1]
}

// Validate checks the invariants the interpolator relies on: at least two
// strictly increasing finite weeks, every percentile curve present with one
// finite value per week, and curves ordered p3 <= ... <= p97 at each week.
func (c *Chart) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil chart", ErrInvalidChart)
	}
	if NormalizeType(c.MeasurementType) == "" {
		return fmt.Errorf("%w: measurement type is required", ErrInvalidChart)
	}
	if len(c.Weeks) < 2 {
		return fmt.Errorf("%w: %s: need at least 2 weeks, got %d", ErrInvalidChart, c.MeasurementType, len(c.Weeks))
	}
	for i, w := range c.Weeks {
		if !isFinite(w) {
			return fmt.Errorf("%w: %s: week %d is not a finite number", ErrInvalidChart, c.MeasurementType, i)
		}
		if i > 0 && w <= c.Weeks[i-1] {
			return fmt.Errorf("%w: %s: weeks must be strictly increasing (%.3f after %.3f)",
				ErrInvalidChart, c.MeasurementType, w, c.Weeks[i-1])
		}
	}

	for _, p := range Percentiles {
		values, ok := c.Curves[p]
		if !ok {
			return fmt.Errorf("%w: %s: missing %s curve", ErrInvalidChart, c.MeasurementType, p)
		}
		if len(values) != len(c.Weeks) {
			return fmt.Errorf("%w: %s: %s curve has %d values for %d weeks",
				ErrInvalidChart, c.MeasurementType, p, len(values), len(c.Weeks))
		}
		for i, v := range values {
			if !isFinite(v) {
				return fmt.Errorf("%w: %s: %s value at week %.1f is not a finite number",
					ErrInvalidChart, c.MeasurementType, p, c.Weeks[i])
			}
		}
	}

	for i, w := range c.Weeks {
		for k := 1; k < len(Percentiles); k++ {
			lower, upper := Percentiles[k-1], Percentiles[k]
			if c.Curves[upper][i] < c.Curves[lower][i] {
				return fmt.Errorf("%w: %s: %s (%.1f) below %s (%.1f) at week %.1f",
					ErrInvalidChart, c.MeasurementType, upper, c.Curves[upper][i], lower, c.Curves[lower][i], w)
			}
		}
	}

	return nil
}

func (c *Chart) clone() *Chart {
	out := &Chart{
		MeasurementType: NormalizeType(c.MeasurementType),
		Weeks:           append([]float64(nil), c.Weeks...),
		Curves:          make(map[Percentile][]float64, len(c.Curves)),
	}
	for p, values := range c.Curves {
		out.Curves[p] = append([]float64(nil), values...)
	}
	return out
}

// NormalizeType maps a measurement key to its canonical lower-case form
func NormalizeType(measurementType string) string {
	return strings.ToLower(strings.TrimSpace(measurementType))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

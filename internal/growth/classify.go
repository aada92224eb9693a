package growth

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Default global gestational age domain, in weeks. Ages inside the domain
// but outside a chart's own span classify as out-of-range.
const (
	DefaultMinAgeWeeks = 14.0
	DefaultMaxAgeWeeks = 42.0
)

// weekTolerance admits ages within 0.001 week of a tabulated sample
const weekTolerance = 0.001

// Status tells a usable classification apart from the failure reasons
type Status string

const (
	StatusOK           Status = "ok"
	StatusInvalidInput Status = "invalid-input"
	StatusNoData       Status = "no-data"
	StatusOutOfRange   Status = "out-of-range"
	StatusDataError    Status = "data-error"
	StatusCalcError    Status = "calc-error"
	StatusError        Status = "error"
)

var statusLabels = map[Status]string{
	StatusInvalidInput: "Invalid Input",
	StatusNoData:       "No Data",
	StatusOutOfRange:   "Out of Range",
	StatusDataError:    "Data Error",
	StatusCalcError:    "Calc Error",
	StatusError:        "Error",
}

// Band is the classification band, ordered from smallest to largest value
type Band int

const (
	BandNone Band = iota
	BandBelowP3
	BandP3P5
	BandP5P10
	BandP10P50
	BandP50P90
	BandP90P95
	BandP95P97
	BandAboveP97
)

var bandLabels = map[Band]string{
	BandBelowP3:  "< P3",
	BandP3P5:     "P3-P5",
	BandP5P10:    "P5-P10",
	BandP10P50:   "P10-P50 (near P50)",
	BandP50P90:   "P50-P90 (near P90)",
	BandP90P95:   "P90-P95",
	BandP95P97:   "P95-P97",
	BandAboveP97: "> P97",
}

var bandNames = map[Band]string{
	BandNone:     "none",
	BandBelowP3:  "below-p3",
	BandP3P5:     "p3-p5",
	BandP5P10:    "p5-p10",
	BandP10P50:   "p10-p50",
	BandP50P90:   "p50-p90",
	BandP90P95:   "p90-p95",
	BandP95P97:   "p95-p97",
	BandAboveP97: "above-p97",
}

// String returns a stable machine-readable band name
func (b Band) String() string {
	if name, ok := bandNames[b]; ok {
		return name
	}
	return fmt.Sprintf("band(%d)", int(b))
}

// Result is the outcome of one classification. Only results with
// StatusOK carry a clinical band; every other status is a failure reason.
type Result struct {
	Status Status
	Band   Band
	// Percentile is the point estimate for the P10-P90 bands, 0 when the
	// band is reported without an estimate.
	Percentile int
	// Label is the display string, e.g. "~P42", "P3-P5" or "Out of Range"
	Label  string
	Detail string
}

// OK reports whether the result carries a clinical classification
func (r Result) OK() bool {
	return r.Status == StatusOK
}

func (r Result) String() string {
	return r.Label
}

// Rank positions a successful result on the percentile axis so results for
// increasing measurements compare in non-decreasing order. Failures rank -1.
func (r Result) Rank() float64 {
	if !r.OK() {
		return -1
	}
	switch r.Band {
	case BandBelowP3:
		return 0
	case BandP3P5:
		return 3
	case BandP5P10:
		return 5
	case BandP10P50:
		if r.Percentile == 0 {
			return 50
		}
		return float64(r.Percentile)
	case BandP50P90:
		if r.Percentile == 0 {
			return 90
		}
		return float64(r.Percentile)
	case BandP90P95:
		return 91
	case BandP95P97:
		return 96
	case BandAboveP97:
		return 98
	default:
		return -1
	}
}

func failure(status Status, format string, args ...interface{}) Result {
	return Result{
		Status: status,
		Band:   BandNone,
		Label:  statusLabels[status],
		Detail: fmt.Sprintf(format, args...),
	}
}

func bandResult(b Band) Result {
	return Result{Status: StatusOK, Band: b, Label: bandLabels[b]}
}

// Classifier converts a fetal measurement and gestational age into a
// percentile classification against injected reference charts.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	source ChartSource
	minAge float64
	maxAge float64
}

// Option configures a Classifier
type Option func(*Classifier)

// WithAgeDomain overrides the global gestational age sanity bounds
func WithAgeDomain(minWeeks, maxWeeks float64) Option {
	return func(c *Classifier) {
		c.minAge = minWeeks
		c.maxAge = maxWeeks
	}
}

// NewClassifier creates a classifier over the given reference charts
func NewClassifier(source ChartSource, opts ...Option) *Classifier {
	c := &Classifier{
		source: source,
		minAge: DefaultMinAgeWeeks,
		maxAge: DefaultMaxAgeWeeks,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify places a measurement (mm) taken at gaWeeks against the chart for
// measurementType. It never panics; every failure is reported in the Result.
func (c *Classifier) Classify(measurementType string, value, gaWeeks float64) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("measurement_type", measurementType).
				Float64("value", value).
				Float64("ga_weeks", gaWeeks).
				Msg("Percentile classification failed unexpectedly")
			res = failure(StatusError, "unexpected failure: %v", r)
		}
	}()

	if !isFinite(value) || value <= 0 {
		return failure(StatusInvalidInput, "measurement must be a positive number, got %v", value)
	}
	if !isFinite(gaWeeks) || gaWeeks < c.minAge || gaWeeks > c.maxAge {
		return failure(StatusInvalidInput, "gestational age must be between %.1f and %.1f weeks, got %v",
			c.minAge, c.maxAge, gaWeeks)
	}

	if c.source == nil {
		return failure(StatusNoData, "no reference charts loaded")
	}
	chart, ok := c.source.Chart(measurementType)
	if !ok || chart == nil || len(chart.Weeks) == 0 || len(chart.Curves[P50]) != len(chart.Weeks) {
		return failure(StatusNoData, "no reference chart for %q", measurementType)
	}
	if len(chart.Weeks) < 2 {
		return failure(StatusDataError, "chart for %q needs at least two weeks", measurementType)
	}

	i, ok := bracket(chart.Weeks, gaWeeks)
	if !ok {
		first, last := chart.Span()
		return failure(StatusOutOfRange, "gestational age %.2f is outside the chart span %.1f-%.1f weeks",
			gaWeeks, first, last)
	}

	curves, failed := interpolate(chart, i, gaWeeks)
	if failed != nil {
		return *failed
	}

	return classifyValue(value, curves)
}

// bracket finds i such that weeks[i] <= ga < weeks[i+1] by linear scan,
// admitting ages within weekTolerance of a sample. An age equal to the
// final sample maps to the last interval.
func bracket(weeks []float64, ga float64) (int, bool) {
	for i := 0; i < len(weeks)-1; i++ {
		if ga >= weeks[i]-weekTolerance && ga < weeks[i+1] {
			return i, true
		}
	}
	last := len(weeks) - 1
	if math.Abs(ga-weeks[last]) <= weekTolerance {
		return last - 1, true
	}
	return 0, false
}

// interpolate evaluates every percentile curve at ga between samples i and i+1
func interpolate(chart *Chart, i int, ga float64) (map[Percentile]float64, *Result) {
	w0, w1 := chart.Weeks[i], chart.Weeks[i+1]
	if !isFinite(w0) || !isFinite(w1) {
		r := failure(StatusDataError, "chart for %q has non-numeric weeks around %.2f", chart.MeasurementType, ga)
		return nil, &r
	}

	out := make(map[Percentile]float64, len(Percentiles))
	for _, p := range Percentiles {
		values, ok := chart.Curves[p]
		if !ok || len(values) <= i+1 {
			r := failure(StatusDataError, "chart for %q is missing %s samples", chart.MeasurementType, p)
			return nil, &r
		}
		y0, y1 := values[i], values[i+1]
		if !isFinite(y0) || !isFinite(y1) {
			r := failure(StatusDataError, "chart for %q has non-numeric %s samples", chart.MeasurementType, p)
			return nil, &r
		}

		y := y0
		if w1 != w0 {
			y = y0 + (ga-w0)*(y1-y0)/(w1-w0)
		}
		if !isFinite(y) {
			r := failure(StatusCalcError, "interpolated %s for %q is not finite", p, chart.MeasurementType)
			return nil, &r
		}
		out[p] = y
	}

	return out, nil
}

// classifyValue applies the band policy; first match wins
func classifyValue(v float64, c map[Percentile]float64) Result {
	switch {
	case v < c[P3]:
		return bandResult(BandBelowP3)
	case v < c[P5]:
		return bandResult(BandP3P5)
	case v < c[P10]:
		return bandResult(BandP5P10)
	case v <= c[P50]:
		return estimate(BandP10P50, v, c[P10], percentileRanks[P10], c[P50], percentileRanks[P50])
	case v <= c[P90]:
		return estimate(BandP50P90, v, c[P50], percentileRanks[P50], c[P90], percentileRanks[P90])
	case v <= c[P95]:
		return bandResult(BandP90P95)
	case v <= c[P97]:
		return bandResult(BandP95P97)
	default:
		return bandResult(BandAboveP97)
	}
}

// estimate interpolates on the percentile scale between two curves. A
// collapsed interval reports the band's near-boundary label instead.
func estimate(b Band, v, lo, loRank, hi, hiRank float64) Result {
	if hi <= lo {
		return bandResult(b)
	}

	pct := loRank + (v-lo)*(hiRank-loRank)/(hi-lo)
	n := int(math.Round(pct))
	if n < 1 {
		n = 1
	} else if n > 99 {
		n = 99
	}

	return Result{
		Status:     StatusOK,
		Band:       b,
		Percentile: n,
		Label:      fmt.Sprintf("~P%d", n),
	}
}

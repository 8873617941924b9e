package scale

import (
	"math"
	"time"

	"trendchart/internal/models"
)

// Linear maps a continuous numeric domain onto a pixel range
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// Map returns the pixel coordinate for v. A degenerate domain maps every
// value to the middle of the range.
func (s Linear) Map(v float64) float64 {
	d := s.Domain[1] - s.Domain[0]
	if d == 0 || math.IsNaN(d) {
		return (s.Range[0] + s.Range[1]) / 2
	}
	t := (v - s.Domain[0]) / d
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Ticks returns roughly count nicely rounded values inside the domain.
// A count of zero or less yields no ticks.
func (s Linear) Ticks(count int) []float64 {
	return niceTicks(s.Domain[0], s.Domain[1], count)
}

// Time maps an instant onto a pixel range
type Time struct {
	Domain [2]time.Time
	Range  [2]float64
}

// Map returns the pixel coordinate for t
func (s Time) Map(t time.Time) float64 {
	return s.linear().Map(toMillis(t))
}

// Ticks returns calendar-aligned ticks with labels, roughly count of them
func (s Time) Ticks(count int) []TimeTick {
	return timeTicks(s.Domain[0], s.Domain[1], count)
}

func (s Time) linear() Linear {
	return Linear{
		Domain: [2]float64{toMillis(s.Domain[0]), toMillis(s.Domain[1])},
		Range:  s.Range,
	}
}

func toMillis(t time.Time) float64 {
	return float64(t.UnixMilli()) + float64(t.Nanosecond()%1e6)/1e6
}

// Scales is the pair of mappings used to place every primitive of a chart
type Scales struct {
	X Time
	Y Linear
}

// Compute derives the x and y scales for a filtered dataset.
//
// Both domains come from the first series only: x spans its date extent
// and y spans [0, max value]. Points of later series outside that extent
// land off the plotting area.
func Compute(filtered []models.PlottedSeries, width, height, margin float64) Scales {
	sc := Scales{
		X: Time{Range: [2]float64{0, width - margin}},
		Y: Linear{Range: [2]float64{height - margin, 0}},
	}
	if len(filtered) == 0 {
		return sc
	}

	first := filtered[0].Points
	if lo, hi, ok := DateExtent(first); ok {
		sc.X.Domain = [2]time.Time{lo, hi}
	}
	if hi, ok := MaxValue(first); ok {
		sc.Y.Domain = [2]float64{0, hi}
	}
	return sc
}

// DateExtent returns the earliest and latest valid date among points
func DateExtent(points []models.PlottedPoint) (time.Time, time.Time, bool) {
	var lo, hi time.Time
	found := false
	for _, p := range points {
		if !p.Valid {
			continue
		}
		if !found {
			lo, hi, found = p.Date, p.Date, true
			continue
		}
		if p.Date.Before(lo) {
			lo = p.Date
		}
		if p.Date.After(hi) {
			hi = p.Date
		}
	}
	return lo, hi, found
}

// MaxValue returns the largest value among points
func MaxValue(points []models.PlottedPoint) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	hi := math.Inf(-1)
	for _, p := range points {
		if math.IsNaN(p.Value) {
			continue
		}
		if p.Value > hi {
			hi = p.Value
		}
	}
	if math.IsInf(hi, -1) {
		return 0, false
	}
	return hi, true
}

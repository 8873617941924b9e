package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Series is one named, colored, ordered sequence of observations
type Series struct {
	Name   string  `json:"name"`   // Unique within a dataset
	Color  string  `json:"color"`  // Display hint, e.g. "#1f77b4"
	Values []Point `json:"values"` // Ordered as drawn
}

// Point is a raw (date, value) observation as it arrives in the source document
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// UnmarshalJSON accepts the value either as a JSON number or as a numeric string
func (p *Point) UnmarshalJSON(b []byte) error {
	var raw struct {
		Date  string          `json:"date"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	p.Date = raw.Date
	p.Value = 0

	v := strings.TrimSpace(string(raw.Value))
	if v == "" || v == "null" {
		return nil
	}
	if strings.HasPrefix(v, `"`) {
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return err
		}
		v = strings.TrimSpace(s)
		if v == "" {
			return nil
		}
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q for date %q: %w", v, raw.Date, err)
	}
	p.Value = f
	return nil
}

// PlottedPoint is a point after its date has been parsed with the active mode
type PlottedPoint struct {
	Date  time.Time
	Value float64
	Label string // Name of the owning series
	Valid bool   // False when the raw date could not be parsed
}

// PlottedSeries is a parsed copy of a Series ready for scaling and drawing
type PlottedSeries struct {
	Name   string
	Color  string
	Points []PlottedPoint
}

// Names returns the series names in dataset order
func Names(series []Series) []string {
	names := make([]string, 0, len(series))
	for _, s := range series {
		names = append(names, s.Name)
	}
	return names
}

// Colors returns the embedded series colors in dataset order
func Colors(series []Series) []string {
	colors := make([]string, 0, len(series))
	for _, s := range series {
		colors = append(colors, s.Color)
	}
	return colors
}

// Prepare parses every point of every series with the given mode.
// The input is never modified; points that fail to parse keep a zero
// date and are flagged invalid.
func Prepare(series []Series, mode Mode) []PlottedSeries {
	out := make([]PlottedSeries, 0, len(series))
	for _, s := range series {
		ps := PlottedSeries{
			Name:   s.Name,
			Color:  s.Color,
			Points: make([]PlottedPoint, 0, len(s.Values)),
		}
		for _, v := range s.Values {
			t, ok := mode.ParseDate(v.Date)
			ps.Points = append(ps.Points, PlottedPoint{
				Date:  t,
				Value: v.Value,
				Label: s.Name,
				Valid: ok,
			})
		}
		out = append(out, ps)
	}
	return out
}

// CountInvalid returns how many prepared points carry an unparseable date
func CountInvalid(series []PlottedSeries) int {
	n := 0
	for _, s := range series {
		for _, p := range s.Points {
			if !p.Valid {
				n++
			}
		}
	}
	return n
}

// Package interaction implements the chart's pointer handlers: legend clicks
// and point hover. Handlers only touch the surface they are given; full
// redraws go through a Rebuilder.
package interaction

import (
	"strings"

	"trendchart/internal/charts"
	"trendchart/internal/format"
	"trendchart/internal/legend"
)

const (
	hoverLabelOffset = 10
	hoverLabelClass  = "text"
	cursorPointer    = "pointer"
	cursorNone       = "none"
	currencySeries   = "spend"
)

// Rebuilder redraws the chart from current state
type Rebuilder interface {
	Rebuild()
}

// RebuildFunc adapts a plain function to Rebuilder
type RebuildFunc func()

// Rebuild calls f
func (f RebuildFunc) Rebuild() {
	f()
}

// LegendClick toggles name and redraws the whole chart
func LegendClick(t legend.Toggler, r Rebuilder, name string) {
	t.Toggle(name)
	if r != nil {
		r.Rebuild()
	}
}

// PointEnter enlarges the hovered marker and shows its value above it.
// It reports false when ref is not drawn on the surface.
func PointEnter(s *charts.Surface, ref charts.PointRef) bool {
	c := s.Circle(ref)
	if c == nil {
		return false
	}
	c.Cursor = cursorPointer
	c.Transition = &charts.Transition{
		Attr:     "r",
		From:     c.R,
		To:       charts.CircleRadiusHover,
		Duration: charts.TransitionDuration,
	}
	c.R = charts.CircleRadiusHover

	s.AddLabel(ref, charts.Text{
		X:       c.CX,
		Y:       c.CY - hoverLabelOffset,
		Content: FormatValue(ref.Series, c.Value),
		Class:   hoverLabelClass,
	})
	return true
}

// PointExit removes the hover label and shrinks the marker back
func PointExit(s *charts.Surface, ref charts.PointRef) bool {
	c := s.Circle(ref)
	if c == nil {
		return false
	}
	s.RemoveLabels(ref)
	c.Cursor = cursorNone
	c.Transition = &charts.Transition{
		Attr:     "r",
		From:     c.R,
		To:       charts.CircleRadius,
		Duration: charts.TransitionDuration,
	}
	c.R = charts.CircleRadius
	return true
}

// FormatValue renders a hover label. Values of the "spend" series (any case)
// are shown as "$" plus the raw number, everything else is digit grouped.
func FormatValue(series string, v float64) string {
	if strings.EqualFold(series, currencySeries) {
		return format.Currency(v)
	}
	return format.Grouped(v)
}

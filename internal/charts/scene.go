package charts

import (
	"time"

	"trendchart/internal/scale"
)

// Rect is a filled rectangle
type Rect struct {
	X, Y          float64
	Width, Height float64
	Fill          string
}

// Text is a positioned text node
type Text struct {
	X, Y     float64
	Content  string
	Class    string
	FontSize float64 // Pixels; zero leaves the size to the stylesheet
}

// Transition animates one numeric attribute of a node
type Transition struct {
	Attr     string
	From, To float64
	Duration time.Duration
}

// PointRef identifies one drawn point by series name and position
type PointRef struct {
	Series string
	Index  int
}

// Circle is a point marker
type Circle struct {
	Ref        PointRef
	CX, CY     float64
	R          float64
	Date       time.Time
	Value      float64
	Cursor     string
	Transition *Transition
}

// PointGroup holds the markers of one series, filled with the series color
type PointGroup struct {
	Series  string
	Fill    string
	Circles []Circle
}

// Line is the path drawn through the points of one series
type Line struct {
	ID      string
	Series  string
	Stroke  string
	Opacity float64
	Path    string
}

// LegendEntry is one swatch and label of the legend column
type LegendEntry struct {
	ID     string
	Name   string
	Hidden bool
	Swatch Rect
	Label  Text
}

// Tick is an axis tick at a pixel offset along the axis
type Tick struct {
	Pos   float64
	Label string
}

// Axis is a rendered axis: its class, offset from the content origin and ticks
type Axis struct {
	Class      string
	TranslateY float64
	Range      [2]float64
	Ticks      []Tick
}

// HoverLabel is a transient label attached to a point by a hover handler
type HoverLabel struct {
	Ref  PointRef
	Text Text
}

// Scene is the complete set of draw primitives for one render
type Scene struct {
	Width, Height float64 // Drawing surface size
	Offset        float64 // Content translation on both axes
	Scales        scale.Scales

	Legend []LegendEntry
	Lines  []Line
	Points []PointGroup
	XAxis  Axis
	YAxis  Axis

	HoverLabels   []HoverLabel
	InvalidPoints int
}

// CircleCount returns the number of point markers in the scene
func (s *Scene) CircleCount() int {
	n := 0
	for _, g := range s.Points {
		n += len(g.Circles)
	}
	return n
}

// Circle returns the marker at ref, or nil when the scene has none
func (s *Scene) Circle(ref PointRef) *Circle {
	for gi := range s.Points {
		g := &s.Points[gi]
		if g.Series != ref.Series {
			continue
		}
		if ref.Index < 0 || ref.Index >= len(g.Circles) {
			return nil
		}
		return &g.Circles[ref.Index]
	}
	return nil
}

// LineFor returns the line drawn for a series, or nil when it is not drawn
func (s *Scene) LineFor(series string) *Line {
	for i := range s.Lines {
		if s.Lines[i].Series == series {
			return &s.Lines[i]
		}
	}
	return nil
}

// LegendFor returns the legend entry of a series
func (s *Scene) LegendFor(series string) *LegendEntry {
	for i := range s.Legend {
		if s.Legend[i].Name == series {
			return &s.Legend[i]
		}
	}
	return nil
}

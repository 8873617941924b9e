package charts

import (
	"math"
	"strconv"
	"strings"
	"time"

	"trendchart/internal/format"
	"trendchart/internal/legend"
	"trendchart/internal/models"
	"trendchart/internal/scale"
)

// Chart geometry and styling constants
const (
	Margin             = 50
	CircleRadius       = 4
	CircleRadiusHover  = 6
	TransitionDuration = 250 * time.Millisecond
	LineOpacity        = 0.5
	lineAlpha          = 127 // LineOpacity as an 8-bit alpha
	DefaultYTicks      = 10
	DefaultXTicks      = 10

	legendSwatchSize  = 10
	legendRowHeight   = 20
	legendSwatchInset = 100
	legendLabelInset  = 85
	legendFontSize    = 12

	// The y-axis loses its ticks when exactly this many series are selected.
	suppressYTicksAt = 3
)

// Viewport is the measured size of the render container
type Viewport struct {
	Width, Height float64
}

// Margins are subtracted from the viewport to size the drawing area
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargins are used when State.Margins is zero
var DefaultMargins = Margins{Top: 50, Right: 50, Bottom: 50, Left: 50}

// State is everything a render depends on
type State struct {
	Data       []models.Series // Full, unfiltered dataset
	Mode       models.Mode
	Visibility legend.Visibility // Nil means every series is selected
	Viewport   Viewport
	Margins    Margins
}

// Render builds the draw primitives for state. It keeps nothing between
// calls: every invocation returns a new scene built from scratch.
func Render(st State) *Scene {
	m := st.Margins
	if m == (Margins{}) {
		m = DefaultMargins
	}
	vis := st.Visibility
	if vis == nil {
		vis = allSelected(len(st.Data))
	}

	width := st.Viewport.Width - m.Left - m.Right
	height := st.Viewport.Height - m.Top - m.Bottom

	filtered := models.Prepare(vis.Filter(st.Data), st.Mode)
	sc := scale.Compute(filtered, width, height, Margin)

	scene := &Scene{
		Width:         width + Margin,
		Height:        height + Margin,
		Offset:        Margin,
		Scales:        sc,
		InvalidPoints: models.CountInvalid(filtered),
	}

	// Swatch colors are indexed by position in the full list, line colors by
	// position in the filtered list.
	for i, name := range models.Names(st.Data) {
		y := float64(i * legendRowHeight)
		scene.Legend = append(scene.Legend, LegendEntry{
			ID:     "legend-" + strings.ToLower(name),
			Name:   name,
			Hidden: vis.IsHidden(name),
			Swatch: Rect{
				X: width - legendSwatchInset, Y: y,
				Width: legendSwatchSize, Height: legendSwatchSize,
				Fill: scale.Category10.Color(i),
			},
			Label: Text{
				X: width - legendLabelInset, Y: y + 9,
				Content: name, Class: "label", FontSize: legendFontSize,
			},
		})
	}

	lineColors := make([]string, len(filtered))
	for i, s := range filtered {
		lineColors[i] = s.Color
	}

	for i, s := range filtered {
		scene.Lines = append(scene.Lines, Line{
			ID:      "line-" + strings.ToLower(s.Name),
			Series:  s.Name,
			Stroke:  lineColors[i],
			Opacity: LineOpacity,
			Path:    linePath(s.Points, sc),
		})
	}

	for i, s := range filtered {
		group := PointGroup{Series: s.Name, Fill: lineColors[i]}
		for j, p := range s.Points {
			group.Circles = append(group.Circles, Circle{
				Ref:   PointRef{Series: s.Name, Index: j},
				CX:    sc.X.Map(p.Date),
				CY:    sc.Y.Map(p.Value),
				R:     CircleRadius,
				Date:  p.Date,
				Value: p.Value,
			})
		}
		scene.Points = append(scene.Points, group)
	}

	scene.XAxis = Axis{Class: "x axis", TranslateY: height - Margin, Range: sc.X.Range}
	for _, tk := range sc.X.Ticks(DefaultXTicks) {
		scene.XAxis.Ticks = append(scene.XAxis.Ticks, Tick{Pos: sc.X.Map(tk.At), Label: tk.Label})
	}

	scene.YAxis = Axis{Class: "y axis", Range: sc.Y.Range}
	for _, v := range sc.Y.Ticks(YTickCount(vis)) {
		scene.YAxis.Ticks = append(scene.YAxis.Ticks, Tick{Pos: sc.Y.Map(v), Label: format.Grouped(v)})
	}

	return scene
}

// YTickCount returns the y-axis tick count for the current selection
func YTickCount(vis legend.Visibility) int {
	if vis != nil && vis.Len() == suppressYTicksAt {
		return 0
	}
	return DefaultYTicks
}

// linePath builds an SVG path through the points in their given order
func linePath(points []models.PlottedPoint, sc scale.Scales) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(num(sc.X.Map(p.Date)))
		b.WriteByte(',')
		b.WriteString(num(sc.Y.Map(p.Value)))
	}
	return b.String()
}

// num prints a coordinate with at most three decimals
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// allSelected is the visibility of a chart with no legend controller
type allSelected int

func (n allSelected) IsHidden(string) bool { return false }

func (n allSelected) Len() int { return int(n) }

func (n allSelected) Filter(dataset []models.Series) []models.Series { return dataset }

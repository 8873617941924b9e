package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"trendchart/internal/format"
	"trendchart/internal/scale"
)

// WritePNG renders a static snapshot of a scene. Series, colors, domains
// and y ticks follow the scene; hover state is not part of the snapshot.
// Hidden series and unparseable dates are noted in a caption.
func WritePNG(w io.Writer, scene *Scene) error {
	graph, err := snapshotChart(scene)
	if err != nil {
		return err
	}
	hint := snapshotHint(scene)
	if hint == "" {
		if err := graph.Render(chart.PNG, w); err != nil {
			return fmt.Errorf("failed to render chart snapshot: %w", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("failed to render chart snapshot: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return fmt.Errorf("failed to decode chart snapshot: %w", err)
	}
	if err := png.Encode(w, drawHint(img, hint)); err != nil {
		return fmt.Errorf("failed to encode chart snapshot: %w", err)
	}
	return nil
}

// snapshotHint describes what the snapshot leaves out, or "" when nothing is
func snapshotHint(scene *Scene) string {
	var hidden []string
	for _, e := range scene.Legend {
		if e.Hidden {
			hidden = append(hidden, e.Name)
		}
	}
	var parts []string
	if len(hidden) > 0 && len(scene.Lines) < len(scene.Legend) {
		parts = append(parts, "Hidden: "+strings.Join(hidden, ", "))
	}
	if scene.InvalidPoints > 0 {
		parts = append(parts, fmt.Sprintf("%d unparseable date(s)", scene.InvalidPoints))
	}
	return strings.Join(parts, "; ")
}

// drawHint writes text on a dark strip in the bottom-left corner
func drawHint(img image.Image, text string) image.Image {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	const pad = 6
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: rgba, Src: image.NewUniform(color.White), Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6

	bg := image.NewUniform(color.RGBA{A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)

	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}

// snapshotChart converts a scene into a go-chart time series chart
func snapshotChart(scene *Scene) (*chart.Chart, error) {
	if scene == nil {
		return nil, fmt.Errorf("no scene to render")
	}

	sc := scene.Scales
	if !sc.X.Domain[1].After(sc.X.Domain[0]) {
		return nil, fmt.Errorf("cannot render snapshot: empty date range")
	}
	if sc.Y.Domain[1] <= sc.Y.Domain[0] {
		return nil, fmt.Errorf("cannot render snapshot: empty value range")
	}

	graph := &chart.Chart{
		Width:  int(scene.Width),
		Height: int(scene.Height),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		XAxis: chart.XAxis{
			Style: chart.Style{
				FontSize: 9,
			},
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(sc.X.Domain[0]),
				Max: chart.TimeToFloat64(sc.X.Domain[1]),
			},
			Ticks: timeTicks(sc.X),
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontSize: 10,
			},
			Range: &chart.ContinuousRange{
				Min: sc.Y.Domain[0],
				Max: sc.Y.Domain[1],
			},
		},
	}

	if len(scene.YAxis.Ticks) == 0 {
		graph.YAxis.Style.Hidden = true
	} else {
		for _, v := range sc.Y.Ticks(len(scene.YAxis.Ticks)) {
			graph.YAxis.Ticks = append(graph.YAxis.Ticks, chart.Tick{Value: v, Label: format.Grouped(v)})
		}
	}

	for i, g := range scene.Points {
		stroke := parseColor(g.Fill, drawing.ColorFromHex(strings.TrimPrefix(scale.Category10.Color(i), "#")))
		ts := chart.TimeSeries{
			Name: g.Series,
			Style: chart.Style{
				StrokeColor: stroke.WithAlpha(lineAlpha),
				StrokeWidth: 1.5,
				DotColor:    stroke,
				DotWidth:    CircleRadius,
			},
		}
		for _, c := range g.Circles {
			if c.Date.IsZero() {
				continue
			}
			ts.XValues = append(ts.XValues, c.Date)
			ts.YValues = append(ts.YValues, c.Value)
		}
		if len(ts.XValues) == 0 {
			continue
		}
		graph.Series = append(graph.Series, ts)
	}
	if len(graph.Series) == 0 {
		return nil, fmt.Errorf("cannot render snapshot: no drawable series")
	}

	graph.Elements = []chart.Renderable{chart.Legend(graph)}
	return graph, nil
}

func timeTicks(x scale.Time) []chart.Tick {
	var ticks []chart.Tick
	for _, tk := range x.Ticks(DefaultXTicks) {
		ticks = append(ticks, chart.Tick{Value: chart.TimeToFloat64(tk.At), Label: tk.Label})
	}
	return ticks
}

// parseColor reads "#rgb" or "#rrggbb", returning fallback for anything else
func parseColor(s string, fallback drawing.Color) drawing.Color {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return fallback
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fallback
		}
	}
	return drawing.ColorFromHex(hex)
}

package reports

import (
	"fmt"
	"io"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"trendchart/internal/charts"
	"trendchart/internal/models"
)

// EChartsOptions controls the standalone ECharts page
type EChartsOptions struct {
	Title   string
	ChartID string
}

// EChartsPage writes a self-contained HTML page drawing the chart with
// ECharts. Every series of the full dataset is listed in the legend; hidden
// series start deselected so the page opens in the same state as the
// server-side render.
func EChartsPage(w io.Writer, st charts.State, o EChartsOptions) error {
	line, err := buildLine(st, o)
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render echarts page: %w", err)
	}
	return nil
}

func buildLine(st charts.State, o EChartsOptions) (*echarts.Line, error) {
	if st.Viewport.Width <= 0 || st.Viewport.Height <= 0 {
		return nil, fmt.Errorf("cannot build echarts page for a %vx%v viewport", st.Viewport.Width, st.Viewport.Height)
	}
	title := o.Title
	if title == "" {
		title = "Trend chart"
	}

	scene := charts.Render(st)
	drawn := make(map[string]bool, len(scene.Lines))
	for _, l := range scene.Lines {
		drawn[l.Series] = true
	}

	line := echarts.NewLine()
	yAxis := opts.YAxis{
		Type:        "value",
		Min:         scene.Scales.Y.Domain[0],
		Max:         scene.Scales.Y.Domain[1],
		SplitNumber: len(scene.YAxis.Ticks),
	}
	if len(scene.YAxis.Ticks) == 0 {
		yAxis.AxisLabel = &opts.AxisLabel{Show: false}
	}
	line.SetGlobalOptions(
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			ChartID:   o.ChartID,
			Width:     fmt.Sprintf("%dpx", int(scene.Width)),
			Height:    fmt.Sprintf("%dpx", int(scene.Height)),
		}),
		echarts.WithTitleOpts(opts.Title{Title: title}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "item"}),
		echarts.WithLegendOpts(opts.Legend{Show: true, Right: "0", Orient: "vertical", Selected: selection(st.Data, drawn)}),
		echarts.WithXAxisOpts(opts.XAxis{
			Type: "time",
			Min:  scene.Scales.X.Domain[0].UnixMilli(),
			Max:  scene.Scales.X.Domain[1].UnixMilli(),
		}),
		echarts.WithYAxisOpts(yAxis),
	)

	for _, s := range models.Prepare(st.Data, st.Mode) {
		data := make([]opts.LineData, 0, len(s.Points))
		for _, p := range s.Points {
			if !p.Valid {
				continue
			}
			data = append(data, opts.LineData{Value: []interface{}{p.Date.UnixMilli(), p.Value}})
		}
		line.AddSeries(s.Name, data,
			echarts.WithLineChartOpts(opts.LineChart{ShowSymbol: true}),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color}),
			echarts.WithLineStyleOpts(opts.LineStyle{Color: s.Color, Opacity: charts.LineOpacity}),
		)
	}
	return line, nil
}

// selection maps every series name to whether it is drawn
func selection(data []models.Series, drawn map[string]bool) map[string]bool {
	out := make(map[string]bool, len(data))
	for _, name := range models.Names(data) {
		out[name] = drawn[name]
	}
	return out
}

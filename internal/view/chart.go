// Package view owns one interactive chart: its dataset, legend state and
// render surface. Data changes, mode changes and resizes reset the legend
// and rebuild everything; legend clicks rebuild with the current selection.
//
// A Chart is not safe for concurrent use. Callers that receive events from
// several goroutines must serialize them.
package view

import (
	"trendchart/internal/charts"
	"trendchart/internal/interaction"
	"trendchart/internal/legend"
	"trendchart/internal/logger"
	"trendchart/internal/models"
)

// Container is the element the chart is drawn into
type Container interface {
	// Size returns the measured width and height, margins included
	Size() (width, height float64)
}

// FixedContainer is a Container with an explicitly set size
type FixedContainer struct {
	Width, Height float64
}

// Size implements Container
func (c *FixedContainer) Size() (float64, float64) {
	return c.Width, c.Height
}

// SetSize changes the size reported on the next measurement
func (c *FixedContainer) SetSize(width, height float64) {
	c.Width = width
	c.Height = height
}

// Chart is the resize/change orchestrator for one chart instance
type Chart struct {
	container Container
	margins   charts.Margins
	legend    *legend.Controller
	surface   *charts.Surface
	log       *logger.Logger

	data     []models.Series
	mode     models.Mode
	hasData  bool
	viewport charts.Viewport
}

// Option configures a Chart
type Option func(*Chart)

// WithMargins overrides the default 50px margins
func WithMargins(m charts.Margins) Option {
	return func(c *Chart) {
		c.margins = m
	}
}

// WithLogger sets the logger used for rebuild diagnostics
func WithLogger(l *logger.Logger) Option {
	return func(c *Chart) {
		c.log = l
	}
}

// New creates a chart drawing into container. Nothing is drawn until data
// arrives.
func New(container Container, opts ...Option) *Chart {
	c := &Chart{
		container: container,
		margins:   charts.DefaultMargins,
		legend:    legend.NewController(),
		surface:   charts.NewSurface(),
		log:       logger.GetGlobalLogger().WithComponent("view"),
		mode:      models.DefaultMode,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetData replaces the dataset and mode. A nil dataset is ignored and the
// previous render is left as it is.
func (c *Chart) SetData(series []models.Series, mode models.Mode) {
	if series == nil {
		c.log.Debug("Ignoring change without chart data")
		return
	}
	c.data = series
	c.mode = mode
	c.hasData = true
	c.refresh("data")
}

// SetMode replaces only the mode; the dataset is kept
func (c *Chart) SetMode(mode models.Mode) {
	c.mode = mode
	if !c.hasData {
		return
	}
	c.refresh("mode")
}

// Resize re-measures the container and redraws. All series become visible
// again.
func (c *Chart) Resize() {
	if !c.hasData {
		return
	}
	c.refresh("resize")
}

// refresh is the shared path of every orchestrator trigger
func (c *Chart) refresh(trigger string) {
	w, h := c.container.Size()
	c.viewport = charts.Viewport{Width: w, Height: h}
	c.legend.Reset(c.data)
	c.log.Debug("Refreshing chart", map[string]interface{}{
		"trigger": trigger,
		"width":   w,
		"height":  h,
		"series":  len(c.data),
		"mode":    string(c.mode),
	})
	c.Rebuild()
}

// Rebuild renders the current state from scratch and replaces the surface
// content, discarding any hover labels.
func (c *Chart) Rebuild() {
	if !c.hasData {
		return
	}
	scene := charts.Render(c.State())
	c.surface.Replace(scene)

	if scene.InvalidPoints > 0 {
		c.log.Warn("Series contain unparseable dates", map[string]interface{}{
			"invalid_points": scene.InvalidPoints,
			"mode":           string(c.mode),
		})
	}
	c.log.Debug("Chart rebuilt", map[string]interface{}{
		"visible": c.legend.Len(),
		"lines":   len(scene.Lines),
		"circles": scene.CircleCount(),
	})
}

// Toggle handles a click on the legend entry for name
func (c *Chart) Toggle(name string) {
	if !c.hasData {
		return
	}
	interaction.LegendClick(c.legend, c, name)
}

// HoverEnter handles the pointer entering a point marker
func (c *Chart) HoverEnter(ref charts.PointRef) bool {
	return interaction.PointEnter(c.surface, ref)
}

// HoverExit handles the pointer leaving a point marker
func (c *Chart) HoverExit(ref charts.PointRef) bool {
	return interaction.PointExit(c.surface, ref)
}

// State returns the inputs of the next render
func (c *Chart) State() charts.State {
	return charts.State{
		Data:       c.data,
		Mode:       c.mode,
		Visibility: c.legend,
		Viewport:   c.viewport,
		Margins:    c.margins,
	}
}

// Scene returns the current render, or nil before the first one
func (c *Chart) Scene() *charts.Scene {
	return c.surface.Scene()
}

// Rebuilds returns how many full renders have happened
func (c *Chart) Rebuilds() int {
	return c.surface.Rebuilds()
}

// Data returns the full dataset
func (c *Chart) Data() []models.Series {
	return c.data
}

// Mode returns the active mode
func (c *Chart) Mode() models.Mode {
	return c.mode
}

// HasData reports whether a dataset has been received
func (c *Chart) HasData() bool {
	return c.hasData
}

// Visible returns the names currently selected in the legend
func (c *Chart) Visible() []string {
	return c.legend.Visible()
}

// Filtered returns the series that are actually drawn
func (c *Chart) Filtered() []models.Series {
	return c.legend.Filter(c.data)
}

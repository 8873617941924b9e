package reports

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"trendchart/internal/charts"
	"trendchart/internal/models"
)

//go:embed templates/index.html
var templateFS embed.FS

// PageInfo carries the page fields that do not come from the chart
type PageInfo struct {
	Title       string
	Version     string
	GeneratedAt time.Time
}

// ModeLink is one entry of the mode switcher
type ModeLink struct {
	Name   string
	Active bool
}

// LegendLink is one legend toggle form
type LegendLink struct {
	Name   string
	Hidden bool
}

// TemplateData represents the data structure for the HTML template
type TemplateData struct {
	Title       string
	Version     string
	GeneratedAt string
	HasChart    bool
	SVG         template.HTML
	Summary     template.HTML
	Modes       []ModeLink
	Legend      []LegendLink
}

// PageBuilder renders the interactive index page
type PageBuilder struct {
	tmpl    *template.Template
	summary *SummaryBuilder
}

// NewPageBuilder parses the embedded page template
func NewPageBuilder() (*PageBuilder, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &PageBuilder{tmpl: tmpl, summary: NewSummaryBuilder()}, nil
}

// Summary returns the builder used for the data summary section
func (p *PageBuilder) Summary() *SummaryBuilder {
	return p.summary
}

// IndexPage writes the page for the current chart. scene is the content of
// the render surface, hover labels included; nil means nothing is drawn yet.
func (p *PageBuilder) IndexPage(w io.Writer, st charts.State, scene *charts.Scene, info PageInfo) error {
	data := TemplateData{
		Title:   info.Title,
		Version: info.Version,
	}
	if data.Title == "" {
		data.Title = "Trend chart"
	}
	if info.GeneratedAt.IsZero() {
		info.GeneratedAt = time.Now()
	}
	data.GeneratedAt = info.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")

	for _, m := range models.Modes {
		data.Modes = append(data.Modes, ModeLink{Name: string(m), Active: m == st.Mode})
	}

	if scene != nil {
		var svg bytes.Buffer
		if err := charts.WriteSVG(&svg, scene); err != nil {
			return fmt.Errorf("failed to encode chart: %w", err)
		}
		data.HasChart = true
		data.SVG = template.HTML(svg.String())
		for _, e := range scene.Legend {
			data.Legend = append(data.Legend, LegendLink{Name: e.Name, Hidden: e.Hidden})
		}

		summary, err := p.summary.HTML(st)
		if err != nil {
			return err
		}
		data.Summary = summary
	}

	if err := p.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

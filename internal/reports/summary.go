package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"trendchart/internal/charts"
	"trendchart/internal/interaction"
	"trendchart/internal/models"
)

// SummaryBuilder renders a markdown overview of the dataset and converts it
// to HTML with goldmark
type SummaryBuilder struct {
	goldmark goldmark.Markdown
}

// NewSummaryBuilder creates a summary builder with GFM tables enabled
func NewSummaryBuilder() *SummaryBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &SummaryBuilder{goldmark: md}
}

// Markdown describes every series of the full dataset: point count, value
// range, latest value and whether it is currently drawn. Values use the
// same formatting as hover labels.
func (b *SummaryBuilder) Markdown(st charts.State) string {
	scene := charts.Render(st)

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Data summary (%s)\n\n", modeName(st.Mode))
	if len(st.Data) == 0 {
		sb.WriteString("_No series loaded._\n")
		return sb.String()
	}

	sb.WriteString("| Series | Points | Min | Max | Latest | Drawn |\n")
	sb.WriteString("|---|---:|---:|---:|---:|:---:|\n")
	for _, s := range st.Data {
		drawn := "no"
		if scene.LineFor(s.Name) != nil {
			drawn = "yes"
		}
		if len(s.Values) == 0 {
			fmt.Fprintf(&sb, "| %s | 0 | - | - | - | %s |\n", escapeCell(s.Name), drawn)
			continue
		}
		lo, hi := s.Values[0].Value, s.Values[0].Value
		for _, p := range s.Values[1:] {
			if p.Value < lo {
				lo = p.Value
			}
			if p.Value > hi {
				hi = p.Value
			}
		}
		latest := s.Values[len(s.Values)-1]
		fmt.Fprintf(&sb, "| %s | %d | %s | %s | %s (%s) | %s |\n",
			escapeCell(s.Name), len(s.Values),
			interaction.FormatValue(s.Name, lo),
			interaction.FormatValue(s.Name, hi),
			interaction.FormatValue(s.Name, latest.Value), escapeCell(latest.Date),
			drawn)
	}

	if scene.InvalidPoints > 0 {
		fmt.Fprintf(&sb, "\n**Warning:** %d drawn point(s) have dates that do not match the %s format.\n",
			scene.InvalidPoints, modeName(st.Mode))
	}
	return sb.String()
}

// HTML renders the summary markdown to HTML
func (b *SummaryBuilder) HTML(st charts.State) (template.HTML, error) {
	out, err := b.ConvertMarkdownToHTML(b.Markdown(st))
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (b *SummaryBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := b.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

func modeName(m models.Mode) string {
	if m == "" {
		return string(models.DefaultMode)
	}
	return string(m)
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}

package charts

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"strconv"
	"time"
)

// WriteSVG encodes a scene as a standalone SVG document.
// Element ids and classes mirror the scene so stylesheets and scripts can
// address legend entries ("legend-<name>"), lines ("line-<name>") and points.
func WriteSVG(w io.Writer, scene *Scene) error {
	if scene == nil {
		return fmt.Errorf("no scene to encode")
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`, num(scene.Width), num(scene.Height))
	bw.WriteString("\n")
	fmt.Fprintf(bw, `<g transform="translate(%s, %s)">`, num(scene.Offset), num(scene.Offset))
	bw.WriteString("\n")

	for _, e := range scene.Legend {
		class := "legend"
		if e.Hidden {
			class += " hidden"
		}
		fmt.Fprintf(bw, `<g class="%s" id="%s" data-name="%s">`, class, attr(e.ID), attr(e.Name))
		fmt.Fprintf(bw, `<rect x="%s" y="%s" width="%s" height="%s" style="fill: %s"></rect>`,
			num(e.Swatch.X), num(e.Swatch.Y), num(e.Swatch.Width), num(e.Swatch.Height), attr(e.Swatch.Fill))
		writeText(bw, e.Label)
		bw.WriteString("</g>\n")
	}

	bw.WriteString(`<g class="lines">` + "\n")
	for _, l := range scene.Lines {
		fmt.Fprintf(bw, `<g class="line-group" id="%s"><path class="line" d="%s" fill="none" style="stroke: %s; opacity: %s"></path></g>`,
			attr(l.ID), l.Path, attr(l.Stroke), num(l.Opacity))
		bw.WriteString("\n")
	}
	for _, g := range scene.Points {
		fmt.Fprintf(bw, `<g style="fill: %s">`, attr(g.Fill))
		for _, c := range g.Circles {
			writeCircle(bw, scene, c)
		}
		bw.WriteString("</g>\n")
	}
	bw.WriteString("</g>\n")

	writeXAxis(bw, scene.XAxis)
	writeYAxis(bw, scene.YAxis)

	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}

func writeCircle(bw *bufio.Writer, scene *Scene, c Circle) {
	fmt.Fprintf(bw, `<g class="circle" data-series="%s" data-index="%d"`, attr(c.Ref.Series), c.Ref.Index)
	if c.Cursor != "" {
		fmt.Fprintf(bw, ` style="cursor: %s"`, attr(c.Cursor))
	}
	bw.WriteString(">")

	fmt.Fprintf(bw, `<circle cx="%s" cy="%s" r="%s">`, num(c.CX), num(c.CY), num(c.R))
	if t := c.Transition; t != nil {
		fmt.Fprintf(bw, `<animate attributeName="%s" from="%s" to="%s" dur="%s" fill="freeze"></animate>`,
			attr(t.Attr), num(t.From), num(t.To), duration(t.Duration))
	}
	bw.WriteString("</circle>")

	for _, l := range scene.HoverLabels {
		if l.Ref == c.Ref {
			writeText(bw, l.Text)
		}
	}
	bw.WriteString("</g>")
}

func writeXAxis(bw *bufio.Writer, a Axis) {
	fmt.Fprintf(bw, `<g class="%s" transform="translate(0, %s)">`, attr(a.Class), num(a.TranslateY))
	fmt.Fprintf(bw, `<path class="domain" stroke="currentColor" d="M%s,6V0H%sV6"></path>`, num(a.Range[0]), num(a.Range[1]))
	for _, t := range a.Ticks {
		fmt.Fprintf(bw, `<g class="tick" transform="translate(%s, 0)"><line stroke="currentColor" y2="6"></line><text fill="currentColor" y="9" dy="0.71em" text-anchor="middle">%s</text></g>`,
			num(t.Pos), html.EscapeString(t.Label))
	}
	bw.WriteString("</g>\n")
}

func writeYAxis(bw *bufio.Writer, a Axis) {
	fmt.Fprintf(bw, `<g class="%s">`, attr(a.Class))
	fmt.Fprintf(bw, `<path class="domain" stroke="currentColor" d="M-6,%sH0V%sH-6"></path>`, num(a.Range[0]), num(a.Range[1]))
	for _, t := range a.Ticks {
		fmt.Fprintf(bw, `<g class="tick" transform="translate(0, %s)"><line stroke="currentColor" x2="-6"></line><text fill="currentColor" x="-9" dy="0.32em" text-anchor="end">%s</text></g>`,
			num(t.Pos), html.EscapeString(t.Label))
	}
	bw.WriteString("</g>\n")
}

func writeText(bw *bufio.Writer, t Text) {
	bw.WriteString("<text")
	if t.Class != "" {
		fmt.Fprintf(bw, ` class="%s"`, attr(t.Class))
	}
	fmt.Fprintf(bw, ` x="%s" y="%s"`, num(t.X), num(t.Y))
	if t.FontSize > 0 {
		fmt.Fprintf(bw, ` style="font-size: %spx"`, num(t.FontSize))
	}
	bw.WriteString(">")
	bw.WriteString(html.EscapeString(t.Content))
	bw.WriteString("</text>")
}

func attr(s string) string {
	return html.EscapeString(s)
}

func duration(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Series is one named line on the multi-series chart. Values align with the
// label axis; NaN is not allowed, use 0 for missing months.
type Series struct {
	Name   string
	Values []float64
}

// MultiLine renders one polyline per series across a shared label axis.
func MultiLine(width, height int, series []Series, labels []string, opts LineOpts) (template.HTML, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("svg: series required")
	}
	for _, s := range series {
		if len(s.Values) != len(labels) {
			return "", fmt.Errorf("svg: series %q length must match labels", s.Name)
		}
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	tickCount := opts.TickCount
	if tickCount <= 0 {
		tickCount = DefaultTicks
	}
	axisColor := fallback(opts.AxisColor, "#475569")
	gridColor := fallback(opts.GridColor, "#cbd5f5")

	chartWidth := float64(width) - 2*padding
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	minVal, maxVal := 0.0, 0.0
	for _, s := range series {
		for _, v := range s.Values {
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	scale := chartHeight / (maxVal - minVal)

	step := 0.0
	if len(labels) > 1 {
		step = chartWidth / float64(len(labels)-1)
	}
	pointX := func(i int) float64 {
		if len(labels) > 1 {
			return padding + float64(i)*step
		}
		return padding + chartWidth/2
	}
	pointY := func(v float64) float64 {
		return padding + chartHeight - (v-minVal)*scale
	}

	var b strings.Builder
	openSVG(&b, width, height, opts.Title, opts.Description, "Line chart", "Trend data", "line")
	writeGrid(&b, padding, chartWidth, chartHeight, minVal, maxVal, tickCount, gridColor, axisColor)
	writeAxes(&b, padding, chartWidth, chartHeight, axisColor)

	for idx, s := range series {
		color := seriesColor(idx)
		var path strings.Builder
		for i, value := range s.Values {
			if i == 0 {
				path.WriteString(fmt.Sprintf("M%.2f %.2f", pointX(i), pointY(value)))
			} else {
				path.WriteString(fmt.Sprintf(" L%.2f %.2f", pointX(i), pointY(value)))
			}
		}
		b.WriteString(fmt.Sprintf("<path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"2\" stroke-linejoin=\"round\" stroke-linecap=\"round\"></path>", path.String(), color))

		if opts.ShowDots {
			for i, value := range s.Values {
				b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"2.5\" fill=\"%s\"></circle>", pointX(i), pointY(value), color))
			}
		}
	}

	// X-axis labels
	for i, label := range labels {
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", pointX(i), padding+chartHeight+14, axisColor, template.HTMLEscapeString(label)))
	}

	// Legend
	legendY := 14.0
	legendX := padding
	for idx, s := range series {
		color := seriesColor(idx)
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", legendX, legendY-9, color))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\">%s</text>", legendX+14, legendY, axisColor, template.HTMLEscapeString(s.Name)))
		legendX += 24 + float64(7*len(s.Name))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

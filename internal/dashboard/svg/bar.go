package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Bars renders a single-series bar chart with one bar per label, each bar
// colored by its label position so categories keep a stable hue across
// charts.
func Bars(width, height int, values []float64, labels []string, opts BarOpts) (template.HTML, error) {
	if len(labels) == 0 {
		return "", fmt.Errorf("svg: labels required")
	}
	if len(values) != len(labels) {
		return "", fmt.Errorf("svg: values length must match labels")
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
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if almostEqual(maxVal, minVal) {
		maxVal = minVal + 1
	}
	scale := chartHeight / (maxVal - minVal)
	zeroY := padding + chartHeight - (0-minVal)*scale

	groupWidth := chartWidth / float64(len(labels))
	barWidth := groupWidth * 0.6

	var b strings.Builder
	openSVG(&b, width, height, opts.Title, opts.Description, "Bar chart", "Category comparison", "bar")
	writeGrid(&b, padding, chartWidth, chartHeight, minVal, maxVal, tickCount, gridColor, axisColor)
	writeAxes(&b, padding, chartWidth, chartHeight, axisColor)

	for i, value := range values {
		x := padding + float64(i)*groupWidth + (groupWidth-barWidth)/2
		barHeight := (value - 0) * scale
		y := zeroY - barHeight
		if barHeight < 0 {
			y = zeroY
			barHeight = -barHeight
		}
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"><title>%s: %s</title></rect>",
			x, y, barWidth, barHeight, seriesColor(i), template.HTMLEscapeString(labels[i]), template.HTMLEscapeString(formatTick(value))))
	}

	for i, label := range labels {
		x := padding + float64(i)*groupWidth + groupWidth/2
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"10\" text-anchor=\"middle\">%s</text>", x, padding+chartHeight+14, axisColor, template.HTMLEscapeString(label)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

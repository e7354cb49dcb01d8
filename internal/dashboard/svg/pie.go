package svg

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

// Pie renders a pie chart with a legend. Negative values are rejected;
// a zero-sum input renders an empty placeholder circle.
func Pie(width, height int, values []float64, labels []string, opts PieOpts) (template.HTML, error) {
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

	var total float64
	for _, v := range values {
		if v < 0 {
			return "", fmt.Errorf("svg: negative slice value")
		}
		total += v
	}

	cx := float64(height) / 2
	cy := float64(height) / 2
	radius := float64(height)/2 - 16

	var b strings.Builder
	openSVG(&b, width, height, opts.Title, opts.Description, "Pie chart", "Share by category", "pie")

	if total == 0 {
		b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"#e2e8f0\"></circle>", cx, cy, radius))
		b.WriteString("</svg>")
		return template.HTML(b.String()), nil
	}

	angle := -math.Pi / 2
	for i, value := range values {
		if value == 0 {
			continue
		}
		share := value / total
		start := angle
		end := angle + share*2*math.Pi
		angle = end

		color := seriesColor(i)
		slice := fmt.Sprintf("<title>%s: %s (%.1f%%)</title>",
			template.HTMLEscapeString(labels[i]), template.HTMLEscapeString(formatTick(value)), share*100)

		if almostEqual(share, 1) {
			b.WriteString(fmt.Sprintf("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\">%s</circle>", cx, cy, radius, color, slice))
			continue
		}

		x1 := cx + radius*math.Cos(start)
		y1 := cy + radius*math.Sin(start)
		x2 := cx + radius*math.Cos(end)
		y2 := cy + radius*math.Sin(end)
		largeArc := 0
		if share > 0.5 {
			largeArc = 1
		}
		b.WriteString(fmt.Sprintf("<path d=\"M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z\" fill=\"%s\">%s</path>",
			cx, cy, x1, y1, radius, radius, largeArc, x2, y2, color, slice))
	}

	// Legend to the right of the pie
	legendX := float64(height) + 16
	legendY := 24.0
	for i, label := range labels {
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"10\" height=\"10\" fill=\"%s\"></rect>", legendX, legendY-9, seriesColor(i)))
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"#475569\" font-size=\"11\">%s (%s)</text>",
			legendX+14, legendY, template.HTMLEscapeString(label), template.HTMLEscapeString(formatTick(values[i]))))
		legendY += 18
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

package svg

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// tileGrid places each state on the familiar squares-layout of the US,
// keyed by postal code with (column, row) positions.
var tileGrid = map[string][2]int{
	"AK": {0, 0}, "ME": {10, 0},
	"VT": {9, 1}, "NH": {10, 1},
	"WA": {0, 2}, "ID": {1, 2}, "MT": {2, 2}, "ND": {3, 2}, "MN": {4, 2},
	"WI": {5, 2}, "MI": {6, 2}, "NY": {8, 2}, "MA": {9, 2}, "RI": {10, 2},
	"OR": {0, 3}, "NV": {1, 3}, "WY": {2, 3}, "SD": {3, 3}, "IA": {4, 3},
	"IL": {5, 3}, "IN": {6, 3}, "OH": {7, 3}, "PA": {8, 3}, "NJ": {9, 3}, "CT": {10, 3},
	"CA": {0, 4}, "UT": {1, 4}, "CO": {2, 4}, "NE": {3, 4}, "MO": {4, 4},
	"KY": {5, 4}, "WV": {6, 4}, "VA": {7, 4}, "MD": {8, 4}, "DE": {9, 4},
	"AZ": {1, 5}, "NM": {2, 5}, "KS": {3, 5}, "AR": {4, 5}, "TN": {5, 5},
	"NC": {6, 5}, "SC": {7, 5},
	"OK": {3, 6}, "LA": {4, 6}, "MS": {5, 6}, "AL": {6, 6}, "GA": {7, 6},
	"HI": {0, 7}, "TX": {3, 7}, "FL": {7, 7},
}

const (
	gridColumns = 11
	gridRows    = 8
)

// USMap renders a choropleth tile map of the US. Tile fill intensity scales
// linearly with revenue; states without data render in the empty tone so the
// country outline stays recognizable even under narrow filters.
func USMap(width, height int, revenue map[string]float64, opts MapOpts) (template.HTML, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	lowColor := fallback(opts.LowColor, "#dbeafe")
	highColor := fallback(opts.HighColor, "#1e3a8a")
	emptyColor := fallback(opts.EmptyColor, "#e2e8f0")

	tile := float64(height) / float64(gridRows+1)
	if t := float64(width) / float64(gridColumns+1); t < tile {
		tile = t
	}
	if tile < 8 {
		return "", fmt.Errorf("svg: viewport too small")
	}
	gap := tile * 0.08
	offsetX := (float64(width) - tile*gridColumns) / 2
	offsetY := (float64(height) - tile*gridRows) / 2

	var maxVal float64
	for _, v := range revenue {
		if v > maxVal {
			maxVal = v
		}
	}

	codes := make([]string, 0, len(tileGrid))
	for code := range tileGrid {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var b strings.Builder
	openSVG(&b, width, height, opts.Title, opts.Description, "US map", "Revenue by state", "usmap")

	for _, code := range codes {
		pos := tileGrid[code]
		x := offsetX + float64(pos[0])*tile + gap
		y := offsetY + float64(pos[1])*tile + gap
		size := tile - 2*gap

		fill := emptyColor
		labelColor := "#475569"
		if value, ok := revenue[code]; ok && maxVal > 0 {
			ratio := value / maxVal
			fill = blend(lowColor, highColor, ratio)
			if ratio > 0.55 {
				labelColor = "#f8fafc"
			}
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" rx=\"2\" fill=\"%s\"><title>%s: %s</title></rect>",
				x, y, size, size, fill, code, template.HTMLEscapeString(formatTick(value))))
		} else {
			b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" rx=\"2\" fill=\"%s\"></rect>", x, y, size, size, fill))
		}
		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"%.0f\" text-anchor=\"middle\">%s</text>",
			x+size/2, y+size/2+3, labelColor, tile*0.3, code))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// blend linearly interpolates between two hex colors.
func blend(low, high string, ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	lr, lg, lb, okLow := parseHex(low)
	hr, hg, hb, okHigh := parseHex(high)
	if !okLow || !okHigh {
		return low
	}
	r := lr + int(ratio*float64(hr-lr))
	g := lg + int(ratio*float64(hg-lg))
	b := lb + int(ratio*float64(hb-lb))
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func parseHex(color string) (int, int, int, bool) {
	color = strings.TrimPrefix(color, "#")
	if len(color) != 6 {
		return 0, 0, 0, false
	}
	var r, g, b int
	if _, err := fmt.Sscanf(color, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

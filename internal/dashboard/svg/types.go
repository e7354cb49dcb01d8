package svg

// LineOpts customises the multi-series line chart renderer.
type LineOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	ShowDots    bool
	TickCount   int
}

// BarOpts customises the bar chart renderer.
type BarOpts struct {
	Title       string
	Description string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
}

// PieOpts customises the pie chart renderer.
type PieOpts struct {
	Title       string
	Description string
}

// MapOpts customises the choropleth tile map renderer.
type MapOpts struct {
	Title       string
	Description string
	LowColor    string
	HighColor   string
	EmptyColor  string
}

// Defaults for the dashboard charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 300
	DefaultPadding = 32.0
	DefaultTicks   = 6
)

// palette provides the qualitative series colors, cycled when a chart has
// more categories than entries.
var palette = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
	"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
}

func seriesColor(i int) string {
	return palette[i%len(palette)]
}

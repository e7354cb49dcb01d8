package dashboard

import (
	"html/template"
	"sort"

	"github.com/retailpulse/retailpulse/internal/aggregate"
	"github.com/retailpulse/retailpulse/internal/dataset"
	"github.com/retailpulse/retailpulse/internal/dashboard/svg"
)

// LineRenderer renders the multi-series revenue-over-time chart.
type LineRenderer interface {
	MultiLine(width, height int, series []svg.Series, labels []string, opts svg.LineOpts) (template.HTML, error)
}

// BarRenderer renders the category bar chart.
type BarRenderer interface {
	Bars(width, height int, values []float64, labels []string, opts svg.BarOpts) (template.HTML, error)
}

// PieRenderer renders the category share pie chart.
type PieRenderer interface {
	Pie(width, height int, values []float64, labels []string, opts svg.PieOpts) (template.HTML, error)
}

// MapRenderer renders the choropleth state map.
type MapRenderer interface {
	USMap(width, height int, revenue map[string]float64, opts svg.MapOpts) (template.HTML, error)
}

// Renderers bundles the four chart renderers the handler depends on.
type Renderers struct {
	Line LineRenderer
	Bar  BarRenderer
	Pie  PieRenderer
	Map  MapRenderer
}

// OptionsViewModel feeds the three dropdowns; derived once from the
// aggregate table's distinct values.
type OptionsViewModel struct {
	States   []string
	Quarters []string
	Products []string
}

// SelectedViewModel marks which options are active in the current selection.
type SelectedViewModel struct {
	States   map[string]bool
	Quarters map[string]bool
	Products map[string]bool
}

// ChartsViewModel holds the four rendered figures. An empty field means the
// selection matched no rows; the template shows a blank-state message.
type ChartsViewModel struct {
	Heatmap template.HTML
	Pie     template.HTML
	Line    template.HTML
	Bar     template.HTML
}

// ViewModel is the full dashboard page model. Summary never changes after
// startup; everything else follows the active selection.
type ViewModel struct {
	Summary  dataset.Summary
	Options  OptionsViewModel
	Selected SelectedViewModel
	Charts   ChartsViewModel
}

func toSelectionSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// buildCharts renders the four figures from one aggregation pass. All four
// are produced together so the page never mixes chart states.
func buildCharts(set aggregate.ChartSet, r Renderers) (ChartsViewModel, error) {
	var charts ChartsViewModel

	heat := make(map[string]float64, len(set.Heatmap))
	for _, point := range set.Heatmap {
		heat[point.State] = point.Revenue
	}
	heatmap, err := r.Map.USMap(svg.DefaultWidth, 360, heat, svg.MapOpts{
		Title:       "Revenue by State",
		Description: "Choropleth of revenue per state",
	})
	if err != nil {
		return ChartsViewModel{}, err
	}
	charts.Heatmap = heatmap

	if len(set.Pie) > 0 {
		values := make([]float64, 0, len(set.Pie))
		labels := make([]string, 0, len(set.Pie))
		for _, point := range set.Pie {
			values = append(values, point.Revenue)
			labels = append(labels, point.Category)
		}
		pie, err := r.Pie.Pie(560, svg.DefaultHeight, values, labels, svg.PieOpts{
			Title:       "Revenue by Product Category",
			Description: "Revenue share per category",
		})
		if err != nil {
			return ChartsViewModel{}, err
		}
		charts.Pie = pie
	}

	if len(set.Bar) > 0 {
		values := make([]float64, 0, len(set.Bar))
		labels := make([]string, 0, len(set.Bar))
		for _, point := range set.Bar {
			values = append(values, point.Revenue)
			labels = append(labels, point.Category)
		}
		bar, err := r.Bar.Bars(svg.DefaultWidth, svg.DefaultHeight, values, labels, svg.BarOpts{
			Title:       "Revenue by Product Category (Bar Chart)",
			Description: "Category totals across the state and quarter selection",
		})
		if err != nil {
			return ChartsViewModel{}, err
		}
		charts.Bar = bar
	}

	if len(set.Line) > 0 {
		series, months := pivotLine(set.Line)
		line, err := r.Line.MultiLine(svg.DefaultWidth, svg.DefaultHeight, series, months, svg.LineOpts{
			Title:       "Product Revenue Over Time",
			Description: "Monthly revenue per category",
			ShowDots:    true,
		})
		if err != nil {
			return ChartsViewModel{}, err
		}
		charts.Line = line
	}

	return charts, nil
}

// pivotLine turns (month, category, revenue) tuples into one series per
// category over the sorted month axis, zero-filling absent months.
func pivotLine(points []aggregate.SeriesPoint) ([]svg.Series, []string) {
	monthSet := make(map[string]bool)
	categorySet := make(map[string]bool)
	for _, p := range points {
		monthSet[p.Month] = true
		categorySet[p.Category] = true
	}

	months := make([]string, 0, len(monthSet))
	for m := range monthSet {
		months = append(months, m)
	}
	sort.Strings(months)
	monthIndex := make(map[string]int, len(months))
	for i, m := range months {
		monthIndex[m] = i
	}

	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	series := make([]svg.Series, len(categories))
	byCategory := make(map[string]int, len(categories))
	for i, c := range categories {
		series[i] = svg.Series{Name: c, Values: make([]float64, len(months))}
		byCategory[c] = i
	}
	for _, p := range points {
		series[byCategory[p.Category]].Values[monthIndex[p.Month]] = p.Revenue
	}
	return series, months
}

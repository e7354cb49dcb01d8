// Package aggregate computes the four chart views from the pre-grouped
// revenue table. Aggregation is a pure function of its inputs: identical
// table and filters always produce identical output.
package aggregate

import (
	"sort"

	"github.com/retailpulse/retailpulse/internal/dataset"
)

// Filter scopes the aggregation per dimension. An empty set means the
// dimension is unrestricted, never "exclude everything".
type Filter struct {
	States   []string
	Quarters []string
	Products []string
}

// StatePoint is revenue summed for one state code.
type StatePoint struct {
	State   string  `json:"state"`
	Revenue float64 `json:"revenue"`
}

// CategoryPoint is revenue summed for one product category.
type CategoryPoint struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// SeriesPoint is revenue for one category in one month. Months sort
// lexicographically, which equals chronological order for "YYYY-MM".
type SeriesPoint struct {
	Month    string  `json:"month"`
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// ChartSet bundles the four chart views produced by one aggregation pass.
// Heatmap, Pie and Line are computed from the fully filtered table; Bar
// deliberately ignores the product filter so a selected product can still be
// ranked against the whole state/quarter-filtered universe.
type ChartSet struct {
	Heatmap []StatePoint    `json:"heatmap"`
	Pie     []CategoryPoint `json:"pie"`
	Line    []SeriesPoint   `json:"line"`
	Bar     []CategoryPoint `json:"bar"`
}

// Aggregate recomputes all four chart views for the given filters. Each view
// is a full group-by-sum pass; states or categories absent from the filtered
// data are absent from the output, not zero-filled.
func Aggregate(rows []dataset.AggregateRow, filter Filter) ChartSet {
	states := toSet(filter.States)
	quarters := toSet(filter.Quarters)
	products := toSet(filter.Products)

	heat := make(map[string]float64)
	pie := make(map[string]float64)
	type lineKey struct{ month, category string }
	line := make(map[lineKey]float64)
	bar := make(map[string]float64)

	for _, row := range rows {
		if !match(states, row.State) || !match(quarters, row.Quarter) {
			continue
		}
		// Bar chart scope: state and quarter filters only.
		bar[row.Category] += row.Revenue

		if !match(products, row.Category) {
			continue
		}
		heat[row.State] += row.Revenue
		pie[row.Category] += row.Revenue
		line[lineKey{month: row.Month, category: row.Category}] += row.Revenue
	}

	set := ChartSet{
		Heatmap: make([]StatePoint, 0, len(heat)),
		Pie:     make([]CategoryPoint, 0, len(pie)),
		Line:    make([]SeriesPoint, 0, len(line)),
		Bar:     make([]CategoryPoint, 0, len(bar)),
	}
	for state, revenue := range heat {
		set.Heatmap = append(set.Heatmap, StatePoint{State: state, Revenue: revenue})
	}
	for category, revenue := range pie {
		set.Pie = append(set.Pie, CategoryPoint{Category: category, Revenue: revenue})
	}
	for key, revenue := range line {
		set.Line = append(set.Line, SeriesPoint{Month: key.month, Category: key.category, Revenue: revenue})
	}
	for category, revenue := range bar {
		set.Bar = append(set.Bar, CategoryPoint{Category: category, Revenue: revenue})
	}

	sort.Slice(set.Heatmap, func(i, j int) bool { return set.Heatmap[i].State < set.Heatmap[j].State })
	sort.Slice(set.Pie, func(i, j int) bool { return set.Pie[i].Category < set.Pie[j].Category })
	sort.Slice(set.Bar, func(i, j int) bool { return set.Bar[i].Category < set.Bar[j].Category })
	sort.Slice(set.Line, func(i, j int) bool {
		a, b := set.Line[i], set.Line[j]
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Category < b.Category
	})
	return set
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// match treats a nil set as unrestricted.
func match(set map[string]bool, value string) bool {
	return set == nil || set[value]
}

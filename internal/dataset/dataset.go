package dataset

import "sort"

// Dataset is the immutable in-memory dataset built once at process start.
// The enriched table backs the summary metrics; the aggregate table backs
// every chart and the filter dropdowns.
type Dataset struct {
	Orders    []EnrichedOrder
	Aggregate []AggregateRow
	Summary   Summary
	Dropped   DropCounts

	states     []string
	quarters   []string
	categories []string
}

func newDataset(orders []EnrichedOrder, aggregate []AggregateRow, dropped DropCounts) *Dataset {
	d := &Dataset{
		Orders:    orders,
		Aggregate: aggregate,
		Dropped:   dropped,
		Summary:   summarize(orders),
	}

	states := make(map[string]bool)
	quarters := make(map[string]bool)
	categories := make(map[string]bool)
	for _, row := range aggregate {
		states[row.State] = true
		quarters[row.Quarter] = true
		categories[row.Category] = true
	}
	d.states = sortedKeys(states)
	d.quarters = sortedKeys(quarters)
	d.categories = sortedKeys(categories)
	return d
}

// summarize computes the static metric cards. Total orders counts every
// enriched row including join misses; revenue figures skip nil revenue the
// way a column mean skips missing values.
func summarize(orders []EnrichedOrder) Summary {
	var total float64
	var priced int
	for _, order := range orders {
		if order.Revenue != nil {
			total += *order.Revenue
			priced++
		}
	}
	s := Summary{TotalRevenue: total, TotalOrders: len(orders)}
	if priced > 0 {
		s.AvgOrderValue = total / float64(priced)
	}
	return s
}

// States returns the sorted distinct state codes present in the aggregate table.
func (d *Dataset) States() []string { return d.states }

// Quarters returns the sorted distinct quarter labels.
func (d *Dataset) Quarters() []string { return d.quarters }

// Categories returns the sorted distinct product categories.
func (d *Dataset) Categories() []string { return d.categories }

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/dataset"
)

// testRows mirrors the three-order scenario: two California orders
// (Electronics 100 in 2019-01, Books 20 in 2019-04) and one Texas order
// (Electronics 50 in 2019-01).
func testRows() []dataset.AggregateRow {
	return []dataset.AggregateRow{
		{State: "CA", Quarter: "2019Q1", Month: "2019-01", Category: "Electronics", Revenue: 100},
		{State: "CA", Quarter: "2019Q2", Month: "2019-04", Category: "Books", Revenue: 20},
		{State: "TX", Quarter: "2019Q1", Month: "2019-01", Category: "Electronics", Revenue: 50},
	}
}

func sumStates(points []StatePoint) float64 {
	var total float64
	for _, p := range points {
		total += p.Revenue
	}
	return total
}

func sumCategories(points []CategoryPoint) float64 {
	var total float64
	for _, p := range points {
		total += p.Revenue
	}
	return total
}

func TestAggregateUnfiltered(t *testing.T) {
	set := Aggregate(testRows(), Filter{})

	assert.Equal(t, []StatePoint{{State: "CA", Revenue: 120}, {State: "TX", Revenue: 50}}, set.Heatmap)
	assert.Equal(t, []CategoryPoint{{Category: "Books", Revenue: 20}, {Category: "Electronics", Revenue: 150}}, set.Pie)
	assert.Equal(t, set.Pie, set.Bar, "without a product filter bar equals pie")
	require.Len(t, set.Line, 3)
	assert.Equal(t, SeriesPoint{Month: "2019-01", Category: "Electronics", Revenue: 150}, set.Line[0])
}

func TestBarIgnoresProductFilter(t *testing.T) {
	unfiltered := Aggregate(testRows(), Filter{})
	filtered := Aggregate(testRows(), Filter{Products: []string{"Electronics"}})

	assert.Equal(t, []CategoryPoint{{Category: "Electronics", Revenue: 150}}, filtered.Pie,
		"pie is restricted by the product filter")
	assert.Equal(t, unfiltered.Bar, filtered.Bar,
		"bar keeps the full category set under a product filter")
}

func TestStateAndQuarterFiltersApplyToBar(t *testing.T) {
	set := Aggregate(testRows(), Filter{States: []string{"CA"}, Quarters: []string{"2019Q1"}})

	assert.Equal(t, []CategoryPoint{{Category: "Electronics", Revenue: 100}}, set.Bar)
	assert.Equal(t, []StatePoint{{State: "CA", Revenue: 100}}, set.Heatmap)
}

func TestEmptyFilterEqualsNoFilter(t *testing.T) {
	noFilter := Aggregate(testRows(), Filter{})
	emptySets := Aggregate(testRows(), Filter{States: []string{}, Quarters: []string{}, Products: []string{}})
	assert.Equal(t, noFilter, emptySets, "empty selection must not restrict results")
}

func TestAggregateIsIdempotent(t *testing.T) {
	filter := Filter{States: []string{"CA", "TX"}, Products: []string{"Electronics"}}
	first := Aggregate(testRows(), filter)
	second := Aggregate(testRows(), filter)
	assert.Equal(t, first, second)
}

func TestSumInvariant(t *testing.T) {
	filters := []Filter{
		{},
		{States: []string{"CA"}},
		{Quarters: []string{"2019Q1"}},
		{Products: []string{"Books"}},
		{States: []string{"TX"}, Quarters: []string{"2019Q1"}, Products: []string{"Electronics"}},
	}
	for _, filter := range filters {
		set := Aggregate(testRows(), filter)
		assert.InDelta(t, sumStates(set.Heatmap), sumCategories(set.Pie), 1e-9,
			"heatmap and pie must reconcile for %+v", filter)

		var lineTotal float64
		for _, p := range set.Line {
			lineTotal += p.Revenue
		}
		assert.InDelta(t, sumCategories(set.Pie), lineTotal, 1e-9,
			"line must reconcile for %+v", filter)
	}
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	set := Aggregate(testRows(), Filter{States: []string{"WA"}})
	assert.Empty(t, set.Heatmap)
	assert.Empty(t, set.Pie)
	assert.Empty(t, set.Line)
	assert.Empty(t, set.Bar)
}

func TestAbsentStatesAreNotZeroFilled(t *testing.T) {
	set := Aggregate(testRows(), Filter{Quarters: []string{"2019Q2"}})
	require.Len(t, set.Heatmap, 1)
	assert.Equal(t, "CA", set.Heatmap[0].State)
}

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/store"
)

func order(id, ts, state, productID string) store.OrderRecord {
	return store.OrderRecord{
		OrderID:       id,
		Timestamp:     ts,
		ShippingState: state,
		PaymentMethod: "credit_card",
		CustomerID:    "c-" + id,
		ProductID:     productID,
		SellerID:      "s-" + id,
	}
}

func testProducts() []store.ProductRecord {
	return []store.ProductRecord{
		{ProductID: "100", Category: "'Electronics'", Price: "100", Stock: "5"},
		{ProductID: "200", Category: "Books", Price: "20", Stock: "9"},
	}
}

func TestEnrichJoinAndBuckets(t *testing.T) {
	orders := []store.OrderRecord{
		order("1", "2019-01-15 10:30:00", "California", "100"),
		order("2", "2019-04-02 08:00:00", "California", "200"),
		order("3", "2019-01-20 12:00:00", "Texas", "100"),
	}

	ds := Enrich(orders, testProducts())
	require.Len(t, ds.Orders, 3)

	first := ds.Orders[0]
	assert.Equal(t, 2019, first.Year)
	assert.Equal(t, "2019Q1", first.Quarter)
	assert.Equal(t, "2019-01", first.Month)
	assert.Equal(t, "Electronics", first.Category, "category quotes stripped")
	require.NotNil(t, first.Revenue)
	assert.Equal(t, 100.0, *first.Revenue)

	assert.Equal(t, "2019Q2", ds.Orders[1].Quarter)

	// Aggregate table groups by (state, quarter, month, category) with
	// normalized state codes, sorted deterministically.
	require.Len(t, ds.Aggregate, 3)
	assert.Equal(t, AggregateRow{State: "CA", Quarter: "2019Q1", Month: "2019-01", Category: "Electronics", Revenue: 100}, ds.Aggregate[0])
	assert.Equal(t, AggregateRow{State: "CA", Quarter: "2019Q2", Month: "2019-04", Category: "Books", Revenue: 20}, ds.Aggregate[1])
	assert.Equal(t, AggregateRow{State: "TX", Quarter: "2019Q1", Month: "2019-01", Category: "Electronics", Revenue: 50}, ds.Aggregate[2])
}

func TestEnrichAggregateSumsWithinGroup(t *testing.T) {
	orders := []store.OrderRecord{
		order("1", "2019-01-05 00:00:00", "California", "100"),
		order("2", "2019-01-25 00:00:00", "California", "100"),
	}
	ds := Enrich(orders, testProducts())
	require.Len(t, ds.Aggregate, 1)
	assert.Equal(t, 200.0, ds.Aggregate[0].Revenue)
}

func TestEnrichLeftJoinKeepsUnmatchedOrders(t *testing.T) {
	orders := []store.OrderRecord{
		order("1", "2019-01-15 10:30:00", "California", "100"),
		order("2", "2019-02-01 09:00:00", "California", "999"),
	}
	ds := Enrich(orders, testProducts())

	require.Len(t, ds.Orders, 2, "join misses stay in the enriched table")
	assert.Nil(t, ds.Orders[1].Revenue)
	assert.Empty(t, ds.Orders[1].Category)
	assert.Len(t, ds.Aggregate, 1, "join misses carry no revenue to aggregate")
}

func TestEnrichSummaryMetrics(t *testing.T) {
	orders := []store.OrderRecord{
		order("1", "2019-01-15 10:30:00", "California", "100"),
		order("2", "2019-04-02 08:00:00", "California", "200"),
		order("3", "2019-05-10 08:00:00", "Texas", "999"),
	}
	ds := Enrich(orders, testProducts())

	assert.Equal(t, 3, ds.Summary.TotalOrders, "all orders counted, join miss included")
	assert.Equal(t, 120.0, ds.Summary.TotalRevenue)
	assert.Equal(t, 60.0, ds.Summary.AvgOrderValue, "mean skips orders without revenue")
}

func TestEnrichDropsMalformedRecords(t *testing.T) {
	orders := []store.OrderRecord{
		order("1", "not-a-date", "California", "100"),
		order("2", "2019-01-15 10:30:00", "California", "abc"),
		order("3", "2019-01-15 10:30:00", "California", "100"),
	}
	products := append(testProducts(), store.ProductRecord{ProductID: "300", Category: "Toys", Price: "n/a"})

	ds := Enrich(orders, products)
	assert.Equal(t, 2, ds.Dropped.MalformedOrders)
	assert.Equal(t, 1, ds.Dropped.MalformedProducts)
	require.Len(t, ds.Orders, 1)
	assert.Equal(t, "3", ds.Orders[0].OrderID)
}

func TestEnrichUnmappedStatePolicy(t *testing.T) {
	orders := []store.OrderRecord{
		order("1", "2019-01-15 10:30:00", "Ontario", "100"),
		order("2", "2019-01-15 10:30:00", "TX", "100"),
	}
	ds := Enrich(orders, testProducts())

	assert.Equal(t, 1, ds.Dropped.UnmappedStates)
	require.Len(t, ds.Aggregate, 1, "unknown region excluded, postal code passes through")
	assert.Equal(t, "TX", ds.Aggregate[0].State)
	assert.Len(t, ds.Orders, 2, "enriched table keeps the raw state either way")
}

func TestEnrichTimestampLayouts(t *testing.T) {
	orders := []store.OrderRecord{
		order("1", "2019-01-15T10:30:00Z", "California", "100"),
		order("2", "2019-03-01", "California", "100"),
	}
	ds := Enrich(orders, testProducts())
	require.Len(t, ds.Orders, 2)
	assert.Equal(t, "2019-01", ds.Orders[0].Month)
	assert.Equal(t, "2019Q1", ds.Orders[1].Quarter)
}

func TestDatasetFilterOptions(t *testing.T) {
	orders := []store.OrderRecord{
		order("1", "2019-01-15 10:30:00", "Texas", "100"),
		order("2", "2019-04-02 08:00:00", "California", "200"),
		order("3", "2019-07-09 08:00:00", "California", "100"),
	}
	ds := Enrich(orders, testProducts())

	assert.Equal(t, []string{"CA", "TX"}, ds.States())
	assert.Equal(t, []string{"2019Q1", "2019Q2", "2019Q3"}, ds.Quarters())
	assert.Equal(t, []string{"Books", "Electronics"}, ds.Categories())
}

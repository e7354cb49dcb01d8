// Package dataset builds the immutable in-memory dataset the dashboard
// serves from: the enriched order table, the pre-grouped aggregate table the
// filters operate over, and the startup summary metrics.
package dataset

import "time"

// EnrichedOrder is an order row joined with its product and augmented with
// derived time buckets. Revenue is nil when no product matched the join.
type EnrichedOrder struct {
	OrderID       string
	CustomerID    string
	SellerID      string
	PaymentMethod string
	ShippingState string
	Timestamp     time.Time
	Year          int
	Quarter       string
	Month         string
	ProductID     int64
	Category      string
	Revenue       *float64
}

// Product is a parsed products row keyed by its integer id.
type Product struct {
	ProductID int64
	Category  string
	Price     float64
	Stock     int64
}

// AggregateRow is one cell of the pre-grouped revenue table keyed by
// (state, quarter, month, category). State holds the 2-letter postal code.
type AggregateRow struct {
	State    string
	Quarter  string
	Month    string
	Category string
	Revenue  float64
}

// Summary holds the three static metric cards. They are computed once from
// the full enriched table and never refiltered.
type Summary struct {
	TotalRevenue  float64
	AvgOrderValue float64
	TotalOrders   int
}

// DropCounts reports records excluded during enrichment. Malformed rows are
// dropped and counted, never aborting the load.
type DropCounts struct {
	MalformedOrders   int
	MalformedProducts int
	UnmappedStates    int
}

// Package store loads the raw order and product projections backing the
// dashboard. Implementations are read-only; all coercion and joining happens
// downstream in the dataset package.
package store

import (
	"context"
	"errors"
)

// ErrDataUnavailable indicates the backing store cannot be opened or a
// projection query failed. It is fatal at startup: the dashboard cannot
// render without both tables.
var ErrDataUnavailable = errors.New("store: data unavailable")

// OrderRecord is one row of the orders projection. Identifier and value
// columns come back as text so the enrichment stage owns coercion policy.
type OrderRecord struct {
	OrderID       string
	Timestamp     string
	ShippingState string
	PaymentMethod string
	CustomerID    string
	ProductID     string
	SellerID      string
}

// ProductRecord is one row of the products projection.
type ProductRecord struct {
	ProductID string
	Category  string
	Price     string
	Stock     string
}

// Store exposes the two read-only projections the dashboard is built from.
type Store interface {
	Orders(ctx context.Context) ([]OrderRecord, error)
	Products(ctx context.Context) ([]ProductRecord, error)
	Close() error
}

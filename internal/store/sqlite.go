package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteOrdersQuery = `
SELECT CAST(order_id AS TEXT), CAST(timestamp AS TEXT), shipping_state, payment_method,
       CAST(customer_id AS TEXT), CAST(product_id AS TEXT), CAST(seller_id AS TEXT)
FROM orders`

const sqliteProductsQuery = `
SELECT CAST(product_id AS TEXT), product_category, CAST(product_price AS TEXT), CAST(product_stock AS TEXT)
FROM products`

// SQLiteStore reads the projections from a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already-opened SQLite handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Orders returns the orders projection.
func (s *SQLiteStore) Orders(ctx context.Context) ([]OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, sqliteOrdersQuery)
	if err != nil {
		return nil, fmt.Errorf("store: query orders: %v: %w", err, ErrDataUnavailable)
	}
	defer rows.Close()

	var records []OrderRecord
	for rows.Next() {
		var rec OrderRecord
		if err := rows.Scan(&rec.OrderID, &rec.Timestamp, &rec.ShippingState, &rec.PaymentMethod, &rec.CustomerID, &rec.ProductID, &rec.SellerID); err != nil {
			return nil, fmt.Errorf("store: scan order: %v: %w", err, ErrDataUnavailable)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: read orders: %v: %w", err, ErrDataUnavailable)
	}
	return records, nil
}

// Products returns the products projection.
func (s *SQLiteStore) Products(ctx context.Context) ([]ProductRecord, error) {
	rows, err := s.db.QueryContext(ctx, sqliteProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("store: query products: %v: %w", err, ErrDataUnavailable)
	}
	defer rows.Close()

	var records []ProductRecord
	for rows.Next() {
		var rec ProductRecord
		if err := rows.Scan(&rec.ProductID, &rec.Category, &rec.Price, &rec.Stock); err != nil {
			return nil, fmt.Errorf("store: scan product: %v: %w", err, ErrDataUnavailable)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: read products: %v: %w", err, ErrDataUnavailable)
	}
	return records, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

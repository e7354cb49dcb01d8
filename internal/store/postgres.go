package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgOrdersQuery = `
SELECT order_id::text, timestamp::text, shipping_state, payment_method,
       customer_id::text, product_id::text, seller_id::text
FROM orders`

const pgProductsQuery = `
SELECT product_id::text, product_category, product_price::text, product_stock::text
FROM products`

// PostgresStore reads the projections from a PostgreSQL database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Orders returns the orders projection.
func (s *PostgresStore) Orders(ctx context.Context) ([]OrderRecord, error) {
	rows, err := s.pool.Query(ctx, pgOrdersQuery)
	if err != nil {
		return nil, wrapPgError("query orders", err)
	}
	defer rows.Close()

	var records []OrderRecord
	for rows.Next() {
		var rec OrderRecord
		if err := rows.Scan(&rec.OrderID, &rec.Timestamp, &rec.ShippingState, &rec.PaymentMethod, &rec.CustomerID, &rec.ProductID, &rec.SellerID); err != nil {
			return nil, wrapPgError("scan order", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgError("read orders", err)
	}
	return records, nil
}

// Products returns the products projection.
func (s *PostgresStore) Products(ctx context.Context) ([]ProductRecord, error) {
	rows, err := s.pool.Query(ctx, pgProductsQuery)
	if err != nil {
		return nil, wrapPgError("query products", err)
	}
	defer rows.Close()

	var records []ProductRecord
	for rows.Next() {
		var rec ProductRecord
		if err := rows.Scan(&rec.ProductID, &rec.Category, &rec.Price, &rec.Stock); err != nil {
			return nil, wrapPgError("scan product", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgError("read products", err)
	}
	return records, nil
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func wrapPgError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("store: %s: %s (%s): %w", op, pgErr.Message, pgErr.Code, ErrDataUnavailable)
	}
	return fmt.Errorf("store: %s: %v: %w", op, err, ErrDataUnavailable)
}

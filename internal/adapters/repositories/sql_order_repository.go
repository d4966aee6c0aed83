package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/obs"
	"route-planner-service/internal/ports"
)

// Postgres-backed implementation of the OrderRepository port.
type SQLOrderRepository struct{ DB *sql.DB }

func NewSQLOrderRepository(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{DB: db}
}

const selectOrders = `
	SELECT
		id,
		latitude,
		longitude,
		customer_name,
		code,
		status,
		cod
	FROM orders
`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.Latitude, &o.Longitude, &o.CustomerName, &o.Code, &o.Status, &o.COD); err != nil {
		return nil, err
	}
	return &o, nil
}

// Return all orders ordered by id.
func (s *SQLOrderRepository) ListOrders(ctx context.Context) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "orders.ListOrders")(&err)

	if s.DB == nil {
		return nil, errors.New("sql order repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectOrders+" ORDER BY id;")
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 64)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}

func (s *SQLOrderRepository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("sql order repository: DB is nil")
	}

	o, err := scanOrder(s.DB.QueryRowContext(ctx, selectOrders+" WHERE id = $1;", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order id=%d: %w", id, err)
	}
	return o, nil
}

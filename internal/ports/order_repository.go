package ports

import (
	"context"
	"errors"
	"route-planner-service/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// Port: a read-only boundary for retrieving orders that can become stops.
type OrderRepository interface {
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
}

package repositories

import (
	"context"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/ports"
	"sort"
)

// MemoryOrderRepository serves orders from a fixed list, typically the seed
// file when no database is configured.
type MemoryOrderRepository struct {
	orders map[int64]domain.Order
}

func NewMemoryOrderRepository(orders []domain.Order) *MemoryOrderRepository {
	m := &MemoryOrderRepository{orders: make(map[int64]domain.Order, len(orders))}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

// LoadMemoryOrderRepository builds a repository from an order seed file.
func LoadMemoryOrderRepository(jsonPath string) (*MemoryOrderRepository, error) {
	seeds, err := ReadOrderSeeds(jsonPath)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(seeds))
	for _, s := range seeds {
		orders = append(orders, domain.Order{
			ID:           s.ID,
			Latitude:     s.Lat,
			Longitude:    s.Lng,
			CustomerName: s.CustomerName,
			Code:         s.Code,
			Status:       s.Status,
			COD:          s.COD,
		})
	}
	return NewMemoryOrderRepository(orders), nil
}

func (m *MemoryOrderRepository) ListOrders(context.Context) ([]*domain.Order, error) {
	out := make([]*domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		o := o
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryOrderRepository) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return &o, nil
}

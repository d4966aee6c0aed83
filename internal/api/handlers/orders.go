package handlers

import (
	"log"
	"net/http"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/ports"
)

type OrderHandler struct {
	Repo ports.OrderRepository
}

// List returns every order that can be added as a stop.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "order source not configured")
		return
	}

	orders, err := h.Repo.ListOrders(r.Context())
	if err != nil {
		log.Printf("list orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListOrderResponse{Orders: make([]dto.OrderResponse, 0, len(orders))}
	for _, o := range orders {
		res.Orders = append(res.Orders, dto.OrderResponse{
			ID:           o.ID,
			Code:         o.Code,
			CustomerName: o.CustomerName,
			Lat:          o.Latitude,
			Lng:          o.Longitude,
			Status:       o.Status,
			COD:          o.COD,
			StopLabel:    o.StopLabel(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

package dto

type OrderResponse struct {
	ID           int64   `json:"id"`
	Code         string  `json:"code"`
	CustomerName string  `json:"customer_name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Status       string  `json:"status"`
	COD          int64   `json:"cod"`
	StopLabel    string  `json:"stop_label"`
}

type ListOrderResponse struct {
	Orders []OrderResponse `json:"orders"`
}

package domain

import "fmt"

// Delivery order as exposed by the order data source. Orders are read-only to
// the planner; selecting one adds its location as a stop.
type Order struct {
	ID           int64
	Latitude     float64
	Longitude    float64
	CustomerName string
	Code         string
	Status       string
	COD          int64
}

// Label used when the order is added as a waypoint.
func (o Order) StopLabel() string {
	return fmt.Sprintf("%s (%s)", o.CustomerName, o.Code)
}

func (o Order) Coordinates() Coordinates {
	return Coordinates{Lat: o.Latitude, Lng: o.Longitude}
}

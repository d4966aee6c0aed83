package domain

import (
	"errors"
	"math"
)

var ErrInvalidCoordinates = errors.New("coordinates must be finite numbers")

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return coordinates as [lng, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lng, c.Lat} }

// Valid reports whether both components are finite.
func (c Coordinates) Valid() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

// Axis-aligned geographic box. Bounds are inclusive.
type BoundingBox struct {
	West  float64 `yaml:"west"`
	East  float64 `yaml:"east"`
	South float64 `yaml:"south"`
	North float64 `yaml:"north"`
}

func (b BoundingBox) Contains(c Coordinates) bool {
	return c.Lng >= b.West && c.Lng <= b.East && c.Lat >= b.South && c.Lat <= b.North
}

// IsZero reports whether the box was left unset.
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

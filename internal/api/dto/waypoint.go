package dto

import "route-planner-service/internal/domain"

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// Lat and Lng are pointers so a missing field is distinguishable from 0.
type AddWaypointRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Label string   `json:"label"`
	Snap  bool     `json:"snap"`
}

type WaypointResponse struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Label string  `json:"label,omitempty"`
}

type WaypointListResponse struct {
	SessionID string             `json:"session_id"`
	Waypoints []WaypointResponse `json:"waypoints"`
	Hash      string             `json:"hash"`
}

type RemoveResponse struct {
	Removed bool `json:"removed"`
}

type HashRequest struct {
	Hash string `json:"hash"`
}

type HashResponse struct {
	Hash     string `json:"hash"`
	Restored *int   `json:"restored,omitempty"`
}

func FromWaypoint(w domain.Waypoint) WaypointResponse {
	return WaypointResponse{Lat: w.Lat, Lng: w.Lng, Label: w.Label}
}

func FromWaypoints(wps []domain.Waypoint) []WaypointResponse {
	out := make([]WaypointResponse, 0, len(wps))
	for _, w := range wps {
		out = append(out, FromWaypoint(w))
	}
	return out
}

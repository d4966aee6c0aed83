package codec

import (
	"encoding/json"
	"fmt"
	"route-planner-service/internal/domain"
)

// EncodeState serializes the full waypoint list, labels included.
func EncodeState(wps []domain.Waypoint) ([]byte, error) {
	if wps == nil {
		wps = []domain.Waypoint{}
	}
	b, err := json.Marshal(wps)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return b, nil
}

func DecodeState(data []byte) ([]domain.Waypoint, error) {
	var wps []domain.Waypoint
	if err := json.Unmarshal(data, &wps); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return wps, nil
}

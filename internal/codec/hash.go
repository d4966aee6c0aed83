// Package codec converts waypoint lists to and from their compact string
// forms: the shareable-link fragment and the persisted session state.
package codec

import (
	"math"
	"route-planner-service/internal/domain"
	"strconv"
	"strings"
)

const (
	pairSeparator  = "|"
	coordSeparator = ","
	hashPrecision  = 6
)

// EncodeHash renders waypoints as "lat,lng" pairs with six decimals joined by
// "|". Labels are not carried. An empty list encodes to "".
func EncodeHash(wps []domain.Waypoint) string {
	if len(wps) == 0 {
		return ""
	}

	var b strings.Builder
	for i, w := range wps {
		if i > 0 {
			b.WriteString(pairSeparator)
		}
		b.WriteString(strconv.FormatFloat(w.Lat, 'f', hashPrecision, 64))
		b.WriteString(coordSeparator)
		b.WriteString(strconv.FormatFloat(w.Lng, 'f', hashPrecision, 64))
	}
	return b.String()
}

// DecodeHash parses a fragment produced by EncodeHash. A leading "#" is
// ignored. Pairs that are not exactly two finite numbers are dropped.
func DecodeHash(fragment string) []domain.Coordinates {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if fragment == "" {
		return nil
	}

	pairs := strings.Split(fragment, pairSeparator)
	out := make([]domain.Coordinates, 0, len(pairs))
	for _, p := range pairs {
		parts := strings.Split(p, coordSeparator)
		if len(parts) != 2 {
			continue
		}

		lat, ok := parseFinite(parts[0])
		if !ok {
			continue
		}
		lng, ok := parseFinite(parts[1])
		if !ok {
			continue
		}
		out = append(out, domain.Coordinates{Lat: lat, Lng: lng})
	}
	return out
}

func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

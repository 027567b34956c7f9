package model

import (
	"fmt"

	domainErrors "github.com/gazetka/loyalty/internal/domain/errors"
)

// Record is the loosely typed document shape crossing the persistence
// boundary. FromRecord constructors validate it into typed entities and
// fail with ErrMalformedRecord instead of propagating missing-key zero
// values.
type Record map[string]any

func malformed(key string) error {
	return fmt.Errorf("%w: field %q", domainErrors.ErrMalformedRecord, key)
}

func recordString(rec Record, key string) (string, error) {
	v, ok := rec[key]
	if !ok {
		return "", malformed(key)
	}
	s, ok := v.(string)
	if !ok {
		return "", malformed(key)
	}
	return s, nil
}

// recordFloat accepts the numeric shapes produced both by Go writers and by
// a JSON round trip through the document store.
func recordFloat(rec Record, key string) (float64, error) {
	v, ok := rec[key]
	if !ok {
		return 0, malformed(key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, malformed(key)
	}
}

func recordInt(rec Record, key string) (int64, error) {
	v, ok := rec[key]
	if !ok {
		return 0, malformed(key)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, malformed(key)
	}
}

// recordCoords reads a [lat, lon] pair stored as a two-element array.
func recordCoords(rec Record, key string) (GeoPoint, error) {
	v, ok := rec[key]
	if !ok {
		return GeoPoint{}, malformed(key)
	}
	var raw []any
	switch pair := v.(type) {
	case []any:
		raw = pair
	case []float64:
		raw = []any{pair[0], pair[1]}
	default:
		return GeoPoint{}, malformed(key)
	}
	if len(raw) != 2 {
		return GeoPoint{}, malformed(key)
	}
	lat, okLat := asFloat(raw[0])
	lon, okLon := asFloat(raw[1])
	if !okLat || !okLon {
		return GeoPoint{}, malformed(key)
	}
	return GeoPoint{Lat: lat, Lon: lon}, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

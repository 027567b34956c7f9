package model

import "context"

// PlaceUnknown is returned by resolvers when a coordinate pair cannot be
// mapped to a place name.
const PlaceUnknown = "Unknown"

// ProvinceGlobal is the sentinel filter value selecting all provinces.
const ProvinceGlobal = "global"

// GeoPoint is an opaque coordinate pair. Place names are never stored on it;
// they are looked up through a GeoResolver when needed.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// GeoResolver maps coordinates to administrative place names.
// Implementations return PlaceUnknown on any failure, never an error.
type GeoResolver interface {
	City(ctx context.Context, pt GeoPoint) string
	Province(ctx context.Context, pt GeoPoint) string
}

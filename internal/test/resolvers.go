package test

import (
	"context"

	"github.com/gazetka/loyalty/internal/domain/model"
)

// StaticResolver resolves coordinates from fixed maps, falling back to the
// configured defaults or "Unknown".
type StaticResolver struct {
	Cities          map[model.GeoPoint]string
	Provinces       map[model.GeoPoint]string
	DefaultCity     string
	DefaultProvince string

	CityCalls     int
	ProvinceCalls int
}

// City returns the mapped city for the point.
func (r *StaticResolver) City(_ context.Context, pt model.GeoPoint) string {
	r.CityCalls++
	if name, ok := r.Cities[pt]; ok {
		return name
	}
	if r.DefaultCity != "" {
		return r.DefaultCity
	}
	return model.PlaceUnknown
}

// Province returns the mapped province for the point.
func (r *StaticResolver) Province(_ context.Context, pt model.GeoPoint) string {
	r.ProvinceCalls++
	if name, ok := r.Provinces[pt]; ok {
		return name
	}
	if r.DefaultProvince != "" {
		return r.DefaultProvince
	}
	return model.PlaceUnknown
}

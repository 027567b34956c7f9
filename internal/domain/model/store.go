package model

import "context"

// Store is a participating retail store. Identity is the numeric ID,
// allocated once at registration and never reused. Points only ever grow,
// by redemption accrual.
type Store struct {
	ID         int64
	Name       string
	Location   GeoPoint
	Points     int64
	Credential string
}

// StoreFromRecord deserializes a stored record. The derived "city" field is
// ignored on the way in; it is recomputed at serialization time.
func StoreFromRecord(rec Record) (*Store, error) {
	id, err := recordInt(rec, "id")
	if err != nil {
		return nil, err
	}
	name, err := recordString(rec, "name")
	if err != nil {
		return nil, err
	}
	location, err := recordCoords(rec, "location")
	if err != nil {
		return nil, err
	}
	points, err := recordInt(rec, "points")
	if err != nil {
		return nil, err
	}
	credential, err := recordString(rec, "password")
	if err != nil {
		return nil, err
	}
	return &Store{
		ID:         id,
		Name:       name,
		Location:   location,
		Points:     points,
		Credential: credential,
	}, nil
}

// ToRecord serializes the store. "city" is a display field resolved freshly
// through the geo resolver, not a cached value; every other field is the
// exact inverse of StoreFromRecord.
func (s *Store) ToRecord(ctx context.Context, geo GeoResolver) Record {
	return Record{
		"id":       s.ID,
		"name":     s.Name,
		"location": []float64{s.Location.Lat, s.Location.Lon},
		"city":     geo.City(ctx, s.Location),
		"points":   s.Points,
		"password": s.Credential,
	}
}

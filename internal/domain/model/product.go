package model

import (
	"context"
	"fmt"
)

// Product is a discounted item offered by a store. Identity is derived from
// (store, EAN, series) so that re-adding the same product merges quantity
// instead of duplicating a row. A product whose quantity reaches zero is
// deleted, never kept as a zero-stock row.
type Product struct {
	ID            string
	Name          string
	Series        string
	PriceOriginal float64
	PriceUsers    float64
	ExpDate       string
	EAN           string
	Category      string
	StoreID       int64
	Quantity      int64
	PhotoURL      string
}

// ProductID derives the deterministic product identity.
func ProductID(storeID int64, ean, series string) string {
	return fmt.Sprintf("%d_%s_%s", storeID, ean, series)
}

// StoreSource resolves store identities during product deserialization.
type StoreSource interface {
	GetByID(ctx context.Context, id int64) (*Store, error)
}

// ProductFromRecord deserializes a stored record. It is not a pure
// deserialization: the owning store is looked up through the registry to
// verify the cross-entity reference, so it can fail with ErrNotFound in
// addition to ErrMalformedRecord.
func ProductFromRecord(ctx context.Context, rec Record, stores StoreSource) (*Product, error) {
	name, err := recordString(rec, "name")
	if err != nil {
		return nil, err
	}
	series, err := recordString(rec, "series")
	if err != nil {
		return nil, err
	}
	priceOriginal, err := recordFloat(rec, "price_original")
	if err != nil {
		return nil, err
	}
	priceUsers, err := recordFloat(rec, "price_users")
	if err != nil {
		return nil, err
	}
	expDate, err := recordString(rec, "exp_date")
	if err != nil {
		return nil, err
	}
	ean, err := recordString(rec, "EAN")
	if err != nil {
		return nil, err
	}
	category, err := recordString(rec, "category")
	if err != nil {
		return nil, err
	}
	storeID, err := recordInt(rec, "store_id")
	if err != nil {
		return nil, err
	}
	quantity, err := recordInt(rec, "quantity")
	if err != nil {
		return nil, err
	}
	photoURL, err := recordString(rec, "photo_url")
	if err != nil {
		return nil, err
	}

	if _, err := stores.GetByID(ctx, storeID); err != nil {
		return nil, fmt.Errorf("resolve owning store %d: %w", storeID, err)
	}

	return &Product{
		ID:            ProductID(storeID, ean, series),
		Name:          name,
		Series:        series,
		PriceOriginal: priceOriginal,
		PriceUsers:    priceUsers,
		ExpDate:       expDate,
		EAN:           ean,
		Category:      category,
		StoreID:       storeID,
		Quantity:      quantity,
		PhotoURL:      photoURL,
	}, nil
}

// ToRecord serializes the product. Location, city and store name are display
// fields derived from the owning store at serialization time.
func (p *Product) ToRecord(ctx context.Context, owner *Store, geo GeoResolver) Record {
	return Record{
		"id":             p.ID,
		"name":           p.Name,
		"location":       []float64{owner.Location.Lat, owner.Location.Lon},
		"city":           geo.City(ctx, owner.Location),
		"series":         p.Series,
		"price_original": p.PriceOriginal,
		"price_users":    p.PriceUsers,
		"exp_date":       p.ExpDate,
		"EAN":            p.EAN,
		"category":       p.Category,
		"store":          owner.Name,
		"store_id":       p.StoreID,
		"quantity":       p.Quantity,
		"photo_url":      p.PhotoURL,
	}
}

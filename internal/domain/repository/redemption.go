package repository

import "context"

// RedemptionDelta describes the mutations of one redemption. Quantity is
// the number of units removed from stock; the gains are point deltas.
type RedemptionDelta struct {
	Username  string
	StoreID   int64
	ProductID string
	Quantity  int64
	StoreGain int64
	UserGain  int64
}

// RedemptionApplier applies all four redemption mutations together or not
// at all: no partial point award without the matching inventory decrement.
// Stock is re-checked under the entity locks, so ErrInsufficientStock can
// still surface here when redemptions race on the same product.
type RedemptionApplier interface {
	ApplyRedemption(ctx context.Context, delta RedemptionDelta) (storePoints, userPoints int64, err error)
}

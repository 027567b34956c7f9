package model

// RankEntry is one row of a ranking snapshot. Place is the 1-based position,
// strictly sequential with no gaps; tied point totals do not share a place.
type RankEntry struct {
	Place    int
	StoreID  int64
	Name     string
	Points   int64
	Location GeoPoint
}

// RedemptionResult carries the point totals after a redemption has been
// applied.
type RedemptionResult struct {
	StorePoints int64
	UserPoints  int64
}

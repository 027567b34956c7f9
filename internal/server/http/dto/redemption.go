package dto

// RedemptionRequest describes the redemption payload.
type RedemptionRequest struct {
	Code      string `json:"code"`
	StoreID   int64  `json:"store_id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// RedemptionResponse carries the updated point totals.
type RedemptionResponse struct {
	StorePoints int64 `json:"store_points"`
	UserPoints  int64 `json:"user_points"`
}

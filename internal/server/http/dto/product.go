package dto

// AddProductRequest describes the add-or-merge product payload.
type AddProductRequest struct {
	Name          string  `json:"name"`
	EAN           string  `json:"EAN"`
	Series        string  `json:"series"`
	PriceOriginal float64 `json:"price_original"`
	PriceUsers    float64 `json:"price_users"`
	ExpDate       string  `json:"exp_date"`
	Category      string  `json:"category"`
	StoreID       int64   `json:"store_id"`
	Quantity      int64   `json:"quantity"`
	PhotoURL      string  `json:"photo_url"`
}

// ProductResponse describes a stored product after add-or-merge.
type ProductResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	EAN           string  `json:"EAN"`
	Series        string  `json:"series"`
	PriceOriginal float64 `json:"price_original"`
	PriceUsers    float64 `json:"price_users"`
	ExpDate       string  `json:"exp_date"`
	Category      string  `json:"category"`
	StoreID       int64   `json:"store_id"`
	Quantity      int64   `json:"quantity"`
	PhotoURL      string  `json:"photo_url"`
}

package dto

// RegisterStoreRequest describes the store registration payload.
type RegisterStoreRequest struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"`
	Password string    `json:"password"`
}

// StoreResponse describes a registered store.
type StoreResponse struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	City     string    `json:"city"`
	Location []float64 `json:"location"`
	Points   int64     `json:"points"`
}

// RankEntryResponse describes one ranking row.
type RankEntryResponse struct {
	Place    int       `json:"place"`
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Points   int64     `json:"points"`
	Location []float64 `json:"location"`
}

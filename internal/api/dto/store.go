package dto

import "time"

type StoreResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Pincode       string    `json:"pincode"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	LicenseNumber string    `json:"license_number"`
	ImageURL      string    `json:"image_url"`
	IsOpen        bool      `json:"is_open"`
	OpeningTime   string    `json:"opening_time"`
	ClosingTime   string    `json:"closing_time"`
	IsVerified    bool      `json:"is_verified"`
	Rating        float64   `json:"rating"`
	TotalReviews  int       `json:"total_reviews"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListStoresResponse struct {
	Stores []StoreResponse `json:"stores"`
}

type NearbyStoreResponse struct {
	StoreResponse
	DistanceKm float64 `json:"distance_km"`
}

type ListNearbyStoresResponse struct {
	Stores []NearbyStoreResponse `json:"stores"`
}

type CreateStoreRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Pincode       string  `json:"pincode"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	LicenseNumber string  `json:"license_number"`
	ImageURL      string  `json:"image_url"`
	IsOpen        *bool   `json:"is_open"`
	OpeningTime   string  `json:"opening_time"`
	ClosingTime   string  `json:"closing_time"`
}

type RetailerStatsResponse struct {
	TotalMedicines int `json:"total_medicines"`
	LowStockCount  int `json:"low_stock_count"`
	TotalStores    int `json:"total_stores"`
}

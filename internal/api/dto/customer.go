package dto

import "time"

type CreateReviewRequest struct {
	StoreID  string `json:"store_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	UserName string `json:"user_name"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

type ListReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

type FavoriteResponse struct {
	ID        string         `json:"id"`
	StoreID   string         `json:"store_id"`
	Store     *StoreResponse `json:"store,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type ListFavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

type CreateAlertRequest struct {
	MedicineName string  `json:"medicine_name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusKm     float64 `json:"radius_km"`
}

type AlertResponse struct {
	ID           string    `json:"id"`
	MedicineName string    `json:"medicine_name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	RadiusKm     float64   `json:"radius_km"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListAlertsResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

type SearchRecordResponse struct {
	ID           string    `json:"id"`
	Query        string    `json:"search_query"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	ResultsCount int       `json:"results_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListSearchHistoryResponse struct {
	History []SearchRecordResponse `json:"history"`
}

type CustomerStatsResponse struct {
	TotalSearches  int `json:"total_searches"`
	FavoriteStores int `json:"favorite_stores"`
	ActiveAlerts   int `json:"active_alerts"`
}

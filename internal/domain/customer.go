package domain

import (
	"time"

	"github.com/google/uuid"
)

// A customer rating of a store. One review per user per store.
type Review struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StoreID   uuid.UUID
	Rating    int
	Comment   string
	UserName  string
	CreatedAt time.Time
}

type Favorite struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StoreID   uuid.UUID
	Store     *Store
	CreatedAt time.Time
}

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Message   string
	Type      string
	IsRead    bool
	Link      string
	CreatedAt time.Time
}

// A standing request to be notified when a named medicine becomes
// available within a radius of the user's saved position.
type MedicineAlert struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	MedicineName string
	Origin       Coordinates
	RadiusKm     float64
	IsActive     bool
	CreatedAt    time.Time
}

// One recorded customer search.
type SearchRecord struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Query        string
	Origin       Coordinates
	ResultsCount int
	CreatedAt    time.Time
}

type RetailerStats struct {
	TotalMedicines int
	LowStockCount  int
	TotalStores    int
}

type CustomerStats struct {
	TotalSearches  int
	FavoriteStores int
	ActiveAlerts   int
}

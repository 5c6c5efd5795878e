package domain

import (
	"time"

	"github.com/google/uuid"
)

// A retail pharmacy location owned by a retailer account.
// Stores are eligible for customer-facing search only while IsOpen is true.
type Store struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Name          string
	Description   string
	Address       string
	City          string
	State         string
	Pincode       string
	Location      Coordinates
	Phone         string
	Email         string
	LicenseNumber string
	ImageURL      string
	IsOpen        bool
	OpeningTime   string
	ClosingTime   string
	IsVerified    bool
	Rating        float64
	TotalReviews  int
	CreatedAt     time.Time
}

// A store annotated with its distance from a querying coordinate.
// Constructed per query, never persisted.
type NearbyStore struct {
	Store
	DistanceKm float64
}

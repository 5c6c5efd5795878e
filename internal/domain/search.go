package domain

import "github.com/google/uuid"

// SearchResult is a read-only projection joining a searchable medicine
// with its open store, augmented with the distance from the querying
// coordinate. Results exist only for the duration of one query.
//
// DistanceKm is rounded to two decimal places and never exceeds the
// radius the query was executed with.
type SearchResult struct {
	MedicineID   uuid.UUID
	MedicineName string
	GenericName  string
	Price        float64
	Quantity     int
	ImageURL     string
	StoreID      uuid.UUID
	StoreName    string
	StoreAddress string
	StoreLat     float64
	StoreLon     float64
	StorePhone   string
	DistanceKm   float64
}

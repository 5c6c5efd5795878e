package domain

import (
	"time"

	"github.com/google/uuid"
)

// A single inventory listing belonging to exactly one store.
type Medicine struct {
	ID            uuid.UUID
	StoreID       uuid.UUID
	CategoryID    *uuid.UUID
	Name          string
	GenericName   string
	Manufacturer  string
	Description   string
	Dosage        string
	Price         float64
	Quantity      int
	Unit          string
	ExpiryDate    *time.Time
	BatchNumber   string
	RequiresRx    bool
	ImageURL      string
	IsAvailable   bool
	MinStockAlert int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Searchable reports whether the medicine may appear in customer search
// results: listed as available and actually in stock.
func (m *Medicine) Searchable() bool {
	return m.IsAvailable && m.Quantity > 0
}

// LowStock reports whether the quantity has fallen to the reorder threshold.
func (m *Medicine) LowStock() bool {
	return m.Quantity <= m.MinStockAlert
}

type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	IconURL     string
}

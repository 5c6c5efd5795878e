package ports

import (
	"context"

	"github.com/google/uuid"

	"medicine-finder-service/internal/domain"
)

// SearchCandidate pairs a searchable medicine with its open store,
// pre-filtered by the data source before the radius check.
type SearchCandidate struct {
	Medicine domain.Medicine
	Store    domain.Store
}

// Port: boundary for retrieving and mutating medicine inventory.
type MedicineRepository interface {
	// Return medicines matching the term (case-insensitive substring on
	// name or generic name) that are available, in stock, and belong to
	// an open store.
	SearchCandidates(ctx context.Context, term string) ([]SearchCandidate, error)

	GetMedicine(ctx context.Context, id uuid.UUID) (*domain.Medicine, error)
	CreateMedicine(ctx context.Context, m *domain.Medicine) error
	UpdateMedicine(ctx context.Context, m *domain.Medicine) error
	DeleteMedicine(ctx context.Context, id uuid.UUID) error

	// Medicines in one store, optionally restricted to searchable ones.
	ListByStore(ctx context.Context, storeID uuid.UUID, availableOnly bool) ([]*domain.Medicine, error)
	// All medicines across the owner's stores, optionally one store.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, storeID *uuid.UUID) ([]*domain.Medicine, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)
}

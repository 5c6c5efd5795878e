package ports

import (
	"context"

	"github.com/google/uuid"

	"medicine-finder-service/internal/domain"
)

// Port: boundary for retrieving and mutating pharmacy stores.
type StoreRepository interface {
	CreateStore(ctx context.Context, s *domain.Store) error
	GetStore(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	UpdateStore(ctx context.Context, s *domain.Store) error
	DeleteStore(ctx context.Context, id uuid.UUID) error

	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Store, error)
	// All stores currently flagged open, for proximity filtering.
	ListOpen(ctx context.Context) ([]*domain.Store, error)
}

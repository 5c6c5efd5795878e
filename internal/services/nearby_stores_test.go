package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
)

type fakeStoreRepo struct {
	ports.StoreRepository
	open []*domain.Store
}

func (f *fakeStoreRepo) ListOpen(ctx context.Context) ([]*domain.Store, error) {
	return f.open, nil
}

func storeAt(id byte, km float64, open bool) *domain.Store {
	return &domain.Store{
		ID:       uuid.UUID{id},
		Name:     "Pharmacy",
		IsOpen:   open,
		Location: domain.Coordinates{Lat: km / 111.19, Lon: 0},
	}
}

func TestNearbyStores(t *testing.T) {
	repo := &fakeStoreRepo{open: []*domain.Store{
		storeAt(1, 9, true),
		storeAt(2, 2, true),
		storeAt(3, 25, true),
	}}

	stores, err := NearbyStores(context.Background(), domain.Coordinates{}, 10, repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stores) != 2 {
		t.Fatalf("expected 2 stores within 10km, got %d", len(stores))
	}
	if stores[0].ID != (uuid.UUID{2}) || stores[1].ID != (uuid.UUID{1}) {
		t.Fatalf("stores not sorted nearest first: %v, %v", stores[0].ID, stores[1].ID)
	}
	for _, s := range stores {
		if s.DistanceKm > 10 {
			t.Fatalf("store %v distance %v exceeds radius", s.ID, s.DistanceKm)
		}
	}
}

func TestNearbyStoresRejectsBadRadius(t *testing.T) {
	repo := &fakeStoreRepo{}

	if _, err := NearbyStores(context.Background(), domain.Coordinates{}, 0, repo); err == nil {
		t.Fatal("expected error for zero radius")
	}
	if _, err := NearbyStores(context.Background(), domain.Coordinates{}, -1, repo); err == nil {
		t.Fatal("expected error for negative radius")
	}
}

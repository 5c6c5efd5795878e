package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
)

// NearbyStores returns open stores within radiusKm of origin, nearest
// first. Same distance and ordering semantics as the medicine search.
func NearbyStores(
	ctx context.Context,
	origin domain.Coordinates,
	radiusKm float64,
	repo ports.StoreRepository,
) ([]domain.NearbyStore, error) {
	if !domain.ValidCoordinate(origin.Lat, origin.Lon) {
		return nil, domain.Invalid("coordinates", "latitude must be in [-90,90] and longitude in [-180,180]")
	}
	if radiusKm <= 0 {
		return nil, domain.Invalid("radius_km", "must be positive")
	}
	if radiusKm > MaxRadiusKm {
		return nil, domain.Invalid("radius_km", fmt.Sprintf("must not exceed %v", MaxRadiusKm))
	}

	stores, err := repo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("nearby stores: list open stores: %w", err)
	}

	type scored struct {
		store domain.NearbyStore
		dist  float64
	}

	matches := make([]scored, 0, len(stores))
	for _, s := range stores {
		if !s.IsOpen {
			continue
		}

		d := domain.Haversine(origin, s.Location)
		if d > radiusKm {
			continue
		}

		matches = append(matches, scored{
			store: domain.NearbyStore{Store: *s, DistanceKm: domain.RoundKm(d)},
			dist:  d,
		})
	}

	slices.SortFunc(matches, func(a, b scored) int {
		if a.dist < b.dist {
			return -1
		}
		if a.dist > b.dist {
			return 1
		}
		return strings.Compare(a.store.ID.String(), b.store.ID.String())
	})

	out := make([]domain.NearbyStore, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.store)
	}

	return out, nil
}

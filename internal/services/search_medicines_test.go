package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
)

type fakeMedicineRepo struct {
	ports.MedicineRepository
	candidates []ports.SearchCandidate
	calls      int
}

func (f *fakeMedicineRepo) SearchCandidates(ctx context.Context, term string) ([]ports.SearchCandidate, error) {
	f.calls++
	return f.candidates, nil
}

type memorySearchCache struct {
	m map[string][]domain.SearchResult
}

func newMemorySearchCache() *memorySearchCache {
	return &memorySearchCache{m: map[string][]domain.SearchResult{}}
}

func (c *memorySearchCache) Get(ctx context.Context, key string) ([]domain.SearchResult, bool, error) {
	r, ok := c.m[key]
	return r, ok, nil
}

func (c *memorySearchCache) Put(ctx context.Context, key string, results []domain.SearchResult) error {
	c.m[key] = results
	return nil
}

// candidate builds a searchable medicine at a store offset north of the
// origin by roughly km kilometers (1 degree latitude ~ 111.19 km).
func candidate(id byte, name string, km float64) ports.SearchCandidate {
	mid := uuid.UUID{id}
	sid := uuid.UUID{0xF0, id}
	return ports.SearchCandidate{
		Medicine: domain.Medicine{
			ID:          mid,
			StoreID:     sid,
			Name:        name,
			Price:       42.0,
			Quantity:    5,
			IsAvailable: true,
		},
		Store: domain.Store{
			ID:       sid,
			Name:     "Store " + name,
			IsOpen:   true,
			Location: domain.Coordinates{Lat: km / 111.19, Lon: 0},
		},
	}
}

func TestSearchMedicinesRadiusFilter(t *testing.T) {
	repo := &fakeMedicineRepo{candidates: []ports.SearchCandidate{
		candidate(1, "Paracetamol", 5),
	}}

	req := SearchMedicinesRequest{
		Query:    "paracetamol",
		Origin:   domain.Coordinates{Lat: 0, Lon: 0},
		RadiusKm: 10,
	}

	results, err := SearchMedicines(context.Background(), req, repo, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result within 10km, got %d", len(results))
	}
	if results[0].DistanceKm > req.RadiusKm {
		t.Fatalf("DistanceKm %v exceeds radius %v", results[0].DistanceKm, req.RadiusKm)
	}

	req.RadiusKm = 3
	results, err = SearchMedicines(context.Background(), req, repo, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results within 3km, got %d", len(results))
	}
}

func TestSearchMedicinesExcludesUnsearchable(t *testing.T) {
	outOfStock := candidate(1, "Aspirin", 1)
	outOfStock.Medicine.Quantity = 0

	closedStore := candidate(2, "Aspirin Forte", 1)
	closedStore.Store.IsOpen = false

	inStock := candidate(3, "Aspirin Plus", 1)

	repo := &fakeMedicineRepo{candidates: []ports.SearchCandidate{outOfStock, closedStore, inStock}}

	results, err := SearchMedicines(context.Background(), SearchMedicinesRequest{
		Query:    "aspirin",
		Origin:   domain.Coordinates{Lat: 0, Lon: 0},
		RadiusKm: 10,
	}, repo, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected only the stocked, open-store item, got %d results", len(results))
	}
	if results[0].MedicineID != inStock.Medicine.ID {
		t.Fatalf("wrong medicine survived filtering: %v", results[0].MedicineID)
	}
}

func TestSearchMedicinesOrderedByDistance(t *testing.T) {
	repo := &fakeMedicineRepo{candidates: []ports.SearchCandidate{
		candidate(1, "Ibuprofen", 8),
		candidate(2, "Ibuprofen", 2),
		candidate(3, "Ibuprofen", 5),
	}}

	results, err := SearchMedicines(context.Background(), SearchMedicinesRequest{
		Query:    "ibuprofen",
		Origin:   domain.Coordinates{Lat: 0, Lon: 0},
		RadiusKm: 10,
	}, repo, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].DistanceKm < results[i-1].DistanceKm {
			t.Fatalf("results not sorted ascending: %v then %v",
				results[i-1].DistanceKm, results[i].DistanceKm)
		}
	}
	if results[0].MedicineID != (uuid.UUID{2}) {
		t.Fatalf("nearest medicine should be first, got %v", results[0].MedicineID)
	}
}

func TestSearchMedicinesIdempotentAndCached(t *testing.T) {
	repo := &fakeMedicineRepo{candidates: []ports.SearchCandidate{
		candidate(1, "Cetirizine", 3),
		candidate(2, "Cetirizine", 7),
	}}
	cache := newMemorySearchCache()

	req := SearchMedicinesRequest{
		Query:    "cetirizine",
		Origin:   domain.Coordinates{Lat: 0, Lon: 0},
		RadiusKm: 10,
	}

	first, err := SearchMedicines(context.Background(), req, repo, cache, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := SearchMedicines(context.Background(), req, repo, cache, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("result count changed between identical searches: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("result %d differs between identical searches", i)
		}
	}
	if repo.calls != 1 {
		t.Fatalf("expected second search to hit the cache, repo queried %d times", repo.calls)
	}
}

func TestSearchMedicinesValidation(t *testing.T) {
	repo := &fakeMedicineRepo{}
	base := SearchMedicinesRequest{
		Query:    "paracetamol",
		Origin:   domain.Coordinates{Lat: 0, Lon: 0},
		RadiusKm: 10,
	}

	cases := []struct {
		name   string
		mutate func(*SearchMedicinesRequest)
	}{
		{"short query", func(r *SearchMedicinesRequest) { r.Query = "p" }},
		{"zero radius", func(r *SearchMedicinesRequest) { r.RadiusKm = 0 }},
		{"negative radius", func(r *SearchMedicinesRequest) { r.RadiusKm = -5 }},
		{"radius too large", func(r *SearchMedicinesRequest) { r.RadiusKm = 500 }},
		{"latitude out of range", func(r *SearchMedicinesRequest) { r.Origin.Lat = 91 }},
		{"longitude out of range", func(r *SearchMedicinesRequest) { r.Origin.Lon = -181 }},
	}

	for _, c := range cases {
		req := base
		c.mutate(&req)

		_, err := SearchMedicines(context.Background(), req, repo, nil, nil)
		if err == nil {
			t.Errorf("%s: expected validation error", c.name)
			continue
		}

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *domain.ValidationError, got %T: %v", c.name, err, err)
		}
	}
}

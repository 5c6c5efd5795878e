package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/google/uuid"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
)

const (
	DefaultRadiusKm = 10.0
	MaxRadiusKm     = 100.0
	minQueryLen     = 2
)

type SearchMedicinesRequest struct {
	Query    string
	Origin   domain.Coordinates
	RadiusKm float64
	// UserID, when set, records the search in history (best effort).
	UserID *uuid.UUID
}

// SearchMedicines finds searchable medicines within RadiusKm of Origin,
// nearest store first.
//
// The repository narrows candidates (availability, stock, open store,
// term match); the radius comparison runs here against the unrounded
// haversine distance so boundary cases are not distorted by rounding.
// Ordering is ascending distance with medicine id as a deterministic
// tiebreak, so an identical search over unchanged data returns an
// identical result set.
func SearchMedicines(
	ctx context.Context,
	req SearchMedicinesRequest,
	repo ports.MedicineRepository,
	cache ports.SearchCache,
	history ports.SearchHistoryRecorder,
) ([]domain.SearchResult, error) {
	term := strings.TrimSpace(req.Query)
	if len(term) < minQueryLen {
		return nil, domain.Invalid("query", fmt.Sprintf("must be at least %d characters", minQueryLen))
	}

	if !domain.ValidCoordinate(req.Origin.Lat, req.Origin.Lon) {
		return nil, domain.Invalid("coordinates", "latitude must be in [-90,90] and longitude in [-180,180]")
	}

	if req.RadiusKm <= 0 {
		return nil, domain.Invalid("radius_km", "must be positive")
	}
	if req.RadiusKm > MaxRadiusKm {
		return nil, domain.Invalid("radius_km", fmt.Sprintf("must not exceed %v", MaxRadiusKm))
	}

	key := searchCacheKey(term, req.Origin, req.RadiusKm)
	if cache != nil {
		cached, ok, err := cache.Get(ctx, key)
		if err != nil {
			log.Printf("search cache read failed: key=%s err=%v", key, err)
		} else if ok {
			recordSearch(ctx, req, term, len(cached), history)
			return cached, nil
		}
	}

	candidates, err := repo.SearchCandidates(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search medicines: list candidates: %w", err)
	}

	type scored struct {
		result domain.SearchResult
		dist   float64
	}

	matches := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		// The repository already filters these; re-checking keeps the
		// search invariants independent of the data source.
		if !c.Medicine.Searchable() || !c.Store.IsOpen {
			continue
		}

		d := domain.Haversine(req.Origin, c.Store.Location)
		if d > req.RadiusKm {
			continue
		}

		matches = append(matches, scored{
			result: domain.SearchResult{
				MedicineID:   c.Medicine.ID,
				MedicineName: c.Medicine.Name,
				GenericName:  c.Medicine.GenericName,
				Price:        c.Medicine.Price,
				Quantity:     c.Medicine.Quantity,
				ImageURL:     c.Medicine.ImageURL,
				StoreID:      c.Store.ID,
				StoreName:    c.Store.Name,
				StoreAddress: c.Store.Address,
				StoreLat:     c.Store.Location.Lat,
				StoreLon:     c.Store.Location.Lon,
				StorePhone:   c.Store.Phone,
				DistanceKm:   domain.RoundKm(d),
			},
			dist: d,
		})
	}

	// Sort on the unrounded distance so order stays monotonic with true
	// separation even when two rounded values tie.
	slices.SortFunc(matches, func(a, b scored) int {
		if a.dist < b.dist {
			return -1
		}
		if a.dist > b.dist {
			return 1
		}
		return strings.Compare(a.result.MedicineID.String(), b.result.MedicineID.String())
	})

	results := make([]domain.SearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.result)
	}

	if cache != nil {
		if err := cache.Put(ctx, key, results); err != nil {
			log.Printf("search cache write failed: key=%s err=%v", key, err)
		}
	}

	recordSearch(ctx, req, term, len(results), history)

	return results, nil
}

// recordSearch logs the search to history for identified users. Failures
// never fail the search itself.
func recordSearch(
	ctx context.Context,
	req SearchMedicinesRequest,
	term string,
	count int,
	history ports.SearchHistoryRecorder,
) {
	if history == nil || req.UserID == nil {
		return
	}

	rec := &domain.SearchRecord{
		UserID:       *req.UserID,
		Query:        term,
		Origin:       req.Origin,
		ResultsCount: count,
	}
	if err := history.RecordSearch(ctx, rec); err != nil {
		log.Printf("record search history failed: user_id=%s err=%v", req.UserID, err)
	}
}

// searchCacheKey normalizes the query parameters so equivalent searches
// share an entry. Coordinates are keyed at 4 decimal places (~11 m).
func searchCacheKey(term string, origin domain.Coordinates, radiusKm float64) string {
	normTerm := strings.ToLower(strings.Join(strings.Fields(term), " "))
	return fmt.Sprintf("search:%s:%.4f:%.4f:%.2f", normTerm, origin.Lat, origin.Lon, radiusKm)
}

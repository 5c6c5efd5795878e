package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"medicine-finder-service/internal/api/dto"
	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
)

type fakeMedicineRepo struct {
	ports.MedicineRepository
	candidates []ports.SearchCandidate
}

func (f *fakeMedicineRepo) SearchCandidates(ctx context.Context, term string) ([]ports.SearchCandidate, error) {
	return f.candidates, nil
}

// searchCandidate places a searchable medicine at a store roughly km
// kilometers north of the origin (1 degree latitude ~ 111.19 km).
func searchCandidate(id byte, name string, km float64) ports.SearchCandidate {
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

func doSearch(t *testing.T, h *SearchHandler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)
	return rec
}

func TestSearchReturnsOrderedResults(t *testing.T) {
	h := &SearchHandler{Repo: &fakeMedicineRepo{candidates: []ports.SearchCandidate{
		searchCandidate(1, "Paracetamol Far", 8),
		searchCandidate(2, "Paracetamol Near", 2),
		searchCandidate(3, "Paracetamol Mid", 5),
	}}}

	rec := doSearch(t, h, "/medicines/search?query=paracetamol&latitude=0&longitude=0&radius_km=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Count != 3 || len(res.Results) != 3 {
		t.Fatalf("count = %d, results = %d, want 3", res.Count, len(res.Results))
	}

	wantOrder := []string{"Paracetamol Near", "Paracetamol Mid", "Paracetamol Far"}
	for i, want := range wantOrder {
		if res.Results[i].MedicineName != want {
			t.Errorf("result %d = %s, want %s", i, res.Results[i].MedicineName, want)
		}
	}

	for i := 1; i < len(res.Results); i++ {
		if res.Results[i].DistanceKm < res.Results[i-1].DistanceKm {
			t.Errorf("distances not ascending at %d: %v < %v",
				i, res.Results[i].DistanceKm, res.Results[i-1].DistanceKm)
		}
	}
}

func TestSearchAppliesRadius(t *testing.T) {
	h := &SearchHandler{Repo: &fakeMedicineRepo{candidates: []ports.SearchCandidate{
		searchCandidate(1, "Aspirin In", 3),
		searchCandidate(2, "Aspirin Out", 30),
	}}}

	rec := doSearch(t, h, "/medicines/search?query=aspirin&latitude=0&longitude=0&radius_km=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res dto.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Count != 1 {
		t.Fatalf("count = %d, want 1", res.Count)
	}
	if res.Results[0].MedicineName != "Aspirin In" {
		t.Errorf("result = %s, want Aspirin In", res.Results[0].MedicineName)
	}
}

func TestSearchRejectsBadRequests(t *testing.T) {
	h := &SearchHandler{Repo: &fakeMedicineRepo{}}

	cases := []struct {
		name   string
		target string
	}{
		{"missing latitude", "/medicines/search?query=aspirin&longitude=0"},
		{"missing longitude", "/medicines/search?query=aspirin&latitude=0"},
		{"non-numeric latitude", "/medicines/search?query=aspirin&latitude=abc&longitude=0"},
		{"short query", "/medicines/search?query=a&latitude=0&longitude=0"},
		{"latitude out of range", "/medicines/search?query=aspirin&latitude=91&longitude=0"},
		{"negative radius", "/medicines/search?query=aspirin&latitude=0&longitude=0&radius_km=-1"},
		{"oversized radius", "/medicines/search?query=aspirin&latitude=0&longitude=0&radius_km=500"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doSearch(t, h, tc.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSearchUsesDefaultRadius(t *testing.T) {
	h := &SearchHandler{Repo: &fakeMedicineRepo{candidates: []ports.SearchCandidate{
		searchCandidate(1, "Ibuprofen Near", 8),
		searchCandidate(2, "Ibuprofen Out", 15),
	}}}

	rec := doSearch(t, h, "/medicines/search?query=ibuprofen&latitude=0&longitude=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var res dto.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// Default radius is 10 km: the 8 km store is in, the 15 km one out.
	if res.Count != 1 || res.Results[0].MedicineName != "Ibuprofen Near" {
		t.Fatalf("unexpected results: %+v", res.Results)
	}
}

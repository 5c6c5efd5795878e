package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"medicine-finder-service/internal/domain"
)

func newTestCache(t *testing.T) (*RedisSearchCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisSearchCache(client, time.Minute), mr
}

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			MedicineID:   uuid.New(),
			MedicineName: "Paracetamol 500mg",
			GenericName:  "Paracetamol",
			Price:        25.50,
			Quantity:     40,
			StoreID:      uuid.New(),
			StoreName:    "City Pharmacy",
			StoreLat:     28.6139,
			StoreLon:     77.2090,
			DistanceKm:   1.25,
		},
		{
			MedicineID:   uuid.New(),
			MedicineName: "Paracetamol 650mg",
			GenericName:  "Paracetamol",
			Price:        32.00,
			Quantity:     12,
			StoreID:      uuid.New(),
			StoreName:    "Health Plus",
			StoreLat:     28.6200,
			StoreLon:     77.2150,
			DistanceKm:   2.80,
		},
	}
}

func TestRedisSearchCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := sampleResults()
	if err := c.Put(ctx, "search:paracetamol:28.6139:77.2090:10.00", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, "search:paracetamol:28.6139:77.2090:10.00")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].MedicineID != want[i].MedicineID {
			t.Errorf("result %d: medicine id = %s, want %s", i, got[i].MedicineID, want[i].MedicineID)
		}
		if got[i].DistanceKm != want[i].DistanceKm {
			t.Errorf("result %d: distance = %v, want %v", i, got[i].DistanceKm, want[i].DistanceKm)
		}
	}
}

func TestRedisSearchCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, ok, err := c.Get(context.Background(), "search:missing:0.0000:0.0000:10.00")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected a cache miss")
	}
}

func TestRedisSearchCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "search:aspirin:28.6139:77.2090:10.00", sampleResults()); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "search:aspirin:28.6139:77.2090:10.00")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("entry should have expired")
	}
}

func TestRedisSearchCacheEmptyResultList(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Put(ctx, "search:nothing:28.6139:77.2090:10.00", []domain.SearchResult{}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, "search:nothing:28.6139:77.2090:10.00")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("empty result lists are cacheable, expected a hit")
	}
	if len(got) != 0 {
		t.Fatalf("got %d results, want 0", len(got))
	}
}

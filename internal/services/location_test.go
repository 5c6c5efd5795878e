package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"medicine-finder-service/internal/domain"
)

type providerFunc func(ctx context.Context) (domain.Coordinates, error)

func (f providerFunc) Current(ctx context.Context) (domain.Coordinates, error) { return f(ctx) }

func TestLocationSetGetClear(t *testing.T) {
	svc := NewLocationService(nil)

	if _, ok := svc.Get(); ok {
		t.Fatal("new service should have no fix")
	}

	if err := svc.Set(28.6139, 77.2090); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos, ok := svc.Get()
	if !ok {
		t.Fatal("expected a fix after Set")
	}
	if pos.Lat != 28.6139 || pos.Lon != 77.2090 {
		t.Fatalf("unexpected position: %v", pos)
	}

	svc.Clear()
	if _, ok := svc.Get(); ok {
		t.Fatal("expected no fix after Clear")
	}
}

func TestLocationSetRejectsOutOfRange(t *testing.T) {
	svc := NewLocationService(nil)

	var verr *domain.ValidationError
	if err := svc.Set(91, 0); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Set(0, 181); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLocationSetClearsErrorState(t *testing.T) {
	svc := NewLocationService(providerFunc(func(ctx context.Context) (domain.Coordinates, error) {
		return domain.Coordinates{}, domain.ErrPermissionDenied
	}))

	if _, err := svc.Locate(context.Background()); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if svc.Err() == nil {
		t.Fatal("error state should be stored after failed Locate")
	}

	if err := svc.Set(10, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Err() != nil {
		t.Fatal("Set must clear stale error state")
	}
}

func TestLocateReusesFreshFix(t *testing.T) {
	calls := 0
	svc := NewLocationService(providerFunc(func(ctx context.Context) (domain.Coordinates, error) {
		calls++
		return domain.Coordinates{Lat: 1, Lon: 2}, nil
	}))

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.Locate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Within the validity window the cached fix is reused.
	now = now.Add(4 * time.Minute)
	if _, err := svc.Locate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 sensor read, got %d", calls)
	}

	// Past the window the provider is sampled again.
	now = now.Add(2 * time.Minute)
	if _, err := svc.Locate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a resample after expiry, got %d reads", calls)
	}
}

func TestLocateMapsTimeout(t *testing.T) {
	svc := NewLocationService(providerFunc(func(ctx context.Context) (domain.Coordinates, error) {
		return domain.Coordinates{}, context.DeadlineExceeded
	}))

	if _, err := svc.Locate(context.Background()); !errors.Is(err, domain.ErrLocationTimeout) {
		t.Fatalf("expected timeout kind, got %v", err)
	}
}

func TestDistanceFrom(t *testing.T) {
	svc := NewLocationService(nil)

	if _, err := svc.DistanceFrom(19.0760, 72.8777); !errors.Is(err, domain.ErrPositionUnavailable) {
		t.Fatalf("expected position unavailable without a fix, got %v", err)
	}

	if err := svc.Set(28.6139, 77.2090); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d, err := svc.DistanceFrom(19.0760, 72.8777)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d-1154) > 5 {
		t.Fatalf("Delhi-Mumbai distance = %v, want 1154 +/- 5", d)
	}
	if d != domain.RoundKm(d) {
		t.Fatalf("DistanceFrom must report two-decimal precision, got %v", d)
	}
}

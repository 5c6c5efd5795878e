package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
)

const (
	locateTimeout  = 10 * time.Second
	positionMaxAge = 5 * time.Minute
)

// LocationService tracks one last-known position with explicit get, set,
// clear, and distance-from semantics. Sensor reads are single-shot: one
// timeout-bounded sample per Locate call, a fresh-enough previous fix is
// reused without resampling, and failures are never retried automatically.
//
// Safe for concurrent use. The sensor call runs outside the lock.
type LocationService struct {
	provider ports.LocationProvider
	timeout  time.Duration
	maxAge   time.Duration
	now      func() time.Time

	mu      sync.Mutex
	pos     domain.Coordinates
	fixedAt time.Time
	haveFix bool
	lastErr error
}

func NewLocationService(provider ports.LocationProvider) *LocationService {
	return &LocationService{
		provider: provider,
		timeout:  locateTimeout,
		maxAge:   positionMaxAge,
		now:      time.Now,
	}
}

// Locate returns the current position, sampling the provider only when no
// fix newer than the validity window exists. Failure kinds surface as
// domain.ErrPermissionDenied, domain.ErrPositionUnavailable, or
// domain.ErrLocationTimeout and are stored until the next Set or Clear.
func (l *LocationService) Locate(ctx context.Context) (domain.Coordinates, error) {
	l.mu.Lock()
	if l.haveFix && l.now().Sub(l.fixedAt) <= l.maxAge {
		pos := l.pos
		l.mu.Unlock()
		return pos, nil
	}
	l.mu.Unlock()

	if l.provider == nil {
		err := domain.ErrPositionUnavailable
		l.setErr(err)
		return domain.Coordinates{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	pos, err := l.provider.Current(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = domain.ErrLocationTimeout
		}
		l.setErr(err)
		return domain.Coordinates{}, err
	}

	if !domain.ValidCoordinate(pos.Lat, pos.Lon) {
		err := domain.ErrPositionUnavailable
		l.setErr(err)
		return domain.Coordinates{}, err
	}

	l.mu.Lock()
	l.pos = pos
	l.fixedAt = l.now()
	l.haveFix = true
	l.lastErr = nil
	l.mu.Unlock()

	return pos, nil
}

// Get returns the last-known position and whether one exists. It never
// triggers a sensor read.
func (l *LocationService) Get() (domain.Coordinates, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pos, l.haveFix
}

// Set replaces the last-known position with a manually supplied one and
// clears any stale error state.
func (l *LocationService) Set(lat, lon float64) error {
	if !domain.ValidCoordinate(lat, lon) {
		return domain.Invalid("coordinates", "latitude must be in [-90,90] and longitude in [-180,180]")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.pos = domain.Coordinates{Lat: lat, Lon: lon}
	l.fixedAt = l.now()
	l.haveFix = true
	l.lastErr = nil
	return nil
}

// Clear forgets the position and any stored error.
func (l *LocationService) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.haveFix = false
	l.pos = domain.Coordinates{}
	l.lastErr = nil
}

// Err returns the failure from the most recent unsuccessful Locate, if
// it has not been cleared by a later Set, Clear, or successful Locate.
func (l *LocationService) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// DistanceFrom returns the rounded distance from the last-known position
// to the given coordinate. Mirrors the search-side formula exactly, with
// the two-decimal reporting precision.
func (l *LocationService) DistanceFrom(lat, lon float64) (float64, error) {
	if !domain.ValidCoordinate(lat, lon) {
		return 0, domain.Invalid("coordinates", "latitude must be in [-90,90] and longitude in [-180,180]")
	}

	l.mu.Lock()
	pos, ok := l.pos, l.haveFix
	l.mu.Unlock()

	if !ok {
		return 0, domain.ErrPositionUnavailable
	}

	return domain.RoundKm(domain.Haversine(pos, domain.Coordinates{Lat: lat, Lon: lon})), nil
}

func (l *LocationService) setErr(err error) {
	l.mu.Lock()
	l.lastErr = err
	l.mu.Unlock()
}

package location

import (
	"context"

	"medicine-finder-service/internal/domain"
)

// MockLocationProvider returns a fixed position. Useful for local
// development and tests where no real position source is reachable.
type MockLocationProvider struct {
	Pos domain.Coordinates
	Err error
}

func NewMockLocationProvider(lat, lon float64) *MockLocationProvider {
	return &MockLocationProvider{Pos: domain.Coordinates{Lat: lat, Lon: lon}}
}

func (p *MockLocationProvider) Current(ctx context.Context) (domain.Coordinates, error) {
	if p.Err != nil {
		return domain.Coordinates{}, p.Err
	}
	return p.Pos, nil
}

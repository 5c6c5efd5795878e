package ports

import (
	"context"

	"medicine-finder-service/internal/domain"
)

// Port: a live position source (device sensor, geo-IP, operator input).
// A single call is a single sample; callers own timeout and reuse policy.
// Failures are reported as the domain location error kinds.
type LocationProvider interface {
	Current(ctx context.Context) (domain.Coordinates, error)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
)

// MatchAlerts notifies customers whose active medicine alerts are
// satisfied by the given medicine at the given store: the alert name
// matches (case-insensitive substring on name or generic name) and the
// store lies within the alert's radius of the saved position.
//
// Called after a medicine is created or restocked. Returns the number of
// notifications written.
func MatchAlerts(
	ctx context.Context,
	med *domain.Medicine,
	store *domain.Store,
	customers ports.CustomerRepository,
) (int, error) {
	if med == nil || store == nil {
		return 0, nil
	}
	if !med.Searchable() || !store.IsOpen {
		return 0, nil
	}

	alerts, err := customers.ListActiveAlerts(ctx)
	if err != nil {
		return 0, fmt.Errorf("match alerts: list active alerts: %w", err)
	}

	name := strings.ToLower(med.Name)
	generic := strings.ToLower(med.GenericName)

	notified := 0
	for _, a := range alerts {
		want := strings.ToLower(strings.TrimSpace(a.MedicineName))
		if want == "" {
			continue
		}
		if !strings.Contains(name, want) && !strings.Contains(generic, want) {
			continue
		}

		d := domain.Haversine(a.Origin, store.Location)
		if d > a.RadiusKm {
			continue
		}

		n := &domain.Notification{
			UserID: a.UserID,
			Title:  "Medicine available nearby",
			Message: fmt.Sprintf(
				"%s is in stock at %s (%.2f km away)",
				med.Name, store.Name, domain.RoundKm(d),
			),
			Type: "medicine_alert",
			Link: "/medicines/" + med.ID.String(),
		}
		if err := customers.CreateNotification(ctx, n); err != nil {
			return notified, fmt.Errorf("match alerts: notify user %s: %w", a.UserID, err)
		}
		notified++
	}

	return notified, nil
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/ports"
)

type fakeCustomers struct {
	ports.CustomerRepository
	alerts        []*domain.MedicineAlert
	notifications []*domain.Notification
}

func (f *fakeCustomers) ListActiveAlerts(ctx context.Context) ([]*domain.MedicineAlert, error) {
	return f.alerts, nil
}

func (f *fakeCustomers) CreateNotification(ctx context.Context, n *domain.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func TestMatchAlerts(t *testing.T) {
	med := &domain.Medicine{
		ID:          uuid.UUID{1},
		Name:        "Paracetamol 500mg",
		GenericName: "Acetaminophen",
		Quantity:    10,
		IsAvailable: true,
	}
	store := &domain.Store{
		ID:       uuid.UUID{2},
		Name:     "City Pharmacy",
		IsOpen:   true,
		Location: domain.Coordinates{Lat: 0, Lon: 0},
	}

	inRange := &domain.MedicineAlert{
		UserID:       uuid.UUID{10},
		MedicineName: "paracetamol",
		Origin:       domain.Coordinates{Lat: 5.0 / 111.19, Lon: 0},
		RadiusKm:     10,
	}
	byGeneric := &domain.MedicineAlert{
		UserID:       uuid.UUID{11},
		MedicineName: "acetaminophen",
		Origin:       domain.Coordinates{Lat: 0, Lon: 0},
		RadiusKm:     10,
	}
	outOfRange := &domain.MedicineAlert{
		UserID:       uuid.UUID{12},
		MedicineName: "paracetamol",
		Origin:       domain.Coordinates{Lat: 50.0 / 111.19, Lon: 0},
		RadiusKm:     10,
	}
	wrongName := &domain.MedicineAlert{
		UserID:       uuid.UUID{13},
		MedicineName: "insulin",
		Origin:       domain.Coordinates{Lat: 0, Lon: 0},
		RadiusKm:     10,
	}

	customers := &fakeCustomers{alerts: []*domain.MedicineAlert{inRange, byGeneric, outOfRange, wrongName}}

	n, err := MatchAlerts(context.Background(), med, store, customers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 notifications, got %d", n)
	}

	seen := map[uuid.UUID]bool{}
	for _, note := range customers.notifications {
		seen[note.UserID] = true
		if note.Type != "medicine_alert" {
			t.Errorf("unexpected notification type %q", note.Type)
		}
	}
	if !seen[inRange.UserID] || !seen[byGeneric.UserID] {
		t.Fatalf("wrong users notified: %v", seen)
	}
}

func TestMatchAlertsSkipsUnsearchable(t *testing.T) {
	store := &domain.Store{IsOpen: true}
	customers := &fakeCustomers{alerts: []*domain.MedicineAlert{{
		MedicineName: "paracetamol",
		RadiusKm:     10,
	}}}

	outOfStock := &domain.Medicine{Name: "Paracetamol", Quantity: 0, IsAvailable: true}
	if n, _ := MatchAlerts(context.Background(), outOfStock, store, customers); n != 0 {
		t.Fatalf("out-of-stock medicine must not trigger alerts, got %d", n)
	}

	closed := &domain.Store{IsOpen: false}
	stocked := &domain.Medicine{Name: "Paracetamol", Quantity: 3, IsAvailable: true}
	if n, _ := MatchAlerts(context.Background(), stocked, closed, customers); n != 0 {
		t.Fatalf("closed store must not trigger alerts, got %d", n)
	}
}

package ports

import (
	"context"

	"github.com/google/uuid"

	"medicine-finder-service/internal/domain"
)

// Port: boundary for customer-side records (reviews, favorites,
// notifications, alerts, search history).
type CustomerRepository interface {
	CreateReview(ctx context.Context, r *domain.Review) error
	ListReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)
	ListReviewsByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Review, error)

	AddFavorite(ctx context.Context, userID, storeID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, storeID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error)

	ListNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error)
	CreateNotification(ctx context.Context, n *domain.Notification) error
	MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error

	CreateAlert(ctx context.Context, a *domain.MedicineAlert) error
	ListAlertsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.MedicineAlert, error)
	ListActiveAlerts(ctx context.Context) ([]*domain.MedicineAlert, error)
	DeleteAlert(ctx context.Context, userID, alertID uuid.UUID) error

	SearchHistoryRecorder
	ListSearchHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.SearchRecord, error)

	CustomerStats(ctx context.Context, userID uuid.UUID) (domain.CustomerStats, error)
}

// SearchHistoryRecorder is the narrow slice of the customer boundary the
// search service needs for best-effort history logging.
type SearchHistoryRecorder interface {
	RecordSearch(ctx context.Context, rec *domain.SearchRecord) error
}

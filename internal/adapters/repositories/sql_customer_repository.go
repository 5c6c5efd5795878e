package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"medicine-finder-service/internal/domain"
)

// Postgres-backed implementation of the CustomerRepository port.
type SQLCustomerRepository struct{ DB *sql.DB }

func NewSQLCustomerRepository(db *sql.DB) *SQLCustomerRepository {
	return &SQLCustomerRepository{DB: db}
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// ============= Reviews =============

func (r *SQLCustomerRepository) CreateReview(ctx context.Context, rv *domain.Review) error {
	if r.DB == nil {
		return errors.New("customer repository: DB is nil")
	}

	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}

	query := `
	INSERT INTO reviews (id, user_id, store_id, rating, comment, user_name)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at;
	`

	err := r.DB.QueryRowContext(ctx, query,
		rv.ID, rv.UserID, rv.StoreID, rv.Rating, rv.Comment, rv.UserName,
	).Scan(&rv.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("create review: insert: %w", err)
	}

	return nil
}

func (r *SQLCustomerRepository) ListReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error) {
	return r.listReviews(ctx,
		`SELECT id, user_id, store_id, rating, comment, user_name, created_at
		 FROM reviews WHERE user_id = $1 ORDER BY created_at DESC;`, userID)
}

func (r *SQLCustomerRepository) ListReviewsByStore(ctx context.Context, storeID uuid.UUID) ([]*domain.Review, error) {
	return r.listReviews(ctx,
		`SELECT id, user_id, store_id, rating, comment, user_name, created_at
		 FROM reviews WHERE store_id = $1 ORDER BY created_at DESC;`, storeID)
}

func (r *SQLCustomerRepository) listReviews(ctx context.Context, query string, arg any) ([]*domain.Review, error) {
	if r.DB == nil {
		return nil, errors.New("customer repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list reviews: query: %w", err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0, 16)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.StoreID, &rv.Rating, &rv.Comment, &rv.UserName, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("list reviews: scan row: %w", err)
		}
		reviews = append(reviews, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: row iteration: %w", err)
	}

	return reviews, nil
}

// ============= Favorites =============

func (r *SQLCustomerRepository) AddFavorite(ctx context.Context, userID, storeID uuid.UUID) error {
	if r.DB == nil {
		return errors.New("customer repository: DB is nil")
	}

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO favorites (id, user_id, store_id) VALUES ($1, $2, $3);`,
		uuid.New(), userID, storeID,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("add favorite: insert: %w", err)
	}

	return nil
}

func (r *SQLCustomerRepository) RemoveFavorite(ctx context.Context, userID, storeID uuid.UUID) error {
	if r.DB == nil {
		return errors.New("customer repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND store_id = $2;`, userID, storeID)
	if err != nil {
		return fmt.Errorf("remove favorite: exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove favorite: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SQLCustomerRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*domain.Favorite, error) {
	if r.DB == nil {
		return nil, errors.New("customer repository: DB is nil")
	}

	query := `
	SELECT f.id, f.user_id, f.store_id, f.created_at, ` + storeColumns + `
	FROM favorites f
	JOIN stores ON stores.id = f.store_id
	WHERE f.user_id = $1
	ORDER BY f.created_at DESC;
	`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: query: %w", err)
	}
	defer rows.Close()

	favorites := make([]*domain.Favorite, 0, 16)
	for rows.Next() {
		var f domain.Favorite
		var s domain.Store
		err := rows.Scan(
			&f.ID, &f.UserID, &f.StoreID, &f.CreatedAt,
			&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Address, &s.City, &s.State, &s.Pincode,
			&s.Location.Lat, &s.Location.Lon, &s.Phone, &s.Email, &s.LicenseNumber, &s.ImageURL,
			&s.IsOpen, &s.OpeningTime, &s.ClosingTime, &s.IsVerified, &s.Rating, &s.TotalReviews, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list favorites: scan row: %w", err)
		}
		f.Store = &s
		favorites = append(favorites, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list favorites: row iteration: %w", err)
	}

	return favorites, nil
}

// ============= Notifications =============

func (r *SQLCustomerRepository) ListNotifications(
	ctx context.Context,
	userID uuid.UUID,
	unreadOnly bool,
) ([]*domain.Notification, error) {
	if r.DB == nil {
		return nil, errors.New("customer repository: DB is nil")
	}

	query := `
	SELECT id, user_id, title, message, type, is_read, link, created_at
	FROM notifications
	WHERE user_id = $1`
	if unreadOnly {
		query += ` AND NOT is_read`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Notification, 0, 16)
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.Link, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("list notifications: scan row: %w", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: row iteration: %w", err)
	}

	return out, nil
}

func (r *SQLCustomerRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	if r.DB == nil {
		return errors.New("customer repository: DB is nil")
	}

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Type == "" {
		n.Type = "info"
	}

	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO notifications (id, user_id, title, message, type, link)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at;`,
		n.ID, n.UserID, n.Title, n.Message, n.Type, n.Link,
	).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("create notification: insert: %w", err)
	}

	return nil
}

func (r *SQLCustomerRepository) MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if r.DB == nil {
		return errors.New("customer repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2;`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SQLCustomerRepository) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	if r.DB == nil {
		return errors.New("customer repository: DB is nil")
	}

	if _, err := r.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("mark all notifications read: exec: %w", err)
	}

	return nil
}

// ============= Medicine alerts =============

func (r *SQLCustomerRepository) CreateAlert(ctx context.Context, a *domain.MedicineAlert) error {
	if r.DB == nil {
		return errors.New("customer repository: DB is nil")
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO medicine_alerts (id, user_id, medicine_name, user_latitude, user_longitude, radius_km)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING is_active, created_at;`,
		a.ID, a.UserID, a.MedicineName, a.Origin.Lat, a.Origin.Lon, a.RadiusKm,
	).Scan(&a.IsActive, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create alert: insert: %w", err)
	}

	return nil
}

func (r *SQLCustomerRepository) ListAlertsByUser(ctx context.Context, userID uuid.UUID) ([]*domain.MedicineAlert, error) {
	return r.listAlerts(ctx,
		`SELECT id, user_id, medicine_name, user_latitude, user_longitude, radius_km, is_active, created_at
		 FROM medicine_alerts WHERE user_id = $1 ORDER BY created_at DESC;`, userID)
}

func (r *SQLCustomerRepository) ListActiveAlerts(ctx context.Context) ([]*domain.MedicineAlert, error) {
	return r.listAlerts(ctx,
		`SELECT id, user_id, medicine_name, user_latitude, user_longitude, radius_km, is_active, created_at
		 FROM medicine_alerts WHERE is_active;`)
}

func (r *SQLCustomerRepository) listAlerts(ctx context.Context, query string, args ...any) ([]*domain.MedicineAlert, error) {
	if r.DB == nil {
		return nil, errors.New("customer repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: query: %w", err)
	}
	defer rows.Close()

	alerts := make([]*domain.MedicineAlert, 0, 16)
	for rows.Next() {
		var a domain.MedicineAlert
		err := rows.Scan(&a.ID, &a.UserID, &a.MedicineName,
			&a.Origin.Lat, &a.Origin.Lon, &a.RadiusKm, &a.IsActive, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list alerts: scan row: %w", err)
		}
		alerts = append(alerts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list alerts: row iteration: %w", err)
	}

	return alerts, nil
}

func (r *SQLCustomerRepository) DeleteAlert(ctx context.Context, userID, alertID uuid.UUID) error {
	if r.DB == nil {
		return errors.New("customer repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM medicine_alerts WHERE id = $1 AND user_id = $2;`, alertID, userID)
	if err != nil {
		return fmt.Errorf("delete alert: exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete alert: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ============= Search history =============

func (r *SQLCustomerRepository) RecordSearch(ctx context.Context, rec *domain.SearchRecord) error {
	if r.DB == nil {
		return errors.New("customer repository: DB is nil")
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO search_history (id, user_id, search_query, user_latitude, user_longitude, results_count)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at;`,
		rec.ID, rec.UserID, rec.Query, rec.Origin.Lat, rec.Origin.Lon, rec.ResultsCount,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("record search: insert: %w", err)
	}

	return nil
}

func (r *SQLCustomerRepository) ListSearchHistory(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.SearchRecord, error) {
	if r.DB == nil {
		return nil, errors.New("customer repository: DB is nil")
	}

	if limit <= 0 || limit > 50 {
		limit = 10
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, search_query, user_latitude, user_longitude, results_count, created_at
		 FROM search_history WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2;`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list search history: query: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.SearchRecord, 0, limit)
	for rows.Next() {
		var rec domain.SearchRecord
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.Query,
			&rec.Origin.Lat, &rec.Origin.Lon, &rec.ResultsCount, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list search history: scan row: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list search history: row iteration: %w", err)
	}

	return records, nil
}

// ============= Dashboard stats =============

func (r *SQLCustomerRepository) CustomerStats(ctx context.Context, userID uuid.UUID) (domain.CustomerStats, error) {
	if r.DB == nil {
		return domain.CustomerStats{}, errors.New("customer repository: DB is nil")
	}

	var stats domain.CustomerStats

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM search_history WHERE user_id = $1;`, &stats.TotalSearches},
		{`SELECT COUNT(*) FROM favorites WHERE user_id = $1;`, &stats.FavoriteStores},
		{`SELECT COUNT(*) FROM medicine_alerts WHERE user_id = $1 AND is_active;`, &stats.ActiveAlerts},
	}

	for _, c := range counts {
		if err := r.DB.QueryRowContext(ctx, c.query, userID).Scan(c.dest); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return domain.CustomerStats{}, fmt.Errorf("customer stats: %w", err)
		}
	}

	return stats, nil
}

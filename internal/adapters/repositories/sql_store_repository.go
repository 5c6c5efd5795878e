package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"medicine-finder-service/internal/domain"
)

// Postgres-backed implementation of the StoreRepository port.
type SQLStoreRepository struct{ DB *sql.DB }

func NewSQLStoreRepository(db *sql.DB) *SQLStoreRepository {
	return &SQLStoreRepository{DB: db}
}

const storeColumns = `
	id, owner_id, store_name, description, address, city, state, pincode,
	latitude, longitude, phone, email, license_number, store_image_url,
	is_open, opening_time, closing_time, is_verified, rating, total_reviews, created_at
`

func scanStore(row interface{ Scan(...any) error }) (*domain.Store, error) {
	var s domain.Store
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Address, &s.City, &s.State, &s.Pincode,
		&s.Location.Lat, &s.Location.Lon, &s.Phone, &s.Email, &s.LicenseNumber, &s.ImageURL,
		&s.IsOpen, &s.OpeningTime, &s.ClosingTime, &s.IsVerified, &s.Rating, &s.TotalReviews, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLStoreRepository) CreateStore(ctx context.Context, s *domain.Store) error {
	if r.DB == nil {
		return errors.New("store repository: DB is nil")
	}

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	query := `
	INSERT INTO stores (
		id, owner_id, store_name, description, address, city, state, pincode,
		latitude, longitude, phone, email, license_number, store_image_url,
		is_open, opening_time, closing_time
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING created_at, is_verified, rating, total_reviews;
	`

	err := r.DB.QueryRowContext(ctx, query,
		s.ID, s.OwnerID, s.Name, s.Description, s.Address, s.City, s.State, s.Pincode,
		s.Location.Lat, s.Location.Lon, s.Phone, s.Email, s.LicenseNumber, s.ImageURL,
		s.IsOpen, s.OpeningTime, s.ClosingTime,
	).Scan(&s.CreatedAt, &s.IsVerified, &s.Rating, &s.TotalReviews)
	if err != nil {
		return fmt.Errorf("create store: insert: %w", err)
	}

	return nil
}

func (r *SQLStoreRepository) GetStore(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	if r.DB == nil {
		return nil, errors.New("store repository: DB is nil")
	}

	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1;`

	s, err := scanStore(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get store: query: %w", err)
	}

	return s, nil
}

func (r *SQLStoreRepository) UpdateStore(ctx context.Context, s *domain.Store) error {
	if r.DB == nil {
		return errors.New("store repository: DB is nil")
	}

	query := `
	UPDATE stores
	SET store_name = $2, description = $3, address = $4, city = $5, state = $6,
		pincode = $7, latitude = $8, longitude = $9, phone = $10, email = $11,
		license_number = $12, store_image_url = $13, is_open = $14,
		opening_time = $15, closing_time = $16
	WHERE id = $1;
	`

	res, err := r.DB.ExecContext(ctx, query,
		s.ID, s.Name, s.Description, s.Address, s.City, s.State,
		s.Pincode, s.Location.Lat, s.Location.Lon, s.Phone, s.Email,
		s.LicenseNumber, s.ImageURL, s.IsOpen, s.OpeningTime, s.ClosingTime,
	)
	if err != nil {
		return fmt.Errorf("update store: exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update store: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SQLStoreRepository) DeleteStore(ctx context.Context, id uuid.UUID) error {
	if r.DB == nil {
		return errors.New("store repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM stores WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete store: exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete store: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SQLStoreRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Store, error) {
	return r.list(ctx, `SELECT `+storeColumns+` FROM stores WHERE owner_id = $1 ORDER BY created_at;`, ownerID)
}

func (r *SQLStoreRepository) ListOpen(ctx context.Context) ([]*domain.Store, error) {
	return r.list(ctx, `SELECT `+storeColumns+` FROM stores WHERE is_open ORDER BY created_at;`)
}

func (r *SQLStoreRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Store, error) {
	if r.DB == nil {
		return nil, errors.New("store repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: query: %w", err)
	}
	defer rows.Close()

	stores := make([]*domain.Store, 0, 16)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("list stores: scan row: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: row iteration: %w", err)
	}

	return stores, nil
}

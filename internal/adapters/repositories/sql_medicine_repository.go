package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"medicine-finder-service/internal/domain"
	"medicine-finder-service/internal/platform/obs"
	"medicine-finder-service/internal/ports"
)

// Postgres-backed implementation of the MedicineRepository port.
type SQLMedicineRepository struct{ DB *sql.DB }

func NewSQLMedicineRepository(db *sql.DB) *SQLMedicineRepository {
	return &SQLMedicineRepository{DB: db}
}

const medicineColumns = `
	id, store_id, category_id, name, generic_name, manufacturer, description,
	dosage, price, quantity, unit, expiry_date, batch_number,
	requires_prescription, image_url, is_available, min_stock_alert,
	created_at, updated_at
`

func scanMedicine(row interface{ Scan(...any) error }) (*domain.Medicine, error) {
	var m domain.Medicine
	err := row.Scan(
		&m.ID, &m.StoreID, &m.CategoryID, &m.Name, &m.GenericName, &m.Manufacturer,
		&m.Description, &m.Dosage, &m.Price, &m.Quantity, &m.Unit, &m.ExpiryDate,
		&m.BatchNumber, &m.RequiresRx, &m.ImageURL, &m.IsAvailable, &m.MinStockAlert,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SearchCandidates narrows the inventory in SQL: availability, stock,
// open store, and the case-insensitive term match. The radius filter
// stays in the service so the distance formula lives in one place.
func (r *SQLMedicineRepository) SearchCandidates(
	ctx context.Context,
	term string,
) (_ []ports.SearchCandidate, err error) {
	defer obs.Time(ctx, "medicines.SearchCandidates")(&err)

	if r.DB == nil {
		return nil, errors.New("medicine repository: DB is nil")
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("search candidates: term must not be empty")
	}

	query := `
	SELECT
		m.id, m.name, m.generic_name, m.price, m.quantity, m.image_url, m.is_available,
		s.id, s.store_name, s.address, s.latitude, s.longitude, s.phone, s.is_open
	FROM medicines m
	JOIN stores s ON s.id = m.store_id
	WHERE m.is_available
		AND m.quantity > 0
		AND s.is_open
		AND (m.name ILIKE '%' || $1 || '%' OR m.generic_name ILIKE '%' || $1 || '%');
	`

	rows, err := r.DB.QueryContext(ctx, query, term)
	if err != nil {
		return nil, fmt.Errorf("search candidates: query medicines: %w", err)
	}
	defer rows.Close()

	out := make([]ports.SearchCandidate, 0, 32)
	for rows.Next() {
		var c ports.SearchCandidate
		err := rows.Scan(
			&c.Medicine.ID, &c.Medicine.Name, &c.Medicine.GenericName,
			&c.Medicine.Price, &c.Medicine.Quantity, &c.Medicine.ImageURL, &c.Medicine.IsAvailable,
			&c.Store.ID, &c.Store.Name, &c.Store.Address,
			&c.Store.Location.Lat, &c.Store.Location.Lon, &c.Store.Phone, &c.Store.IsOpen,
		)
		if err != nil {
			return nil, fmt.Errorf("search candidates: scan row: %w", err)
		}
		c.Medicine.StoreID = c.Store.ID
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search candidates: row iteration: %w", err)
	}

	return out, nil
}

func (r *SQLMedicineRepository) GetMedicine(ctx context.Context, id uuid.UUID) (*domain.Medicine, error) {
	if r.DB == nil {
		return nil, errors.New("medicine repository: DB is nil")
	}

	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1;`

	m, err := scanMedicine(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get medicine: query: %w", err)
	}

	return m, nil
}

func (r *SQLMedicineRepository) CreateMedicine(ctx context.Context, m *domain.Medicine) error {
	if r.DB == nil {
		return errors.New("medicine repository: DB is nil")
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Unit == "" {
		m.Unit = "strips"
	}

	query := `
	INSERT INTO medicines (
		id, store_id, category_id, name, generic_name, manufacturer, description,
		dosage, price, quantity, unit, expiry_date, batch_number,
		requires_prescription, image_url, is_available, min_stock_alert
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING created_at, updated_at;
	`

	err := r.DB.QueryRowContext(ctx, query,
		m.ID, m.StoreID, m.CategoryID, m.Name, m.GenericName, m.Manufacturer, m.Description,
		m.Dosage, m.Price, m.Quantity, m.Unit, m.ExpiryDate, m.BatchNumber,
		m.RequiresRx, m.ImageURL, m.IsAvailable, m.MinStockAlert,
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create medicine: insert: %w", err)
	}

	return nil
}

func (r *SQLMedicineRepository) UpdateMedicine(ctx context.Context, m *domain.Medicine) error {
	if r.DB == nil {
		return errors.New("medicine repository: DB is nil")
	}

	query := `
	UPDATE medicines
	SET category_id = $2, name = $3, generic_name = $4, manufacturer = $5,
		description = $6, dosage = $7, price = $8, quantity = $9, unit = $10,
		expiry_date = $11, batch_number = $12, requires_prescription = $13,
		image_url = $14, is_available = $15, min_stock_alert = $16,
		updated_at = now()
	WHERE id = $1;
	`

	res, err := r.DB.ExecContext(ctx, query,
		m.ID, m.CategoryID, m.Name, m.GenericName, m.Manufacturer,
		m.Description, m.Dosage, m.Price, m.Quantity, m.Unit,
		m.ExpiryDate, m.BatchNumber, m.RequiresRx,
		m.ImageURL, m.IsAvailable, m.MinStockAlert,
	)
	if err != nil {
		return fmt.Errorf("update medicine: exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update medicine: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SQLMedicineRepository) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	if r.DB == nil {
		return errors.New("medicine repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete medicine: exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete medicine: rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *SQLMedicineRepository) ListByStore(
	ctx context.Context,
	storeID uuid.UUID,
	availableOnly bool,
) ([]*domain.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE store_id = $1`
	if availableOnly {
		query += ` AND is_available AND quantity > 0`
	}
	query += ` ORDER BY name;`

	return r.list(ctx, query, storeID)
}

func (r *SQLMedicineRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	storeID *uuid.UUID,
) ([]*domain.Medicine, error) {
	query := `
	SELECT ` + medicineQualified + `
	FROM medicines m
	JOIN stores s ON s.id = m.store_id
	WHERE s.owner_id = $1`

	args := []any{ownerID}
	if storeID != nil {
		query += ` AND m.store_id = $2`
		args = append(args, *storeID)
	}
	query += ` ORDER BY m.name;`

	return r.list(ctx, query, args...)
}

// medicineQualified mirrors medicineColumns with the medicines alias for
// joined queries.
const medicineQualified = `
	m.id, m.store_id, m.category_id, m.name, m.generic_name, m.manufacturer, m.description,
	m.dosage, m.price, m.quantity, m.unit, m.expiry_date, m.batch_number,
	m.requires_prescription, m.image_url, m.is_available, m.min_stock_alert,
	m.created_at, m.updated_at
`

func (r *SQLMedicineRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if r.DB == nil {
		return nil, errors.New("medicine repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, description, icon_url FROM medicine_categories ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("list categories: query: %w", err)
	}
	defer rows.Close()

	cats := make([]domain.Category, 0, 16)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IconURL); err != nil {
			return nil, fmt.Errorf("list categories: scan row: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: row iteration: %w", err)
	}

	return cats, nil
}

func (r *SQLMedicineRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Medicine, error) {
	if r.DB == nil {
		return nil, errors.New("medicine repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list medicines: query: %w", err)
	}
	defer rows.Close()

	meds := make([]*domain.Medicine, 0, 32)
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("list medicines: scan row: %w", err)
		}
		meds = append(meds, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list medicines: row iteration: %w", err)
	}

	return meds, nil
}

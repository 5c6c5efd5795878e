package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"medicine-finder-service/internal/domain"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS stores (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL,
			store_name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL,
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			pincode TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			license_number TEXT NOT NULL DEFAULT '',
			store_image_url TEXT NOT NULL DEFAULT '',
			is_open BOOLEAN NOT NULL DEFAULT TRUE,
			opening_time TEXT NOT NULL DEFAULT '',
			closing_time TEXT NOT NULL DEFAULT '',
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_reviews INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,

		`CREATE TABLE IF NOT EXISTS medicine_categories (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			icon_url TEXT NOT NULL DEFAULT ''
		);`,

		`CREATE TABLE IF NOT EXISTS medicines (
			id UUID PRIMARY KEY,
			store_id UUID NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
			category_id UUID REFERENCES medicine_categories(id),
			name TEXT NOT NULL,
			generic_name TEXT NOT NULL DEFAULT '',
			manufacturer TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			dosage TEXT NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
			quantity INTEGER NOT NULL CHECK (quantity >= 0),
			unit TEXT NOT NULL DEFAULT 'strips',
			expiry_date DATE,
			batch_number TEXT NOT NULL DEFAULT '',
			requires_prescription BOOLEAN NOT NULL DEFAULT FALSE,
			image_url TEXT NOT NULL DEFAULT '',
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			min_stock_alert INTEGER NOT NULL DEFAULT 10,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,

		`CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			store_id UUID NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			user_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, store_id)
		);`,

		`CREATE TABLE IF NOT EXISTS favorites (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			store_id UUID NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, store_id)
		);`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'info',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			link TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,

		`CREATE TABLE IF NOT EXISTS medicine_alerts (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			medicine_name TEXT NOT NULL,
			user_latitude DOUBLE PRECISION NOT NULL,
			user_longitude DOUBLE PRECISION NOT NULL,
			radius_km DOUBLE PRECISION NOT NULL CHECK (radius_km > 0),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,

		`CREATE TABLE IF NOT EXISTS search_history (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			search_query TEXT NOT NULL,
			user_latitude DOUBLE PRECISION NOT NULL,
			user_longitude DOUBLE PRECISION NOT NULL,
			results_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,

		`CREATE INDEX IF NOT EXISTS idx_medicines_store ON medicines(store_id);`,
		`CREATE INDEX IF NOT EXISTS idx_medicines_name ON medicines(lower(name));`,
		`CREATE INDEX IF NOT EXISTS idx_stores_owner ON stores(owner_id);`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read);`,
		`CREATE INDEX IF NOT EXISTS idx_search_history_user ON search_history(user_id, created_at);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type medicineSeed struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	GenericName string  `json:"generic_name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	IsAvailable bool    `json:"is_available"`
}

type storeSeed struct {
	ID        string         `json:"id"`
	OwnerID   string         `json:"owner_id"`
	StoreName string         `json:"store_name"`
	Address   string         `json:"address"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Phone     string         `json:"phone"`
	IsOpen    bool           `json:"is_open"`
	Medicines []medicineSeed `json:"medicines"`
}

// Populate the database with demo pharmacies from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stores: read %q: %w", jsonPath, err)
	}

	var data []storeSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed stores: parse json: %w", err)
	}

	for i, s := range data {
		if strings.TrimSpace(s.StoreName) == "" {
			return fmt.Errorf("seed stores: store at index %d: name cannot be empty", i+1)
		}
		if !domain.ValidCoordinate(s.Latitude, s.Longitude) {
			return fmt.Errorf("seed stores: store %q: coordinates out of range", s.StoreName)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stores: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	storeStmt, err := tx.Prepare(`
	INSERT INTO stores (id, owner_id, store_name, address, latitude, longitude, phone, is_open)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET store_name = EXCLUDED.store_name,
		address = EXCLUDED.address,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		phone = EXCLUDED.phone,
		is_open = EXCLUDED.is_open;
	`)
	if err != nil {
		return fmt.Errorf("seed stores: prepare store insert: %w", err)
	}
	defer storeStmt.Close()

	medStmt, err := tx.Prepare(`
	INSERT INTO medicines (id, store_id, name, generic_name, price, quantity, is_available)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		generic_name = EXCLUDED.generic_name,
		price = EXCLUDED.price,
		quantity = EXCLUDED.quantity,
		is_available = EXCLUDED.is_available;
	`)
	if err != nil {
		return fmt.Errorf("seed stores: prepare medicine insert: %w", err)
	}
	defer medStmt.Close()

	for _, s := range data {
		if _, err := storeStmt.Exec(
			s.ID, s.OwnerID, s.StoreName, s.Address, s.Latitude, s.Longitude, s.Phone, s.IsOpen,
		); err != nil {
			return fmt.Errorf("seed stores: insert store %q: %w", s.StoreName, err)
		}

		for _, m := range s.Medicines {
			if _, err := medStmt.Exec(
				m.ID, s.ID, m.Name, m.GenericName, m.Price, m.Quantity, m.IsAvailable,
			); err != nil {
				return fmt.Errorf("seed stores: insert medicine %q: %w", m.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stores: commit tx: %w", err)
	}

	return nil
}
